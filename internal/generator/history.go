package generator

// DefaultHistorySize is the number of recent strings kept.
const DefaultHistorySize = 5

// History keeps the most recent strings, newest first.
type History struct {
	items    []string
	capacity int
}

// NewHistory returns an empty History. Non-positive capacity uses DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{capacity: capacity, items: make([]string, 0, capacity)}
}

// Push prepends s and evicts the oldest entry past capacity.
func (h *History) Push(s string) {
	if len(h.items) < h.capacity {
		h.items = append(h.items, "")
	}
	copy(h.items[1:], h.items[:len(h.items)-1])
	h.items[0] = s
}

// Items returns a copy of the entries, newest first.
func (h *History) Items() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.items)
}

// At returns the entry at index i, where 0 is the newest.
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.items) {
		return "", false
	}
	return h.items[i], true
}
