package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuikit/internal/generator"
	"github.com/verte-zerg/tuikit/internal/model"
)

type fakeRecorder struct {
	mu   sync.Mutex
	recs []model.GeneratedRecord
}

func (f *fakeRecorder) InsertGenerated(_ context.Context, rec model.GeneratedRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return int64(len(f.recs)), nil
}

type counterSource struct {
	n int
}

func (c *counterSource) Intn(n int) int {
	c.n++
	return c.n % n
}

func newTestModel(cfg model.GeneratorConfig, opts ...Option) *Model {
	return NewModel(cfg, generator.NewWithSource(&counterSource{}), opts...)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes cmd and any batched children. Only use it for commands
// that do not sleep.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

func TestNewModelGeneratesInitialString(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 12, Classes: model.DefaultClasses()})
	if len(m.Current()) != 12 {
		t.Fatalf("expected 12 chars, got %q", m.Current())
	}
	if len(m.History()) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(m.History()))
	}
}

func TestNewModelDefaultsAndClampsLength(t *testing.T) {
	if m := newTestModel(model.GeneratorConfig{}); m.config.Length != DefaultLength {
		t.Fatalf("expected default length, got %d", m.config.Length)
	}
	if m := newTestModel(model.GeneratorConfig{Length: 2}); m.config.Length != MinLength {
		t.Fatalf("expected min length, got %d", m.config.Length)
	}
	if m := newTestModel(model.GeneratorConfig{Length: 99}); m.config.Length != MaxLength {
		t.Fatalf("expected max length, got %d", m.config.Length)
	}
}

func TestToggleRegeneratesWithNewCharset(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 20, Classes: model.Classes{Numbers: true}})
	for _, r := range m.Current() {
		if !strings.ContainsRune(generator.Numbers, r) {
			t.Fatalf("expected digits only, got %q", m.Current())
		}
	}

	m.Update(runeKey('n'))
	if m.config.Classes.Numbers {
		t.Fatalf("expected numbers toggled off")
	}
	if len(m.History()) != 2 {
		t.Fatalf("expected toggle to regenerate, history=%d", len(m.History()))
	}
	for _, r := range m.Current() {
		if !strings.ContainsRune(generator.Lowercase, r) {
			t.Fatalf("expected lowercase fallback, got %q", m.Current())
		}
	}
}

func TestLengthKeysStayInBounds(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: MinLength, Classes: model.DefaultClasses()})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.config.Length != MinLength {
		t.Fatalf("expected length to stay at %d, got %d", MinLength, m.config.Length)
	}
	if len(m.History()) != 1 {
		t.Fatalf("expected no regeneration at the bound")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.config.Length != MinLength+1 || len(m.Current()) != MinLength+1 {
		t.Fatalf("expected length %d, got %d (%q)", MinLength+1, m.config.Length, m.Current())
	}

	m = newTestModel(model.GeneratorConfig{Length: MaxLength, Classes: model.DefaultClasses()})
	m.Update(runeKey('+'))
	if m.config.Length != MaxLength {
		t.Fatalf("expected length to stay at %d, got %d", MaxLength, m.config.Length)
	}
}

func TestHistoryKeepsFiveMostRecent(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses()})
	for i := 0; i < 6; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	hist := m.History()
	if len(hist) != generator.DefaultHistorySize {
		t.Fatalf("expected %d entries, got %d", generator.DefaultHistorySize, len(hist))
	}
	if hist[0] != m.Current() {
		t.Fatalf("expected newest entry first")
	}
}

func TestAutoTickGeneratesOnlyForLiveSequence(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses()})
	_, cmd := m.Update(runeKey('a'))
	if !m.config.Auto || cmd == nil {
		t.Fatalf("expected auto enabled with a tick command")
	}
	live := m.autoSeq

	m.Update(autoTickMsg{seq: live})
	if len(m.History()) != 2 {
		t.Fatalf("expected tick to generate, history=%d", len(m.History()))
	}

	m.Update(autoTickMsg{seq: live - 1})
	if len(m.History()) != 2 {
		t.Fatalf("expected stale tick to be ignored")
	}

	m.Update(runeKey('a'))
	if m.config.Auto {
		t.Fatalf("expected auto disabled")
	}
	m.Update(autoTickMsg{seq: live})
	if len(m.History()) != 2 {
		t.Fatalf("expected tick after disable to be ignored")
	}
}

func TestSettingsChangeRestartsAutoTimer(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses(), Auto: true})
	m.Init()
	before := m.autoSeq
	m.Update(runeKey('s'))
	if m.autoSeq == before {
		t.Fatalf("expected timer restart on settings change")
	}
	m.Update(autoTickMsg{seq: before})
	if len(m.History()) != 2 {
		t.Fatalf("expected old timer tick to be dropped, history=%d", len(m.History()))
	}
}

func TestCopySetsAndClearsIndicator(t *testing.T) {
	var copied []string
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses()}, WithCopyFunc(func(text string) error {
		copied = append(copied, text)
		return nil
	}))

	_, cmd := m.Update(runeKey('c'))
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	m.Update(cmd())
	if len(copied) != 1 || copied[0] != m.Current() {
		t.Fatalf("expected current string copied, got %v", copied)
	}
	if !m.copied {
		t.Fatalf("expected copied indicator")
	}
	if !strings.Contains(m.View(), "Copied!") {
		t.Fatalf("expected Copied! in view")
	}

	m.Update(clearCopiedMsg{seq: m.copySeq - 1})
	if !m.copied {
		t.Fatalf("expected stale clear to be ignored")
	}
	m.Update(clearCopiedMsg{seq: m.copySeq})
	if m.copied {
		t.Fatalf("expected indicator cleared")
	}
}

func TestGenerateClearsCopiedIndicator(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses()}, WithCopyFunc(func(string) error { return nil }))
	_, cmd := m.Update(runeKey('c'))
	m.Update(cmd())
	m.Update(runeKey('g'))
	if m.copied {
		t.Fatalf("expected generation to clear the indicator")
	}
}

func TestCopyHistoryEntry(t *testing.T) {
	var copied string
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses()}, WithCopyFunc(func(text string) error {
		copied = text
		return nil
	}))
	m.Update(runeKey('g'))
	older := m.History()[1]

	_, cmd := m.Update(runeKey('2'))
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	m.Update(cmd())
	if copied != older {
		t.Fatalf("expected %q copied, got %q", older, copied)
	}

	if _, cmd := m.Update(runeKey('5')); cmd != nil {
		t.Fatalf("expected no command for missing history entry")
	}
}

func TestCopyFailureShowsStatus(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 8, Classes: model.DefaultClasses()}, WithCopyFunc(func(string) error {
		return errors.New("no clipboard")
	}))
	_, cmd := m.Update(runeKey('c'))
	m.Update(cmd())
	if m.copied {
		t.Fatalf("expected no indicator on failure")
	}
	if !strings.Contains(m.View(), "no clipboard") {
		t.Fatalf("expected failure in view")
	}
}

func TestRecorderReceivesGeneratedStrings(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(model.GeneratorConfig{Length: 6, Classes: model.Classes{Numbers: true}}, WithRecorder(rec))
	runCmd(m.Init())
	_, cmd := m.Update(runeKey('g'))
	if cmd == nil {
		t.Fatalf("expected record command")
	}
	runCmd(cmd)

	if len(rec.recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(rec.recs))
	}
	if rec.recs[1].Value != m.Current() || rec.recs[1].Length != 6 || !rec.recs[1].Classes.Numbers {
		t.Fatalf("unexpected record: %+v", rec.recs[1])
	}
}

func TestViewShowsStats(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 10, Classes: model.DefaultClasses()})
	m.Update(runeKey('g'))
	view := m.View()
	for _, needle := range []string{"Random String Generator", "Length: 10", "Recent History", "Characters", "Generated", "Uppercase (A-Z)"} {
		if !strings.Contains(view, needle) {
			t.Fatalf("view missing %q:\n%s", needle, view)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(model.GeneratorConfig{Length: 8})
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
