package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Generate key.Binding
	Upper    key.Binding
	Lower    key.Binding
	Numbers  key.Binding
	Symbols  key.Binding
	Shorter  key.Binding
	Longer   key.Binding
	Auto     key.Binding
	Copy     key.Binding
	CopyNth  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(key.WithKeys("enter", " ", "g"), key.WithHelp("enter", "generate")),
		Upper:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "A-Z")),
		Lower:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "a-z")),
		Numbers:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "0-9")),
		Symbols:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "symbols")),
		Shorter:  key.NewBinding(key.WithKeys("left", "-"), key.WithHelp("←/-", "shorter")),
		Longer:   key.NewBinding(key.WithKeys("right", "+", "="), key.WithHelp("→/+", "longer")),
		Auto:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto")),
		Copy:     key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		CopyNth:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "copy history")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Copy, k.Auto, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Shorter, k.Longer},
		{k.Upper, k.Lower, k.Numbers, k.Symbols},
		{k.Auto, k.Copy, k.CopyNth},
		{k.Help, k.Quit},
	}
}
