package translateui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Translate key.Binding
	NextLang  key.Binding
	PrevLang  key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Translate: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "translate")),
		NextLang:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next language")),
		PrevLang:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev language")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Help:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "help")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Translate, k.NextLang, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Translate, k.Clear},
		{k.NextLang, k.PrevLang},
		{k.Help, k.Quit},
	}
}
