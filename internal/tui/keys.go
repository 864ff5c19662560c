package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Inspect  key.Binding
	Select   key.Binding
	Quit     key.Binding
}

var browseKeys = browseKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("↑/C-k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("↓/C-j", "down")),
	Expand:   key.NewBinding(key.WithKeys("right", "ctrl+l"), key.WithHelp("→/C-l", "expand")),
	Collapse: key.NewBinding(key.WithKeys("left", "ctrl+h"), key.WithHelp("←/C-h", "collapse")),
	Top:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom")),
	Inspect:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("C-f", "files")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "cd")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c", "esc"), key.WithHelp("C-q/esc", "quit")),
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Collapse, k.Inspect, k.Select, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Expand, k.Collapse},
		{k.Inspect, k.Select, k.Quit},
	}
}

type popupKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

var popupKeys = popupKeyMap{
	Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
	Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
	Close: key.NewBinding(key.WithKeys("q", "esc", "f", "ctrl+f"), key.WithHelp("q/esc/f", "close")),
}

func (k popupKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Close}
}

func (k popupKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// searchRune reports the rune a key press feeds into type-ahead search.
// Only a single printable, non-space ASCII character qualifies.
func searchRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '!' || r > '~' {
		return 0, false
	}
	return r, true
}
