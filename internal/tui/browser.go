package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/tormodhaugland/treecd/internal/config"
	"github.com/tormodhaugland/treecd/internal/debug"
	"github.com/tormodhaugland/treecd/internal/fs"
	"github.com/tormodhaugland/treecd/internal/inspect"
	"github.com/tormodhaugland/treecd/internal/nav"
)

const (
	popupTitle     = "file list"
	popupNameWidth = 30
)

// Result is how the browser ended.
type Result struct {
	// Path is the selected directory. Empty when Aborted.
	Path    string
	Aborted bool
}

type refreshMsg struct{}

// Model is the directory browser. The tree pane fills the screen above a
// single help line; the file list popup is drawn over the centre.
type Model struct {
	nav     *nav.Navigator
	fsys    fs.FS
	popup   inspect.Popup
	help    help.Model
	refresh time.Duration

	width  int
	height int

	result Result
	done   bool
}

// New creates a browser over an already primed navigator.
func New(n *nav.Navigator, fsys fs.FS, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = time.Duration(config.DefaultRefreshIntervalMS) * time.Millisecond
	}
	h := help.New()
	h.ShortSeparator = " • "
	return Model{
		nav:     n,
		fsys:    fsys,
		help:    h,
		refresh: refresh,
	}
}

// Result returns the outcome once the program has quit.
func (m Model) Result() Result { return m.result }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case refreshMsg:
		if !m.done {
			cmd = m.tick()
		}

	case tea.KeyMsg:
		if m.popup.Visible() {
			m.handlePopupKeys(msg)
		} else {
			cmd = m.handleBrowseKeys(msg)
		}
	}

	m.nav.SyncScroll(m.paneHeight())
	if m.popup.Visible() {
		m.popup.Clamp(len(m.popupLines()), m.popupViewHeight())
	}
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, browseKeys.Quit):
		m.result = Result{Aborted: true}
		m.done = true
		return tea.Quit

	case key.Matches(msg, browseKeys.Select):
		m.result = Result{Path: m.nav.SelectedPath()}
		if m.result.Path == "" {
			m.result.Aborted = true
		}
		m.done = true
		return tea.Quit

	case key.Matches(msg, browseKeys.Up):
		m.nav.MoveFocus(-1)

	case key.Matches(msg, browseKeys.Down):
		m.nav.MoveFocus(1)

	case key.Matches(msg, browseKeys.Expand):
		m.nav.ExpandFocused()

	case key.Matches(msg, browseKeys.Collapse):
		m.nav.CollapseOrAscend()

	case key.Matches(msg, browseKeys.Top):
		m.nav.MoveToTop()

	case key.Matches(msg, browseKeys.Bottom):
		m.nav.MoveToBottom()

	case key.Matches(msg, browseKeys.Inspect):
		m.popup.Toggle()

	default:
		if r, ok := searchRune(msg); ok {
			if !m.nav.JumpToChar(r) {
				debug.Log("search %q: no match", m.nav.SearchBuffer())
			}
		}
	}
	return nil
}

func (m *Model) handlePopupKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, popupKeys.Close):
		m.popup.Hide()
	case key.Matches(msg, popupKeys.Down):
		m.popup.ScrollDown(len(m.popupLines()), m.popupViewHeight())
	case key.Matches(msg, popupKeys.Up):
		m.popup.ScrollUp()
	}
}

// paneHeight is the tree pane's height including its border.
func (m Model) paneHeight() int {
	h := m.height - 1
	if h < 0 {
		h = 0
	}
	return h
}

func (m Model) popupSize() (w, h int) {
	return m.width / 2, m.height / 2
}

// popupViewHeight is the number of listing rows inside the popup border.
func (m Model) popupViewHeight() int {
	_, h := m.popupSize()
	if h < 2 {
		return 0
	}
	return h - 2
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	view := lipgloss.JoinVertical(lipgloss.Left, m.treeView(), m.helpView())

	if m.popup.Visible() {
		if box := m.popupView(); box != "" {
			view = placeOverlay(view, box, m.width/4, m.height/4)
		}
	}
	return view
}

func (m Model) treeView() string {
	innerW := m.width - 2
	innerH := m.paneHeight() - 2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	rows := m.nav.Rows()
	focus := m.nav.Focus()

	start := m.nav.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + innerH
	if end > len(rows) {
		end = len(rows)
	}

	lines := make([]string, 0, innerH)
	for _, row := range rows[start:end] {
		focused := row.Addr.Equal(focus)
		text := ansi.Truncate(row.Text, innerW, "…")
		style := rowStyle(row.Node.Link, focused)
		if focused {
			style = style.Width(innerW)
		}
		lines = append(lines, style.Render(text))
	}

	return paneStyle.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

func (m Model) helpView() string {
	var line string
	if m.popup.Visible() {
		line = m.help.ShortHelpView(popupKeys.ShortHelp())
	} else {
		line = m.help.ShortHelpView(browseKeys.ShortHelp())
	}
	if q := m.nav.SearchBuffer(); q != "" {
		line = searchStyle.Render("/"+q) + "  " + line
	}
	return ansi.Truncate(line, m.width, "")
}

// popupLines renders every listing row of the focused directory.
func (m Model) popupLines() []string {
	node := m.nav.Focused()
	if node == nil {
		return []string{helpStyle.Render("no directory focused")}
	}

	entries, err := inspect.List(m.fsys, node.Path)
	if err != nil {
		debug.Log("list %s: %v", node.Path, err)
		return []string{errorStyle.Render(fmt.Sprintf("cannot read directory: %v", err))}
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = entryStyle(e.Kind).Render(formatEntry(e))
	}
	return lines
}

func formatEntry(e inspect.Entry) string {
	label := runewidth.FillRight(runewidth.Truncate(e.Label(), popupNameWidth, "…"), popupNameWidth)
	return fmt.Sprintf("%s %8s %-16s %s", label, e.SizeString(), e.TimeString(), e.PermString())
}

func (m Model) popupView() string {
	w, h := m.popupSize()
	innerW, innerH := w-2, h-2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	all := m.popupLines()
	start, end := m.popup.Window(len(all), innerH)

	lines := make([]string, 0, innerH)
	for _, line := range all[start:end] {
		line = ansi.Truncate(line, innerW, "")
		if pad := innerW - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines = append(lines, line)
	}
	for len(lines) < innerH {
		lines = append(lines, strings.Repeat(" ", innerW))
	}

	border := lipgloss.RoundedBorder()
	side := popupBorderStyle.Render(border.Left)
	rightSide := popupBorderStyle.Render(border.Right)

	out := make([]string, 0, h)
	out = append(out, popupTop(border, innerW))
	for _, line := range lines {
		out = append(out, side+line+rightSide)
	}
	out = append(out, popupBorderStyle.Render(border.BottomLeft+strings.Repeat(border.Bottom, innerW)+border.BottomRight))
	return strings.Join(out, "\n")
}

// popupTop is the top border with the title centred in it.
func popupTop(border lipgloss.Border, innerW int) string {
	title := " " + popupTitle + " "
	tw := ansi.StringWidth(title)
	if tw > innerW {
		return popupBorderStyle.Render(border.TopLeft + strings.Repeat(border.Top, innerW) + border.TopRight)
	}
	left := (innerW - tw) / 2
	right := innerW - tw - left
	return popupBorderStyle.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		popupTitleStyle.Render(title) +
		popupBorderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
}

// Run starts the browser on the terminal behind stderr and blocks until the
// user selects a directory or aborts. Stdout is left untouched so the caller
// can print the result there.
func Run(cfg *config.Config, n *nav.Navigator, fsys fs.FS) (Result, error) {
	out := termenv.NewOutput(os.Stderr)
	lipgloss.SetColorProfile(out.EnvColorProfile())
	lipgloss.SetHasDarkBackground(out.HasDarkBackground())

	m := New(n, fsys, cfg.RefreshInterval())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run browser: %w", err)
	}

	final, ok := finalModel.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return final.Result(), nil
}
