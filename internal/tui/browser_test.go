package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tormodhaugland/treecd/internal/fs"
	"github.com/tormodhaugland/treecd/internal/inspect"
	"github.com/tormodhaugland/treecd/internal/nav"
	"github.com/tormodhaugland/treecd/internal/testutil"
)

func newTestBrowser(t *testing.T, files int) (Model, string) {
	t.Helper()
	tmp := t.TempDir()
	testutil.MkDirs(t, tmp, "alpha", "beta", "gamma/inner")
	testutil.WriteFile(t, tmp, "run.sh", 64, 0o755)
	for i := 0; i < files; i++ {
		testutil.WriteFile(t, tmp, fmt.Sprintf("file%02d.txt", i), 10, 0o644)
	}

	n := nav.New(fs.OS{}, tmp, tmp)
	m := New(n, fs.OS{}, 100*time.Millisecond)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})
	return m, tmp
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	next, ok := result.(Model)
	require.True(t, ok, "Update returned %T", result)
	return next
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	next, ok := result.(Model)
	require.True(t, ok, "Update returned %T", result)
	return next, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestBrowserSelectQuitsWithFocusedPath(t *testing.T) {
	m, tmp := newTestBrowser(t, 0)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(cmd))
	assert.False(t, m.Result().Aborted)
	assert.Equal(t, filepath.Join(tmp, "alpha"), m.Result().Path)
}

func TestBrowserAbortKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyCtrlQ},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m, _ := newTestBrowser(t, 0)
			m, cmd := press(t, m, msg)

			assert.True(t, isQuit(cmd))
			assert.True(t, m.Result().Aborted)
			assert.Empty(t, m.Result().Path)
		})
	}
}

func TestBrowserMovementKeys(t *testing.T) {
	m, tmp := newTestBrowser(t, 0)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlJ})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, filepath.Join(tmp, "beta"), m.nav.SelectedPath())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, filepath.Join(tmp, "alpha"), m.nav.SelectedPath())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, filepath.Join(tmp, "gamma"), m.nav.SelectedPath())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, filepath.Join(tmp, "gamma", "inner"), m.nav.SelectedPath())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, filepath.Join(tmp, "gamma"), m.nav.SelectedPath(), "collapsed leaf ascends")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.False(t, m.nav.Focused().Expanded, "expanded node collapses first")
	assert.Equal(t, filepath.Join(tmp, "gamma"), m.nav.SelectedPath())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, tmp, m.nav.SelectedPath())
}

func TestBrowserTypeAheadSearch(t *testing.T) {
	m, tmp := newTestBrowser(t, 0)

	m, cmd := press(t, m, runes("g"))
	assert.Nil(t, cmd)
	assert.Equal(t, filepath.Join(tmp, "gamma"), m.nav.SelectedPath())
	assert.Equal(t, "g", m.nav.SearchBuffer())
	assert.Contains(t, m.View(), "/g")
}

func TestBrowserIgnoresNonSearchRunes(t *testing.T) {
	m, tmp := newTestBrowser(t, 0)

	m, _ = press(t, m, runes(" "))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true})
	m, _ = press(t, m, runes("é"))

	assert.Equal(t, tmp, m.nav.SelectedPath())
	assert.Empty(t, m.nav.SearchBuffer())
}

func TestBrowserPopupCapturesInput(t *testing.T) {
	m, tmp := newTestBrowser(t, 20)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	require.True(t, m.popup.Visible())

	view := m.popupViewHeight()
	require.Equal(t, 10, view)

	for i := 0; i < 30; i++ {
		m, _ = press(t, m, runes("j"))
	}
	assert.Equal(t, 21-view, m.popup.Offset(), "scroll stops at the last row")
	assert.Equal(t, tmp, m.nav.SelectedPath(), "tree focus does not move while the popup is open")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 21-view-1, m.popup.Offset())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter is ignored inside the popup")
	assert.True(t, m.popup.Visible())

	m, _ = press(t, m, runes("q"))
	assert.False(t, m.popup.Visible())
	assert.Equal(t, 0, m.popup.Offset())
}

func TestBrowserPopupCloseKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		runes("q"),
		runes("f"),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlF},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m, _ := newTestBrowser(t, 0)
			m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
			m, cmd := press(t, m, msg)

			assert.False(t, m.popup.Visible())
			assert.False(t, isQuit(cmd), "closing the popup does not quit")
		})
	}
}

func TestBrowserRefreshClampsPopupAfterShrink(t *testing.T) {
	m, tmp := newTestBrowser(t, 20)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	for i := 0; i < 30; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, 11, m.popup.Offset())

	for i := 0; i < 15; i++ {
		require.NoError(t, os.Remove(filepath.Join(tmp, fmt.Sprintf("file%02d.txt", i))))
	}

	m = update(t, m, refreshMsg{})
	assert.Equal(t, 0, m.popup.Offset(), "six rows fit in the view")
}

func TestBrowserPopupShowsReadError(t *testing.T) {
	m, tmp := newTestBrowser(t, 0)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	alpha := filepath.Join(tmp, "alpha")
	require.Equal(t, alpha, m.nav.SelectedPath())
	require.NoError(t, os.Remove(alpha))
	_, readErr := os.ReadDir(alpha)
	require.Error(t, readErr)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	lines := m.popupLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "cannot read directory: "+readErr.Error(), lines[0])
	assert.Contains(t, m.View(), "cannot read directory")
}

func TestBrowserRefreshReschedules(t *testing.T) {
	m, _ := newTestBrowser(t, 0)

	_, cmd := m.Update(refreshMsg{})
	assert.NotNil(t, cmd)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	_, cmd = m.Update(refreshMsg{})
	assert.Nil(t, cmd, "no further ticks after quitting")
}

func TestBrowserScrollFollowsFocus(t *testing.T) {
	tmp := t.TempDir()
	for i := 0; i < 40; i++ {
		testutil.MkDirs(t, tmp, fmt.Sprintf("d%02d", i))
	}
	n := nav.New(fs.OS{}, tmp, tmp)
	m := update(t, New(n, fs.OS{}, 0), tea.WindowSizeMsg{Width: 80, Height: 12})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 40-(m.paneHeight()-3), m.nav.Offset())

	view := m.View()
	assert.Contains(t, view, "d39")
	assert.NotContains(t, view, "d00")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.nav.Offset())
	assert.Contains(t, m.View(), tmp)
}

func TestBrowserView(t *testing.T) {
	m, tmp := newTestBrowser(t, 0)

	view := m.View()
	assert.Contains(t, view, "▼ "+tmp)
	assert.Contains(t, view, "▶ alpha")
	assert.NotContains(t, view, "file list")

	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 24)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 100)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	view = m.View()
	assert.Contains(t, view, "file list")
	assert.Contains(t, view, "run.sh")
	assert.Contains(t, view, "64 B")
}

func TestBrowserViewBeforeResize(t *testing.T) {
	n := nav.New(fs.OS{}, t.TempDir(), "/")
	m := New(n, fs.OS{}, 0)
	assert.Equal(t, "Loading...", m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 3, Height: 2})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestFormatEntryPadsNameColumn(t *testing.T) {
	e := inspect.Entry{Name: "日本語.txt", Kind: inspect.KindFile, Size: 2048}
	line := formatEntry(e)

	assert.True(t, strings.HasPrefix(line, "日本語.txt"))
	assert.Equal(t, "   2.0 KB", ansi.Cut(line, popupNameWidth, popupNameWidth+9))

	long := inspect.Entry{Name: strings.Repeat("x", 50)}
	assert.Equal(t, popupNameWidth, ansi.StringWidth(ansi.Cut(formatEntry(long), 0, popupNameWidth)))
	assert.Contains(t, formatEntry(long), "…")
}

func TestSearchRune(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want rune
		ok   bool
	}{
		{"letter", runes("a"), 'a', true},
		{"digit", runes("7"), '7', true},
		{"punct", runes("."), '.', true},
		{"space", runes(" "), 0, false},
		{"non-ascii", runes("ø"), 0, false},
		{"paste", runes("ab"), 0, false},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, 0, false},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := searchRune(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, r)
		})
	}
}
