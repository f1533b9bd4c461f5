package ui

import (
	"context"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genshinbook/internal/config"
	"genshinbook/internal/eventbus"
	"genshinbook/internal/navigator"
)

const testBase = "https://api.test"

type fakeGateway struct {
	mu        sync.Mutex
	responses map[string]any
}

func (g *fakeGateway) Fetch(_ context.Context, targetURL string) (any, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	payload, ok := g.responses[targetURL]
	return payload, ok
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	gw := &fakeGateway{responses: map[string]any{
		testBase:                      map[string]any{"types": []any{"artifacts", "characters", "weapons"}},
		testBase + "/artifacts":       []any{"gladiator"},
		testBase + "/characters":      []any{"klee", "venti"},
		testBase + "/characters/klee": map[string]any{"name": "Klee"},
	}}
	cfg := config.DefaultConfig()
	cfg.UISettings.Highlight = false

	m := NewModel(navigator.New(gw, testBase, nil), cfg)
	t.Cleanup(m.Shutdown)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// drain runs cmd to completion, feeding every message it produces back
// into the model. Spinner ticks are delivered but their follow-ups dropped.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case spinner.TickMsg:
		m.Update(msg)
	case nil:
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

func press(m *Model, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	drain(m, cmd)
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitLoadsRoot(t *testing.T) {
	m := newTestModel(t)

	cmd := m.Init()
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading...")

	drain(m, cmd)
	assert.False(t, m.loading)

	view := m.View()
	assert.Contains(t, view, "Genshin Book")
	assert.Contains(t, view, "▸ artifacts")
	assert.Contains(t, view, "  characters")
	assert.NotContains(t, view, "← back")
}

func TestOpenAndBackRestoresCursor(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	press(m, keyDown)
	press(m, keyEnter)
	view := m.View()
	assert.Equal(t, []string{"characters"}, m.current.ActivePath)
	assert.Contains(t, view, "/characters")
	assert.Contains(t, view, "← back")
	assert.Contains(t, view, "▸ klee")

	press(m, keyEnter)
	view = m.View()
	assert.Equal(t, []string{"characters", "klee"}, m.current.ActivePath)
	assert.Contains(t, view, "/characters/klee")
	assert.Contains(t, view, `"name": "Klee"`)

	press(m, keyBack)
	assert.Equal(t, []string{"characters"}, m.current.ActivePath)
	assert.Equal(t, 0, m.cursor.Selected())

	press(m, runes("h"))
	assert.True(t, m.current.AtRoot())
	assert.Equal(t, 1, m.cursor.Selected(), "cursor returns to the entry we opened")
	assert.Contains(t, m.View(), "▸ characters")
}

func TestBackAtRootDoesNothing(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	_, cmd := m.Update(keyBack)
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
}

func TestFailedNavigationKeepsScreen(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	press(m, runes("G"))
	press(m, keyEnter)

	view := m.View()
	assert.True(t, m.current.AtRoot())
	assert.Contains(t, view, "failed to load /weapons")
	assert.Contains(t, view, "▸ weapons")
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	m.loading = true
	_, cmd := m.Update(keyDown)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.cursor.Selected())

	_, cmd = m.Update(keyEnter)
	assert.Nil(t, cmd)
}

func TestStartedEventShowsURLWhileLoading(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	m.Update(EventMsg{Event: eventbus.NavigationStartedEvent{URL: testBase + "/artifacts"}})
	assert.NotContains(t, m.View(), "GET ")

	m.loading = true
	m.Update(EventMsg{Event: eventbus.NavigationStartedEvent{URL: testBase + "/artifacts"}})
	assert.Contains(t, m.View(), "GET "+testBase+"/artifacts")
}

func TestRefreshKeepsCursor(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	press(m, keyDown)
	version := m.current.Version
	press(m, runes("r"))

	assert.Equal(t, version+1, m.current.Version)
	assert.Equal(t, 1, m.cursor.Selected())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	press(m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "page down")

	press(m, keyEsc)
	assert.False(t, m.showHelp)
	assert.True(t, m.current.AtRoot())
}

func TestPagerWithoutProgram(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())
	press(m, keyDown)
	press(m, keyEnter)
	press(m, keyEnter)
	require.Equal(t, []string{"characters", "klee"}, m.current.ActivePath)

	press(m, runes("o"))
	assert.Contains(t, m.View(), "pager: program not set")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Error(t, m.ctx.Err())
}

func TestResizeShrinksList(t *testing.T) {
	m := newTestModel(t)
	drain(m, m.Init())

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Equal(t, 2, m.cursor.ViewportHeight())
	assert.Equal(t, 36, m.viewport.Width)
	assert.Contains(t, m.View(), "more below")
}
