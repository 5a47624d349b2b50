// Package tui is the terminal front-end of the catalog browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	domcat "github.com/kailas-cloud/catalog/internal/domain/catalog"
	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/usecase/session"
)

// Loader waits for the one-shot catalog load.
type Loader interface {
	Wait(ctx context.Context) (*domcat.Catalog, error)
}

// PageSizes are the choices cycled by ctrl+s.
var PageSizes = []int{25, 50, 100, 200}

type focusArea int

const (
	focusQuery focusArea = iota
	focusTypes
	focusPlatforms
	focusResults
	focusCount
)

func (f focusArea) String() string {
	switch f {
	case focusQuery:
		return "query"
	case focusTypes:
		return "types"
	case focusPlatforms:
		return "platforms"
	default:
		return "results"
	}
}

// loadedMsg carries the outcome of the catalog load.
type loadedMsg struct {
	cat *domcat.Catalog
	err error
}

// Model is the Bubble Tea model for the catalog browser.
type Model struct {
	loader Loader
	cat    *domcat.Catalog
	err    error

	sess      session.Session
	input     textinput.Model
	gotoInput textinput.Model
	gotoMode  bool
	viewport  viewport.Model

	focus          focusArea
	types          []facet.Facet
	platforms      []facet.Facet
	typeCursor     int
	platformCursor int

	width  int
	height int
	ready  bool
}

// New creates a browser model. pageSize <= 0 means the default.
func New(loader Loader, pageSize int) Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "title, type, platform or tag; Enter to search"
	ti.CharLimit = 4096
	ti.Focus()

	gi := textinput.New()
	gi.Prompt = "Go to page: "
	gi.CharLimit = 9

	return Model{
		loader:    loader,
		sess:      session.New(pageSize),
		input:     ti,
		gotoInput: gi,
		viewport:  viewport.New(80, 20),
	}
}

// Init starts the cursor blink and waits for the catalog.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForCatalog(m.loader))
}

func waitForCatalog(l Loader) tea.Cmd {
	return func() tea.Msg {
		cat, err := l.Wait(context.Background())
		return loadedMsg{cat: cat, err: err}
	}
}

// Session returns the current session state.
func (m Model) Session() session.Session { return m.sess }

// Update handles load completion, key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.cat, m.err = msg.cat, msg.err
		if m.err == nil && m.cat != nil {
			m.types = m.cat.Types()
			m.platforms = m.cat.Platforms()
		}
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.ready = true
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(20, msg.Width-sidebarWidth-4)
		m.viewport.Height = max(3, msg.Height-reservedLines)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.gotoMode {
		return m.handleGotoKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "enter":
		m.search()
		return m, nil
	case "ctrl+r":
		m.sess = m.sess.ResetFilters()
		m.refresh()
		return m, nil
	case "ctrl+x":
		m.sess = m.sess.Clear()
		m.input.Reset()
		m.refresh()
		return m, nil
	case "ctrl+s":
		m.sess = m.sess.WithPageSize(nextPageSize(m.sess.PageSize()))
		return m, nil
	case "pgdown":
		m.sess = m.sess.Next()
		m.refresh()
		return m, nil
	case "pgup":
		m.sess = m.sess.Prev()
		m.refresh()
		return m, nil
	case "esc":
		if m.focus != focusQuery {
			m.setFocus(focusQuery)
			return m, nil
		}
		return m, tea.Quit
	}

	if m.focus == focusQuery {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.sess = m.sess.Prev()
		m.refresh()
	case "right", "l":
		m.sess = m.sess.Next()
		m.refresh()
	case ":":
		m.gotoMode = true
		m.gotoInput.Reset()
		cmd := m.gotoInput.Focus()
		return m, cmd
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case " ", "space", "x":
		m.toggleFacet()
	}
	return m, nil
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.sess = m.sess.GoTo(m.gotoInput.Value())
		m.closeGoto()
		m.refresh()
		return m, nil
	case "esc":
		m.closeGoto()
		return m, nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) closeGoto() {
	m.gotoMode = false
	m.gotoInput.Blur()
	m.gotoInput.Reset()
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusQuery {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// search runs the pending inputs. Disabled until the catalog is ready.
func (m *Model) search() {
	if m.cat == nil {
		return
	}
	m.sess = m.sess.WithQuery(m.input.Value()).Search(m.cat)
	m.refresh()
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case focusTypes:
		m.typeCursor = clampCursor(m.typeCursor+delta, len(m.types))
	case focusPlatforms:
		m.platformCursor = clampCursor(m.platformCursor+delta, len(m.platforms))
	case focusResults:
		if delta < 0 {
			m.viewport.LineUp(1)
		} else {
			m.viewport.LineDown(1)
		}
	}
}

func (m *Model) toggleFacet() {
	switch m.focus {
	case focusTypes:
		if len(m.types) == 0 {
			return
		}
		v := m.types[m.typeCursor].Value()
		m.sess = m.sess.WithType(v, !m.sess.TypeSelected(v))
	case focusPlatforms:
		if len(m.platforms) == 0 {
			return
		}
		v := m.platforms[m.platformCursor].Value()
		m.sess = m.sess.WithPlatform(v, !m.sess.PlatformSelected(v))
	}
}

// refresh re-renders the result list into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderResults())
	m.viewport.GotoTop()
}

func nextPageSize(current int) int {
	for i, n := range PageSizes {
		if n == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	for _, n := range PageSizes {
		if n > current {
			return n
		}
	}
	return PageSizes[0]
}

func clampCursor(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// statusLine returns the load state, or the session status once loaded.
func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return "Error: " + m.err.Error()
	case m.cat == nil:
		return "Loading catalog..."
	case m.sess.Status() != "":
		return m.sess.Status()
	case m.sess.State() == session.Initial:
		return fmt.Sprintf("%d items loaded. Type a query and press Enter.", m.cat.Len())
	default:
		return ""
	}
}
