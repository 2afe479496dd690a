package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Iron-Ham/hubview/internal/errors"
	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// stubFetcher serves a fixed hub document and collections keyed by href.
// hubErrs are returned by successive FetchHub calls before the document is.
type stubFetcher struct {
	mu          sync.Mutex
	doc         *hub.Document
	hubErrs     []error
	collections map[string]*hub.Collection
	hubCalls    int
}

func (s *stubFetcher) FetchHub(ctx context.Context) (*hub.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hubCalls++
	if len(s.hubErrs) > 0 {
		err := s.hubErrs[0]
		s.hubErrs = s.hubErrs[1:]
		return nil, err
	}
	return s.doc, nil
}

func (s *stubFetcher) FetchCollection(ctx context.Context, href string) (*hub.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[href]
	if !ok {
		return nil, errors.NewFetchError(errors.ScopeCollection, errors.KindHTTP, href, nil).WithStatusCode(500)
	}
	return col, nil
}

func hubUnavailable() error {
	return errors.NewFetchError(errors.ScopeHub, errors.KindHTTP, "http://hub.test/hub.json", nil).WithStatusCode(503)
}

// tiles builds n items with ids prefix0..prefixN-1.
func tiles(prefix string, n int) []hub.Item {
	out := make([]hub.Item, n)
	for i := range out {
		id := fmt.Sprintf("%s%d", prefix, i)
		out[i] = hub.Item{ID: id, Visuals: hub.Visuals{Headline: "Title " + id}}
	}
	return out
}

// sampleFetcher serves a hub with an inline row, a lazy row, a failing row,
// an empty row and a second inline row.
func sampleFetcher() *stubFetcher {
	return &stubFetcher{
		doc: &hub.Document{Components: []hub.RowSpec{
			{Name: "Featured", Items: tiles("f", 2)},
			{Name: "Movies", Href: "/collections/movies"},
			{Name: "Broken", Href: "/collections/broken"},
			{Name: "Empty", Href: "/collections/empty"},
			{Name: "Kids", Items: tiles("k", 1)},
		}},
		collections: map[string]*hub.Collection{
			"/collections/movies": {Name: "Popular Movies", Items: tiles("m", 3)},
			"/collections/empty":  {Name: "Empty", Items: nil},
		},
	}
}

// drive runs cmd and every command that follows from it, feeding each
// resulting message back into the model. Spinner ticks are dropped so the
// loop terminates.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("drive: command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, nextCmd := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nextCmd)
		}
	}
	return m
}

// load creates a model for f and runs the initial load to completion.
func load(t *testing.T, f Fetcher, opts ...Option) Model {
	t.Helper()
	m := NewModel(f, opts...)
	return drive(t, m, m.Init())
}

// press sends a key to the model and runs whatever follows from it.
func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	return drive(t, next.(Model), cmd)
}

func key(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func rowNames(g hub.Grid) []string {
	names := make([]string, len(g.Rows))
	for i, r := range g.Rows {
		names[i] = r.Name
	}
	return names
}
