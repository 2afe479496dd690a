// Package internal contains integration tests that exercise the hub client,
// the row assembly and the fixture server together.
package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/hubview/internal/fixture"
	"github.com/Iron-Ham/hubview/internal/hub"
)

func newFixtureClient(t *testing.T) *hub.Client {
	t.Helper()
	s, err := fixture.New(fixture.WithMaxDelay(25 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	client, err := hub.NewClient(srv.URL+fixture.HubPath, hub.WithTimeout(5*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// TestAssemblyDriversAgree verifies that the grid does not depend on how rows
// are fetched: bounded, unbounded and reverse-order resolution all seal the
// same grid, and commits always arrive in document order.
func TestAssemblyDriversAgree(t *testing.T) {
	client := newFixtureClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, err := client.FetchHub(ctx)
	if err != nil {
		t.Fatalf("FetchHub() error = %v", err)
	}

	assemble := func(t *testing.T, opts ...hub.AssemblerOption) hub.Grid {
		t.Helper()
		var commits []int
		grid, err := hub.NewAssembler(client, opts...).Assemble(ctx, doc, func(r hub.Row) {
			commits = append(commits, r.Index)
		})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if !slices.IsSorted(commits) {
			t.Errorf("commit order = %v, want ascending", commits)
		}
		return grid
	}

	unbounded := assemble(t)
	serial := assemble(t, hub.WithMaxConcurrent(1))

	// Resolve pending rows last-to-first by hand.
	run := hub.NewAssembly(doc)
	pending := run.Pending()
	for i := len(pending) - 1; i >= 0; i-- {
		p := pending[i]
		col, err := client.FetchCollection(ctx, p.Href)
		run.Resolve(p.Index, col, err)
	}
	if !run.Sealed() {
		t.Fatalf("manual assembly not sealed after %d/%d rows", run.Resolved(), run.Total())
	}
	reversed := run.Grid()

	if unbounded.String() != "grid[4 8 6 3]" {
		t.Errorf("grid = %s, want grid[4 8 6 3]", unbounded)
	}
	if !reflect.DeepEqual(unbounded, serial) {
		t.Errorf("bounded grid %s differs from unbounded %s", serial, unbounded)
	}
	if !reflect.DeepEqual(unbounded, reversed) {
		t.Errorf("reverse-order grid %s differs from unbounded %s", reversed, unbounded)
	}

	var omitted []string
	for _, o := range run.Omitted() {
		omitted = append(omitted, o.Name)
	}
	slices.Sort(omitted)
	if want := []string{"Coming Soon", "Unavailable"}; !slices.Equal(omitted, want) {
		t.Errorf("omitted = %v, want %v", omitted, want)
	}
}

// TestAssemblyCancelled verifies that a cancelled context stops a headless
// assembly instead of sealing a partial grid.
func TestAssemblyCancelled(t *testing.T) {
	s, err := fixture.New()
	if err != nil {
		t.Fatal(err)
	}
	// Collections never answer; the hub document does.
	stalled := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/collections/") {
			<-r.Context().Done()
			return
		}
		s.Handler().ServeHTTP(w, r)
	})
	srv := httptest.NewServer(stalled)
	t.Cleanup(srv.Close)

	client, err := hub.NewClient(srv.URL + fixture.HubPath)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := client.FetchHub(context.Background())
	if err != nil {
		t.Fatalf("FetchHub() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := hub.NewAssembler(client).Assemble(ctx, doc, nil); err == nil {
		t.Error("Assemble() should fail when the context ends first")
	}
}
