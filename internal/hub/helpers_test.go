package hub

import (
	"context"
	"fmt"
	"sync"
)

// items builds n items with ids prefix0..prefixN-1.
func items(prefix string, n int) []Item {
	out := make([]Item, n)
	for i := range out {
		id := fmt.Sprintf("%s%d", prefix, i)
		out[i] = Item{ID: id, Visuals: Visuals{Headline: "Title " + id}}
	}
	return out
}

func rowIDs(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		for _, it := range r.Items {
			out[i] = append(out[i], it.ID)
		}
	}
	return out
}

func rowIndexes(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

// permutations returns every ordering of 0..n-1.
func permutations(n int) [][]int {
	var out [][]int
	var rec func(prefix []int, rest []int)
	rec = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i := range rest {
			next := append(append([]int(nil), rest[:i]...), rest[i+1:]...)
			rec(append(prefix, rest[i]), next)
		}
	}
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}
	rec(nil, base)
	return out
}

type fetchResult struct {
	col *Collection
	err error
}

// fakeFetcher answers FetchCollection from a map. When gated, each href
// blocks until released.
type fakeFetcher struct {
	mu      sync.Mutex
	results map[string]fetchResult
	gates   map[string]chan struct{}
	calls   []string

	inFlight    int
	maxInFlight int
}

func newFakeFetcher(results map[string]fetchResult) *fakeFetcher {
	return &fakeFetcher{results: results, gates: map[string]chan struct{}{}}
}

func (f *fakeFetcher) gate(href string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gates[href] = make(chan struct{})
}

func (f *fakeFetcher) release(href string) {
	f.mu.Lock()
	ch := f.gates[href]
	f.mu.Unlock()
	close(ch)
}

func (f *fakeFetcher) FetchCollection(ctx context.Context, href string) (*Collection, error) {
	f.mu.Lock()
	f.calls = append(f.calls, href)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	gate := f.gates[href]
	res, ok := f.results[href]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", href)
	}
	return res.col, res.err
}
