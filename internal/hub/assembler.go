package hub

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/Iron-Ham/hubview/internal/logging"
)

// Assembler drives an Assembly to completion: it fetches every pending row
// concurrently and applies the outcomes on the calling goroutine.
type Assembler struct {
	fetcher       CollectionFetcher
	maxConcurrent int
	logger        *logging.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithMaxConcurrent bounds the number of collection fetches in flight.
// Zero or negative means one goroutine per pending row.
func WithMaxConcurrent(n int) AssemblerOption {
	return func(a *Assembler) {
		a.maxConcurrent = n
	}
}

// WithAssemblerLogger sets the logger for row outcomes.
func WithAssemblerLogger(l *logging.Logger) AssemblerOption {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAssembler creates an Assembler that resolves lazy rows through fetcher.
func NewAssembler(fetcher CollectionFetcher, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		fetcher: fetcher,
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type rowResult struct {
	index int
	col   *Collection
	err   error
}

// Assemble resolves every row of doc and returns the sealed grid. onCommit,
// if non-nil, is called for each row as it is committed, in document order.
// If ctx ends before the grid is sealed, Assemble returns ctx's error.
func (a *Assembler) Assemble(ctx context.Context, doc *Document, onCommit func(Row)) (Grid, error) {
	asm := NewAssembly(doc)
	log := a.logger.WithComponent("assembler").WithRun(asm.ID())
	log.Info("assembly started", "rows", asm.Total(), "pending", len(asm.Pending()))

	emit := func(rows []Row) {
		for _, r := range rows {
			log.WithRow(r.Index).Debug("row committed", "name", r.Name, "items", len(r.Items))
			if onCommit != nil {
				onCommit(r)
			}
		}
	}

	for _, o := range asm.Omitted() {
		log.WithRow(o.Index).Warn("row omitted", "name", o.Name, "error", o.Err.Error())
	}
	emit(asm.Committed())

	pending := asm.Pending()
	if len(pending) > 0 {
		// Buffered so workers never block on a consumer that has returned.
		results := make(chan rowResult, len(pending))

		p := pool.New()
		if a.maxConcurrent > 0 {
			p = p.WithMaxGoroutines(a.maxConcurrent)
		}
		go func() {
			for _, pr := range pending {
				p.Go(func() {
					col, err := a.fetcher.FetchCollection(ctx, pr.Href)
					results <- rowResult{index: pr.Index, col: col, err: err}
				})
			}
			p.Wait()
			close(results)
		}()

	collect:
		for !asm.Sealed() {
			select {
			case <-ctx.Done():
				log.Warn("assembly interrupted", "resolved", asm.Resolved(), "total", asm.Total())
				return Grid{}, ctx.Err()
			case res, ok := <-results:
				if !ok {
					break collect
				}
				if res.err != nil {
					log.WithRow(res.index).Warn("row omitted", "error", res.err.Error())
				} else if res.col == nil || len(res.col.Items) == 0 {
					log.WithRow(res.index).Warn("row omitted", "error", ErrEmptyCollection.Error())
				}
				emit(asm.Resolve(res.index, res.col, res.err))
			}
		}

		// Rows resolved by a canceled fetch are not a real result.
		if err := ctx.Err(); err != nil {
			return Grid{}, err
		}
	}

	grid := asm.Grid()
	log.Info("assembly sealed", "rows", grid.RowCount(), "tiles", grid.TotalTiles(), "omitted", len(asm.Omitted()))
	return grid, nil
}
