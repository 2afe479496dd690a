package hub

import (
	"github.com/google/uuid"

	"github.com/Iron-Ham/hubview/internal/errors"
)

// ErrEmptyCollection marks a row omitted because its collection had no items.
var ErrEmptyCollection = errors.New("collection has no items")

// ErrRowMalformed marks a row with neither items nor href. DecodeDocument
// rejects such a hub outright; a Document built in code that still carries
// one has that row omitted.
var ErrRowMalformed = errors.New("row has no items and no href")

type slotState int

const (
	slotPending slotState = iota
	slotPresent
	slotAbsent
)

// PendingRow is a row waiting on a collection fetch.
type PendingRow struct {
	Index int
	Name  string
	Href  string
}

// Omission records why a row was left out of the grid.
type Omission struct {
	Index int
	Name  string
	Err   error
}

// Assembly is one assembly run over a hub document. It records row outcomes
// in any order and commits rows strictly in document order: row i is
// committed once rows 0..i have all resolved. Assembly does no I/O and is not
// safe for concurrent use; drivers apply outcomes from a single goroutine.
type Assembly struct {
	id       string
	specs    []RowSpec
	states   []slotState
	rows     []Row
	frontier int // first row not yet passed by the commit sequence
	resolved int

	committed []Row
	omitted   []Omission
}

// NewAssembly starts a run over doc. Inline rows resolve immediately, as do
// malformed rows (no items and no href), which are omitted.
func NewAssembly(doc *Document) *Assembly {
	var specs []RowSpec
	if doc != nil {
		specs = doc.Components
	}

	a := &Assembly{
		id:     uuid.NewString(),
		specs:  specs,
		states: make([]slotState, len(specs)),
		rows:   make([]Row, len(specs)),
	}

	for i, spec := range specs {
		switch {
		case !spec.Lazy():
			a.present(i, Row{Index: i, Name: spec.Name, Items: spec.Items})
		case spec.Href == "":
			a.absent(i, ErrRowMalformed)
		}
	}
	a.advance()

	return a
}

// ID returns the run ID.
func (a *Assembly) ID() string {
	return a.id
}

// Pending returns the rows that still need a collection fetch, in document order.
func (a *Assembly) Pending() []PendingRow {
	var pending []PendingRow
	for i, st := range a.states {
		if st == slotPending {
			pending = append(pending, PendingRow{Index: i, Name: a.specs[i].Name, Href: a.specs[i].Href})
		}
	}
	return pending
}

// Resolve records the outcome of row index's collection fetch and returns
// the rows it newly committed, possibly none. A non-empty collection makes
// the row present; an error, a nil collection or an empty collection makes
// it absent. Resolutions for unknown or already resolved rows are ignored.
func (a *Assembly) Resolve(index int, col *Collection, err error) []Row {
	if index < 0 || index >= len(a.states) || a.states[index] != slotPending {
		return nil
	}

	switch {
	case err != nil:
		a.absent(index, err)
	case col == nil || len(col.Items) == 0:
		a.absent(index, ErrEmptyCollection)
	default:
		name := a.specs[index].Name
		if col.Name != "" {
			name = col.Name
		}
		a.present(index, Row{Index: index, Name: name, Items: col.Items})
	}

	return a.advance()
}

func (a *Assembly) present(index int, row Row) {
	a.states[index] = slotPresent
	a.rows[index] = row
	a.resolved++
}

func (a *Assembly) absent(index int, cause error) {
	a.states[index] = slotAbsent
	a.resolved++
	a.omitted = append(a.omitted, Omission{Index: index, Name: a.specs[index].Name, Err: cause})
}

// advance moves the commit frontier over every resolved row and returns the
// present rows it passed.
func (a *Assembly) advance() []Row {
	var newly []Row
	for a.frontier < len(a.states) && a.states[a.frontier] != slotPending {
		if a.states[a.frontier] == slotPresent {
			row := a.rows[a.frontier]
			a.committed = append(a.committed, row)
			newly = append(newly, row)
		}
		a.frontier++
	}
	return newly
}

// Committed returns the rows committed so far, in document order.
func (a *Assembly) Committed() []Row {
	return append([]Row(nil), a.committed...)
}

// Omitted returns the rows left out so far, in resolution order.
func (a *Assembly) Omitted() []Omission {
	return append([]Omission(nil), a.omitted...)
}

// Resolved returns how many rows have an outcome.
func (a *Assembly) Resolved() int {
	return a.resolved
}

// Total returns the number of rows in the document.
func (a *Assembly) Total() int {
	return len(a.specs)
}

// Sealed reports whether every row has resolved. No rows are committed
// after this becomes true.
func (a *Assembly) Sealed() bool {
	return a.frontier == len(a.states)
}

// Grid returns the committed rows as a grid. Before the assembly is sealed
// it is a prefix of the final grid.
func (a *Assembly) Grid() Grid {
	return Grid{Rows: a.Committed()}
}
