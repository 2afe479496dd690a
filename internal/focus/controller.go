// Package focus implements 2D focus navigation over a grid whose rows have
// irregular lengths.
//
// The arithmetic lives in the pure function [Transition]. [Controller] owns
// one cursor and applies transitions to it; it never touches the grid, and
// rendering the focus marker is left to the caller.
package focus

// Direction is a navigation direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Cursor identifies one cell of a grid.
type Cursor struct {
	Row    int
	Column int
}

// Shape is the part of a grid that navigation needs.
type Shape interface {
	RowCount() int
	TileCount(row int) int
}

// Counts is a Shape given directly as per-row tile counts.
type Counts []int

// RowCount implements Shape.
func (c Counts) RowCount() int { return len(c) }

// TileCount implements Shape.
func (c Counts) TileCount(row int) int {
	if row < 0 || row >= len(c) {
		return 0
	}
	return c[row]
}

// Valid reports whether cur names an existing cell of s.
func Valid(cur Cursor, s Shape) bool {
	if s == nil || cur.Row < 0 || cur.Row >= s.RowCount() {
		return false
	}
	return cur.Column >= 0 && cur.Column < s.TileCount(cur.Row)
}

// Transition returns the cursor after moving cur one step in d over s, and
// whether it moved. Moves past an edge return cur unchanged. Vertical moves
// land on column 0 of the new row.
func Transition(cur Cursor, s Shape, d Direction) (Cursor, bool) {
	if !Valid(cur, s) {
		return cur, false
	}

	next := cur
	switch d {
	case Left:
		if cur.Column == 0 {
			return cur, false
		}
		next.Column--
	case Right:
		if cur.Column >= s.TileCount(cur.Row)-1 {
			return cur, false
		}
		next.Column++
	case Up:
		if cur.Row == 0 {
			return cur, false
		}
		next = Cursor{Row: cur.Row - 1}
	case Down:
		if cur.Row >= s.RowCount()-1 {
			return cur, false
		}
		next = Cursor{Row: cur.Row + 1}
	default:
		return cur, false
	}

	// Rows are non-empty in a sealed grid; guard anyway so the cursor never
	// names a missing cell.
	if !Valid(next, s) {
		return cur, false
	}
	return next, true
}

// Controller holds the focus cursor for one grid. The zero value is inert.
type Controller struct {
	shape  Shape
	cursor Cursor
	active bool
}

// New returns an inert controller.
func New() *Controller {
	return &Controller{}
}

// Reset binds the controller to s and focuses (0,0). If s has no focusable
// first cell the controller becomes inert.
func (c *Controller) Reset(s Shape) {
	c.shape = s
	c.cursor = Cursor{}
	c.active = Valid(c.cursor, s)
}

// Clear makes the controller inert and drops its grid.
func (c *Controller) Clear() {
	c.shape = nil
	c.cursor = Cursor{}
	c.active = false
}

// Inert reports whether no cell is focused.
func (c *Controller) Inert() bool {
	return !c.active
}

// Cursor returns the focused cell, or false when inert.
func (c *Controller) Cursor() (Cursor, bool) {
	return c.cursor, c.active
}

// Move applies one transition and reports whether the cursor changed.
func (c *Controller) Move(d Direction) bool {
	if !c.active {
		return false
	}
	next, moved := Transition(c.cursor, c.shape, d)
	if moved {
		c.cursor = next
	}
	return moved
}

// MoveLeft moves one column left.
func (c *Controller) MoveLeft() bool { return c.Move(Left) }

// MoveRight moves one column right.
func (c *Controller) MoveRight() bool { return c.Move(Right) }

// MoveUp moves to column 0 of the previous row.
func (c *Controller) MoveUp() bool { return c.Move(Up) }

// MoveDown moves to column 0 of the next row.
func (c *Controller) MoveDown() bool { return c.Move(Down) }

// Select returns the focused cell for activation. It never changes state and
// returns false when inert or when the cell no longer exists in the grid.
func (c *Controller) Select() (Cursor, bool) {
	if !c.active || !Valid(c.cursor, c.shape) {
		return Cursor{}, false
	}
	return c.cursor, true
}

// Focused reports whether (row, col) is the focused cell. At most one cell
// is focused at a time.
func (c *Controller) Focused(row, col int) bool {
	return c.active && c.cursor.Row == row && c.cursor.Column == col
}
