package hub

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ArtworkQuery is appended to an image path to request a tile-sized JPEG.
const ArtworkQuery = "&size=400x300&format=jpeg"

// UntitledHeadline is shown for items that carry no headline.
const UntitledHeadline = "No Title"

// Document is a decoded hub. It is immutable once fetched.
type Document struct {
	Components []RowSpec `json:"components"`
}

// RowSpec describes one row of the hub. A row with no items must carry an
// Href pointing at its collection.
type RowSpec struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
	Href  string `json:"href,omitempty"`
}

// Lazy reports whether the row's items must be fetched.
func (r RowSpec) Lazy() bool {
	return len(r.Items) == 0
}

// Item is one tile's display payload. Only the fields the UI reads are
// decoded; the full object is kept in Raw.
type Item struct {
	ID      string
	Visuals Visuals
	Raw     json.RawMessage
}

// Visuals is the presentation part of an item.
type Visuals struct {
	Headline string  `json:"headline"`
	Artwork  Artwork `json:"artwork"`
}

// Artwork holds image references by placement.
type Artwork struct {
	HorizontalTile struct {
		Image struct {
			Path string `json:"path"`
		} `json:"image"`
	} `json:"horizontal_tile"`
}

type itemWire struct {
	ID      json.RawMessage `json:"id"`
	Visuals Visuals         `json:"visuals"`
}

// UnmarshalJSON decodes an item, accepting string or numeric ids.
func (i *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}

	i.ID = id
	i.Visuals = w.Visuals
	i.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original payload when available.
func (i Item) MarshalJSON() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	w := struct {
		ID      string  `json:"id,omitempty"`
		Visuals Visuals `json:"visuals"`
	}{i.ID, i.Visuals}
	return json.Marshal(w)
}

// decodeID reads an item id. Strings and numbers become their text; any
// other JSON value is kept verbatim, since the payload is opaque.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return string(raw), nil
	}
	return n.String(), nil
}

// Headline returns the item's headline, or UntitledHeadline when it has none.
func (i Item) Headline() string {
	if i.Visuals.Headline == "" {
		return UntitledHeadline
	}
	return i.Visuals.Headline
}

// ArtworkURL returns the horizontal tile image URL sized for a tile, or ""
// when the item has no artwork.
func (i Item) ArtworkURL() string {
	path := i.Visuals.Artwork.HorizontalTile.Image.Path
	if path == "" {
		return ""
	}
	return path + ArtworkQuery
}

// Collection is the payload of a collection endpoint.
type Collection struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Row is a resolved, non-empty row. Index is the row's position in the hub
// document, which differs from its grid position when earlier rows were
// omitted.
type Row struct {
	Index int
	Name  string
	Items []Item
}

// Grid is the sealed result of an assembly: resolved rows in document order.
type Grid struct {
	Rows []Row
}

// RowCount returns the number of rows.
func (g Grid) RowCount() int {
	return len(g.Rows)
}

// TileCount returns the number of tiles in row, or 0 when row is out of range.
func (g Grid) TileCount(row int) int {
	if row < 0 || row >= len(g.Rows) {
		return 0
	}
	return len(g.Rows[row].Items)
}

// TotalTiles returns the number of tiles across all rows.
func (g Grid) TotalTiles() int {
	n := 0
	for _, r := range g.Rows {
		n += len(r.Items)
	}
	return n
}

// Tile returns the item at (row, col).
func (g Grid) Tile(row, col int) (Item, bool) {
	if col < 0 || col >= g.TileCount(row) {
		return Item{}, false
	}
	return g.Rows[row].Items[col], true
}

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// String returns a compact shape description, e.g. "grid[2 3]".
func (g Grid) String() string {
	var b bytes.Buffer
	b.WriteString("grid[")
	for i, r := range g.Rows {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(len(r.Items)))
	}
	b.WriteByte(']')
	return b.String()
}
