package hub

import (
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/hubview/internal/errors"
)

// ErrMissingComponents is returned when a hub document has no components field.
var ErrMissingComponents = errors.New("hub document has no components field")

// ErrMissingItems is returned when a collection document has no items field.
var ErrMissingItems = errors.New("collection document has no items field")

// DecodeDocument parses a hub document. A body that is not JSON, a JSON
// object without a components array, or a row with neither items nor href
// is malformed.
func DecodeDocument(data []byte) (*Document, error) {
	var wire struct {
		Components *[]RowSpec `json:"components"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	if wire.Components == nil {
		return nil, ErrMissingComponents
	}
	for i, row := range *wire.Components {
		if row.Lazy() && row.Href == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("row %q has no items and no href", row.Name)).
				WithField(fmt.Sprintf("components[%d].href", i)).
				WithCause(ErrRowMalformed)
		}
	}
	return &Document{Components: *wire.Components}, nil
}

// DecodeCollection parses a collection document. A JSON object without an
// items array is malformed; an empty array is valid.
func DecodeCollection(data []byte) (*Collection, error) {
	var wire struct {
		Name  string  `json:"name"`
		Items *[]Item `json:"items"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	if wire.Items == nil {
		return nil, ErrMissingItems
	}
	return &Collection{Name: wire.Name, Items: *wire.Items}, nil
}
