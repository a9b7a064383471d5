// Package document defines the opaque board snapshot exchanged with the
// persistence layer: the full element map, the paint order and the
// viewport. ReplaceAll plus a viewport restore reconstructs prior state
// exactly.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
)

type ViewportState struct {
	Scale float64 `json:"scale"`
	PanX  float64 `json:"panX"`
	PanY  float64 `json:"panY"`
}

type BoardDocument struct {
	BoardID  string                     `json:"boardId"`
	Name     string                     `json:"name"`
	Version  int                        `json:"version"`
	Elements map[string]element.Element `json:"elements"`
	Order    []string                   `json:"order"`
	Viewport ViewportState              `json:"viewport"`
}

// NewEmptyDocument creates an empty board snapshot.
func NewEmptyDocument(boardID, name string) *BoardDocument {
	return &BoardDocument{
		BoardID:  boardID,
		Name:     name,
		Version:  1,
		Elements: map[string]element.Element{},
		Order:    []string{},
		Viewport: ViewportState{Scale: 1},
	}
}

// Marshal serializes the document.
func (d *BoardDocument) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal board document: %w", err)
	}
	return data, nil
}

// Unmarshal parses a document, tolerating missing maps.
func Unmarshal(data []byte) (*BoardDocument, error) {
	var d BoardDocument
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal board document: %w", err)
	}
	if d.Elements == nil {
		d.Elements = map[string]element.Element{}
	}
	if d.Viewport.Scale == 0 {
		d.Viewport.Scale = 1
	}
	return &d, nil
}
