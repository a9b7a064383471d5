package render

import (
	"encoding/json"

	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

// DrawCommand is a single drawing operation for the host to execute on a
// Canvas2D context. Commands are emitted in painter's order, layer by
// layer.
type DrawCommand struct {
	Op          string       `json:"op"` // "rect", "ellipse", "line", "polyline", "text", "image"
	ID          string       `json:"id,omitempty"`
	Layer       string       `json:"layer"`
	X           float64      `json:"x,omitempty"`
	Y           float64      `json:"y,omitempty"`
	Width       float64      `json:"width,omitempty"`
	Height      float64      `json:"height,omitempty"`
	Rotation    float64      `json:"rotation,omitempty"`
	Points      []geom.Point `json:"points,omitempty"`
	Fill        string       `json:"fill,omitempty"`
	Stroke      string       `json:"stroke,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
	Opacity     float64      `json:"opacity,omitempty"`
	Dashed      bool         `json:"dashed,omitempty"`
	Text        string       `json:"text,omitempty"`
}

// opForKey maps a node's pool key (the element type tag, or an overlay
// chrome key) to a draw op.
func opForKey(key string) string {
	switch key {
	case "circle", "ellipse":
		return "ellipse"
	case "connector", "mindmap-edge", "guide":
		return "line"
	case "drawing-stroke":
		return "polyline"
	case "text":
		return "text"
	case "image":
		return "image"
	default:
		return "rect"
	}
}

// Compile flattens the retained layers into a draw command buffer.
func (r *Reconciler) Compile() []DrawCommand {
	var out []DrawCommand
	for l := Layer(0); l < layerCount; l++ {
		for _, n := range r.layers[l] {
			if n.destroyed || !n.Visible {
				continue
			}
			cmd := DrawCommand{
				Op:          opForKey(n.Key),
				ID:          n.ID,
				Layer:       l.String(),
				X:           n.X,
				Y:           n.Y,
				Width:       n.Width * n.ScaleX,
				Height:      n.Height * n.ScaleY,
				Rotation:    n.Rotation,
				Points:      n.Points,
				Fill:        n.Fill,
				Stroke:      n.Stroke,
				StrokeWidth: n.StrokeWidth,
				Opacity:     n.Opacity,
				Dashed:      n.Dashed,
				Text:        n.Text,
			}
			out = append(out, cmd)
		}
	}
	return out
}

// CommandsToJSON serializes draw commands for the wasm/host boundary.
func CommandsToJSON(commands []DrawCommand) (string, error) {
	if len(commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
