// Package render keeps the retained-mode render tree consistent with the
// element store. Nodes are organized into ordered paint layers; all node
// mutation happens behind the reconciler; no other component touches
// render nodes directly.
package render

import "github.com/driftdesk/driftdesk/canvas-go/internal/geom"

// Layer identifies one ordered paint layer. Painting goes background <
// main < preview < overlay. Selection chrome, marquee rectangles and
// transform handles live exclusively in the overlay layer so they never
// participate in hit-testing against scene content.
type Layer int

const (
	LayerBackground Layer = iota
	LayerMain
	LayerPreview
	LayerOverlay
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerMain:
		return "main"
	case LayerPreview:
		return "preview"
	case LayerOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Node is a persistent drawable mirroring one element (or one piece of
// overlay chrome). It is updated in place across frames rather than
// recreated.
type Node struct {
	ID    string
	Key   string
	Layer Layer

	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64

	// Transient transform preview factors. The reconciler resets both to 1
	// whenever width/height are committed, so scale never accumulates
	// across transforms.
	ScaleX float64
	ScaleY float64

	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Dashed      bool

	Text   string
	Points []geom.Point

	Visible bool

	destroyed bool
}

// reset returns the node to a blank reusable state.
func (n *Node) reset() {
	*n = Node{ScaleX: 1, ScaleY: 1, Opacity: 1, Visible: true}
}

// Destroyed reports whether the node has been disposed.
func (n *Node) Destroyed() bool { return n.destroyed }
