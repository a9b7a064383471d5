// Package export renders a board document to standalone SVG. The output
// follows the canvas paint order, so what you see on screen is what you
// get in the file.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/driftdesk/driftdesk/canvas-go/internal/document"
	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/geom"
)

const exportPadding = 20.0

// SVG renders the document's elements into an SVG sized to the content
// bounds plus padding. An empty board yields a small blank canvas.
func SVG(doc *document.BoardDocument) string {
	var content geom.Rect
	found := false
	for _, id := range doc.Order {
		el, ok := doc.Elements[id]
		if !ok {
			continue
		}
		if !found {
			content, found = el.Bounds(), true
			continue
		}
		content = content.Union(el.Bounds())
	}
	if !found {
		content = geom.Rect{Width: 100, Height: 100}
	}
	view := content.Pad(exportPadding)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(view.X), num(view.Y), num(view.Width), num(view.Height),
		num(view.Width), num(view.Height))

	for _, id := range doc.Order {
		el, ok := doc.Elements[id]
		if !ok {
			continue
		}
		writeElement(&b, el)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeElement(b *strings.Builder, el element.Element) {
	style := styleAttrs(el.Style)
	transform := ""
	if el.Rotation != 0 {
		cx := el.X + el.Width/2
		cy := el.Y + el.Height/2
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(el.Rotation), num(cx), num(cy))
	}

	switch el.Type {
	case element.TypeCircle, element.TypeEllipse:
		fmt.Fprintf(b, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s%s/>`+"\n",
			num(el.X+el.Width/2), num(el.Y+el.Height/2),
			num(el.Width/2), num(el.Height/2), style, transform)

	case element.TypeTriangle:
		fmt.Fprintf(b, `<polygon points="%s,%s %s,%s %s,%s"%s%s/>`+"\n",
			num(el.X+el.Width/2), num(el.Y),
			num(el.X+el.Width), num(el.Y+el.Height),
			num(el.X), num(el.Y+el.Height), style, transform)

	case element.TypeConnector, element.TypeMindmapEdge:
		if el.Connector == nil {
			return
		}
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			num(el.Connector.From.X), num(el.Connector.From.Y),
			num(el.Connector.To.X), num(el.Connector.To.Y), style)

	case element.TypeDrawingStroke:
		if el.Stroke == nil || len(el.Stroke.Points) == 0 {
			return
		}
		pts := make([]string, len(el.Stroke.Points))
		for i, p := range el.Stroke.Points {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		tag := "polyline"
		if el.Stroke.Closed {
			tag = "polygon"
		}
		if el.Style.Fill == "" {
			style = ` fill="none"` + style
		}
		fmt.Fprintf(b, `<%s points="%s"%s/>`+"\n", tag, strings.Join(pts, " "), style)

	case element.TypeText:
		writeText(b, el, transform)

	default:
		// rectangle, sticky-note, table, image, mindmap-node
		rx := ""
		if el.Style.CornerRadius > 0 {
			rx = fmt.Sprintf(` rx="%s"`, num(el.Style.CornerRadius))
		}
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"%s%s%s/>`+"\n",
			num(el.X), num(el.Y), num(el.Width), num(el.Height), rx, style, transform)
		if el.Text != "" {
			writeText(b, el, transform)
		}
	}
}

func writeText(b *strings.Builder, el element.Element, transform string) {
	size := el.Style.FontSize
	if size == 0 {
		size = 14
	}
	family := el.Style.FontFamily
	if family == "" {
		family = "sans-serif"
	}
	fmt.Fprintf(b, `<text x="%s" y="%s" font-family="%s" font-size="%s"%s>%s</text>`+"\n",
		num(el.X+8), num(el.Y+size+8), html.EscapeString(family), num(size),
		transform, html.EscapeString(el.Text))
}

func styleAttrs(s element.Style) string {
	var b strings.Builder
	if s.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, html.EscapeString(s.Fill))
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, html.EscapeString(s.Stroke))
	}
	if s.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, num(s.StrokeWidth))
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, num(s.Opacity))
	}
	return b.String()
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
