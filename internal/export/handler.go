package export

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/driftdesk/driftdesk/canvas-go/internal/document"
)

const maxDocumentSize = 50 << 20 // 50MB

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG handles POST /export/svg: the request body is a board
// document, the response is the rendered SVG as a download.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		http.Error(w, "request too large", http.StatusBadRequest)
		return
	}

	doc, err := document.Unmarshal(body)
	if err != nil {
		http.Error(w, "invalid board document", http.StatusBadRequest)
		return
	}

	name := sanitizeName(doc.Name)
	if name == "" {
		name = "board"
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, name))
	io.WriteString(w, SVG(doc))
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
