package board

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/driftdesk/driftdesk/canvas-go/internal/document"
)

// Source is the slice of the canvas engine the autosaver needs: a dirty
// flag and a serializable document.
type Source interface {
	BoardID() string
	Dirty() bool
	MarkClean()
	SaveDocument() *document.BoardDocument
}

// Saver persists a snapshot document. Satisfied by *Service.
type Saver interface {
	SaveSnapshot(ctx context.Context, boardID string, doc json.RawMessage) (int32, error)
}

// Autosaver snapshots a dirty board on a fixed interval. Saves are best
// effort: a failed save is logged and retried on the next tick, the dirty
// flag stays set.
type Autosaver struct {
	source   Source
	saver    Saver
	interval time.Duration
}

func NewAutosaver(source Source, saver Saver, interval time.Duration) *Autosaver {
	return &Autosaver{source: source, saver: saver, interval: interval}
}

// Run blocks until ctx is cancelled, saving whenever the board is dirty at
// a tick.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.saveIfDirty(ctx)
			return
		case <-ticker.C:
			a.saveIfDirty(ctx)
		}
	}
}

func (a *Autosaver) saveIfDirty(ctx context.Context) {
	if !a.source.Dirty() {
		return
	}

	data, err := a.source.SaveDocument().Marshal()
	if err != nil {
		slog.Error("autosave serialize failed", "board", a.source.BoardID(), "error", err)
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	version, err := a.saver.SaveSnapshot(saveCtx, a.source.BoardID(), data)
	if err != nil {
		slog.Error("autosave failed", "board", a.source.BoardID(), "error", err)
		return
	}

	a.source.MarkClean()
	slog.Info("board autosaved", "board", a.source.BoardID(), "version", version)
}
