package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/driftdesk/driftdesk/canvas-go/internal/asset"
	"github.com/driftdesk/driftdesk/canvas-go/internal/board"
	"github.com/driftdesk/driftdesk/canvas-go/internal/config"
	"github.com/driftdesk/driftdesk/canvas-go/internal/db"
	"github.com/driftdesk/driftdesk/canvas-go/internal/engine"
	"github.com/driftdesk/driftdesk/canvas-go/internal/export"
	mw "github.com/driftdesk/driftdesk/canvas-go/internal/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	boardService := board.NewService(pool)
	boardHandler := board.NewHandler(boardService)

	// The playground board runs a headless engine on the server so that
	// visitors get a persistent demo canvas without creating a board first.
	playground, err := startPlayground(ctx, cfg, boardService)
	if err != nil {
		slog.Error("start playground", "error", err)
		os.Exit(1)
	}

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/playground/document", playground.serveDocument).Methods("GET", "OPTIONS")

	assetHandler := asset.NewHandler(cfg.AssetDir)
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/assets/{assetId}", assetHandler.Delete).Methods("DELETE", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	exportHandler := export.NewHandler()
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST", "OPTIONS")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/snapshots/latest", boardHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/boards/{boardId}/snapshots", boardHandler.SaveSnapshot).Methods("POST")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: cancelling ctx stops the autosaver, which flushes
	// a final snapshot if the playground board is dirty.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

type playground struct {
	eng *engine.Engine
}

// startPlayground ensures the demo board exists, loads its latest snapshot
// into a headless engine and starts the autosaver.
func startPlayground(ctx context.Context, cfg *config.Config, svc *board.Service) (*playground, error) {
	const playgroundName = "Playground"

	boards, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	var b *board.Board
	for i := range boards {
		if boards[i].Name == playgroundName {
			b = &boards[i]
			break
		}
	}
	if b == nil {
		if b, err = svc.Create(ctx, playgroundName); err != nil {
			return nil, err
		}
	}

	eng := engine.New(engine.Options{
		MinScale:         cfg.MinScale,
		MaxScale:         cfg.MaxScale,
		GridSize:         cfg.GridSize,
		SnapThreshold:    cfg.SnapThreshold,
		SnapToGrid:       true,
		SnapToElements:   true,
		QuadTreeCapacity: cfg.QuadTreeCapacity,
		QuadTreeMaxDepth: cfg.QuadTreeMaxDepth,
		PoolMaxPerKey:    cfg.PoolMaxPerKey,
		HistoryLimit:     cfg.HistoryLimit,
	})

	doc, err := svc.GetLatestSnapshot(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if err := eng.LoadDocumentJSON(doc); err != nil {
		slog.Warn("playground snapshot unreadable, loading sample", "error", err)
		eng.LoadSampleDocument(b.ID)
	}
	if eng.Store().Len() == 0 {
		eng.LoadSampleDocument(b.ID)
	}

	go board.NewAutosaver(eng, svc, cfg.AutosaveInterval).Run(ctx)

	return &playground{eng: eng}, nil
}

func (p *playground) serveDocument(w http.ResponseWriter, r *http.Request) {
	data, err := p.eng.SaveDocument().Marshal()
	if err != nil {
		slog.Error("serialize playground", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
