// Package board persists boards and their snapshot versions. Snapshots
// are append-only: every save writes a new version, so loading the latest
// one plus a viewport restore reconstructs the board exactly.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/driftdesk/driftdesk/canvas-go/internal/document"
	"github.com/driftdesk/driftdesk/canvas-go/internal/typeid"
)

var ErrNotFound = errors.New("board not found")

type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

const timeFormat = "2006-01-02T15:04:05Z"

// Create inserts a board and seeds version 1 with an empty document.
func (s *Service) Create(ctx context.Context, name string) (*Board, error) {
	boardID := typeid.NewBoardID()

	row := s.pool.QueryRow(ctx, `
		INSERT INTO boards (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at, updated_at`,
		boardID, name)

	b, err := scanBoard(row)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	emptyDoc := document.NewEmptyDocument(boardID, name)
	docJSON, err := emptyDoc.Marshal()
	if err != nil {
		return nil, err
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO board_snapshots (id, board_id, version, document)
		VALUES ($1, $2, 1, $3)`,
		typeid.NewSnapshotID(), boardID, docJSON); err != nil {
		return nil, fmt.Errorf("seed initial snapshot: %w", err)
	}

	return b, nil
}

// Get returns one board's metadata.
func (s *Service) Get(ctx context.Context, boardID string) (*Board, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM boards WHERE id = $1`, boardID)

	b, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

// List returns all boards, most recently updated first.
func (s *Service) List(ctx context.Context) ([]Board, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM boards ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var boards []Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, *b)
	}
	return boards, rows.Err()
}

// Delete removes a board and (by cascade) its snapshots.
func (s *Service) Delete(ctx context.Context, boardID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveSnapshot appends the next snapshot version for a board and bumps the
// board's updated_at. Returns the new version.
func (s *Service) SaveSnapshot(ctx context.Context, boardID string, doc json.RawMessage) (int32, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var version int32
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1
		FROM board_snapshots WHERE board_id = $1`, boardID).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("next version: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO board_snapshots (id, board_id, version, document)
		VALUES ($1, $2, $3, $4)`,
		typeid.NewSnapshotID(), boardID, version, doc); err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE boards SET updated_at = now() WHERE id = $1`, boardID); err != nil {
		return 0, fmt.Errorf("touch board: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

// GetLatestSnapshot returns the newest snapshot document for a board.
func (s *Service) GetLatestSnapshot(ctx context.Context, boardID string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := s.pool.QueryRow(ctx, `
		SELECT document FROM board_snapshots
		WHERE board_id = $1
		ORDER BY version DESC LIMIT 1`, boardID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return doc, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanBoard(row scannable) (*Board, error) {
	var b Board
	var createdAt, updatedAt time.Time
	if err := row.Scan(&b.ID, &b.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.UTC().Format(timeFormat)
	b.UpdatedAt = updatedAt.UTC().Format(timeFormat)
	return &b, nil
}
