package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists knowledge-base chunks and their embeddings so the
// index survives restarts. Conversations are deliberately not persisted.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS kb_chunks (
        id TEXT PRIMARY KEY, -- UUID
        content TEXT NOT NULL,
        source TEXT NOT NULL,
        page INTEGER NOT NULL DEFAULT 1,
        chunk_index INTEGER NOT NULL DEFAULT 0,
        rowid_order INTEGER, -- preserves insertion order across reloads
        embedding_json TEXT NOT NULL -- JSON-encoded []float32
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// ReplaceChunks atomically swaps the stored chunk set for a new one. The
// whole replacement runs in a single transaction so readers reloading the
// table never observe a partially ingested index.
func (s *SQLiteStore) ReplaceChunks(ctx context.Context, chunks []ChunkRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM kb_chunks"); err != nil {
		return fmt.Errorf("failed to clear kb_chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO kb_chunks (id, content, source, page, chunk_index, rowid_order, embedding_json) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		embeddingBytes, err := json.Marshal(chunk.Embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding for chunk %s: %w", chunk.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Content, chunk.Source,
			chunk.Page, chunk.ChunkIndex, i, string(embeddingBytes)); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk replacement: %w", err)
	}
	return nil
}

// LoadChunks returns every stored chunk in insertion order.
func (s *SQLiteStore) LoadChunks(ctx context.Context) ([]ChunkRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content, source, page, chunk_index, embedding_json FROM kb_chunks ORDER BY rowid_order ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query kb_chunks: %w", err)
	}
	defer rows.Close()

	var chunks []ChunkRecord
	for rows.Next() {
		var chunk ChunkRecord
		var embeddingJSON string
		if err := rows.Scan(&chunk.ID, &chunk.Content, &chunk.Source,
			&chunk.Page, &chunk.ChunkIndex, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan kb_chunk row: %w", err)
		}
		if err := json.Unmarshal([]byte(embeddingJSON), &chunk.Embedding); err != nil {
			log.Printf("Warning: failed to unmarshal embedding for chunk %s (content: %.50s...): %v. Skipping chunk.",
				chunk.ID, chunk.Content, err)
			continue
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading kb_chunk rows: %w", err)
	}
	return chunks, nil
}

// ClearChunks removes every stored chunk.
func (s *SQLiteStore) ClearChunks(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kb_chunks"); err != nil {
		return fmt.Errorf("failed to delete kb_chunks: %w", err)
	}
	return nil
}

// CountChunks returns the number of stored chunks.
func (s *SQLiteStore) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kb_chunks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count kb_chunks: %w", err)
	}
	return count, nil
}
