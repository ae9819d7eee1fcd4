package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path (":memory:" is allowed) and applies the migrations.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	scripts, err := readMigrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadHighScore(ctx context.Context) (int, error) {
	q := `
	SELECT score FROM high_scores WHERE id = 1;
	`
	var score int
	if err := r.db.QueryRowContext(ctx, q).Scan(&score); err != nil {
		if err == sql.ErrNoRows {
			return 0, &ErrNotFound{}
		}
		return 0, fmt.Errorf("failed to scan high score: %v", err)
	}

	return score, nil
}

func (r *SQLiteRepository) SaveHighScore(ctx context.Context, score int) error {
	if err := validateScore(score); err != nil {
		return err
	}

	q := `
	INSERT INTO high_scores (id, score, updated_at) VALUES (1, ?, ?)
	ON CONFLICT (id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
	WHERE excluded.score > high_scores.score;
	`
	_, err := r.db.ExecContext(ctx, q, score, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save high score: %v", err)
	}

	return nil
}
