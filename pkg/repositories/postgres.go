package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	scripts, err := readMigrations("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := pool.Exec(ctx, migration); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) LoadHighScore(ctx context.Context) (int, error) {
	q := `
	SELECT score FROM high_scores WHERE id = 1;
	`
	var score int32
	if err := r.pool.QueryRow(ctx, q).Scan(&score); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &ErrNotFound{}
		}
		return 0, fmt.Errorf("failed to scan high score: %v", err)
	}

	return int(score), nil
}

func (r *PostgresRepository) SaveHighScore(ctx context.Context, score int) error {
	if err := validateScore(score); err != nil {
		return err
	}

	q := `
	INSERT INTO high_scores (id, score, updated_at) VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
	WHERE high_scores.score < EXCLUDED.score;
	`
	_, err := r.pool.Exec(ctx, q, int32(score), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save high score: %v", err)
	}

	return nil
}
