package repositories

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Repository is the persistence slot for the single best score.
type Repository interface {
	Close(ctx context.Context) error
	// LoadHighScore returns the stored high score, or an ErrNotFound error if none was saved yet.
	LoadHighScore(ctx context.Context) (int, error)
	// SaveHighScore stores score unless a greater or equal score is already stored.
	SaveHighScore(ctx context.Context, score int) error
}

//go:embed migrations
var migrations embed.FS

// readMigrations returns the migration scripts for a driver in file name order.
func readMigrations(driver string) ([]string, error) {
	dir := "migrations/" + driver
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	scripts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		b, err := fs.ReadFile(migrations, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", path, err)
		}
		scripts = append(scripts, string(b))
	}
	return scripts, nil
}

func validateScore(score int) error {
	if score < 0 {
		return fmt.Errorf("score must not be negative: %d", score)
	}
	return nil
}
