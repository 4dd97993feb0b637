package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=backup
type Repository interface {
	Dump(ctx context.Context) (map[string][]map[string]any, error)
}

// Service writes full-database snapshots as timestamped JSON files and
// prunes the backup directory down to a retention count.
type Service struct {
	repo      Repository
	dir       string
	retention int
	now       func() time.Time
}

func NewService(repo Repository, dir string, retention int) *Service {
	return &Service{
		repo:      repo,
		dir:       dir,
		retention: retention,
		now:       time.Now,
	}
}

// Run dumps every domain table to one JSON file and returns its path.
func (s *Service) Run(ctx context.Context) (string, error) {
	tables, err := s.repo.Dump(ctx)
	if err != nil {
		return "", fmt.Errorf("dumping tables: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	name := fmt.Sprintf("backup_%s.json", s.now().UTC().Format("20060102T150405"))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(tables); err != nil {
		return "", fmt.Errorf("writing backup file: %w", err)
	}

	if err := s.prune(); err != nil {
		return "", fmt.Errorf("pruning backups: %w", err)
	}

	return path, nil
}

// prune deletes the oldest backup files beyond the retention count.
// Timestamped names sort chronologically, so lexical order is enough.
func (s *Service) prune() error {
	if s.retention <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(s.dir, "backup_*.json"))
	if err != nil {
		return err
	}

	if len(matches) <= s.retention {
		return nil
	}

	sort.Strings(matches)

	for _, path := range matches[:len(matches)-s.retention] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	return nil
}
