package backup

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	tables map[string][]map[string]any
	err    error
}

func (m *mockRepo) Dump(ctx context.Context) (map[string][]map[string]any, error) {
	return m.tables, m.err
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()

	repo := &mockRepo{tables: map[string][]map[string]any{
		"clients": {
			{"id": "a1", "name": "Silva"},
		},
		"contracts": {},
	}}

	svc := NewService(repo, dir, 5)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 15, 3, 0, 0, 0, time.UTC)
	}

	path, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup_20240615T030000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got["clients"], 1)
	assert.Equal(t, "Silva", got["clients"][0]["name"])
}

func TestService_Run_PrunesOldBackups(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"backup_20240101T030000.json",
		"backup_20240102T030000.json",
		"backup_20240103T030000.json",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	repo := &mockRepo{tables: map[string][]map[string]any{}}

	svc := NewService(repo, dir, 2)
	svc.now = func() time.Time {
		return time.Date(2024, time.January, 4, 3, 0, 0, 0, time.UTC)
	}

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "backup_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// The two newest survive.
	assert.Equal(t, filepath.Join(dir, "backup_20240103T030000.json"), matches[0])
	assert.Equal(t, filepath.Join(dir, "backup_20240104T030000.json"), matches[1])
}

func TestService_Run_DumpError(t *testing.T) {
	repo := &mockRepo{err: errors.New("db error")}

	svc := NewService(repo, t.TempDir(), 5)

	_, err := svc.Run(context.Background())
	assert.Error(t, err)
}
