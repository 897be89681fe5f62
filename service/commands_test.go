package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumina/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTool(t *testing.T) (*DBTool, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &DBTool{
		Dir: filepath.Join(t.TempDir(), "data", "lumina"),
		In:  strings.NewReader(""),
		Out: &out,
	}, &out
}

func storedPosts(t *testing.T, dir string) int64 {
	t.Helper()
	repo, err := repositories.OpenBadger(dir)
	require.NoError(t, err)
	defer repo.Close()
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestDBToolRun(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		output string
	}{
		{"no arguments", nil, 1, "Usage: lumina db <command>"},
		{"help", []string{"help"}, 0, "Usage: lumina db <command>"},
		{"unknown command", []string{"unknown"}, 1, "Unknown db command: unknown"},
		{"restore without file", []string{"restore"}, 1, "restore needs a backup file"},
		{"count without store", []string{"count"}, 1, "no store in"},
		{"backup without store", []string{"backup"}, 1, "no store in"},
		{"clean without store", []string{"clean"}, 0, "nothing to clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, out := newTool(t)
			assert.Equal(t, tt.code, tool.Run(tt.args))
			assert.Contains(t, out.String(), tt.output)
		})
	}
}

func TestDBToolInitAndCount(t *testing.T) {
	tool, out := newTool(t)

	require.Equal(t, 0, tool.Run([]string{"init"}))
	assert.DirExists(t, tool.Dir)
	assert.Equal(t, int64(1), storedPosts(t, tool.Dir))

	out.Reset()
	assert.Equal(t, 0, tool.Run([]string{"count"}))
	assert.Contains(t, out.String(), "1 posts")

	out.Reset()
	assert.Equal(t, 1, tool.Run([]string{"init"}))
	assert.Contains(t, out.String(), "already exists")
}

func TestDBToolClean(t *testing.T) {
	tool, out := newTool(t)
	require.NoError(t, tool.Init())

	t.Run("cancelled", func(t *testing.T) {
		tool.In = strings.NewReader("n\n")
		out.Reset()

		assert.Equal(t, 1, tool.Run([]string{"clean"}))
		assert.Contains(t, out.String(), "Operation cancelled")
		assert.DirExists(t, tool.Dir)
	})

	t.Run("confirmed", func(t *testing.T) {
		tool.In = strings.NewReader("Y\n")
		out.Reset()

		assert.Equal(t, 0, tool.Run([]string{"clean"}))
		assert.NoDirExists(t, tool.Dir)
	})
}

func TestDBToolBackupAndRestore(t *testing.T) {
	tool, out := newTool(t)
	require.NoError(t, tool.Init())

	t.Run("default location", func(t *testing.T) {
		path, err := tool.Backup("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(tool.Dir), "backups"), filepath.Dir(path))
		assert.FileExists(t, path)
	})

	backupFile := filepath.Join(t.TempDir(), "lumina.bak")
	require.Equal(t, 0, tool.Run([]string{"backup", backupFile}))
	assert.Contains(t, out.String(), "Backup written to "+backupFile)

	t.Run("missing backup", func(t *testing.T) {
		assert.Error(t, tool.Restore(filepath.Join(t.TempDir(), "nope.bak")))
	})

	t.Run("empty backup", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty.bak")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))

		err := tool.Restore(empty)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("existing store, cancelled", func(t *testing.T) {
		tool.In = strings.NewReader("\n")
		assert.ErrorIs(t, tool.Restore(backupFile), errCancelled)
		assert.Equal(t, int64(1), storedPosts(t, tool.Dir))
	})

	t.Run("into a clean directory", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(tool.Dir))

		require.NoError(t, tool.Restore(backupFile))
		assert.Equal(t, int64(1), storedPosts(t, tool.Dir))
	})

	t.Run("existing store, confirmed", func(t *testing.T) {
		tool.In = strings.NewReader("y\n")
		out.Reset()

		assert.Equal(t, 0, tool.Run([]string{"restore", backupFile}))
		assert.Contains(t, out.String(), "Done")
		assert.Equal(t, int64(1), storedPosts(t, tool.Dir))
	})
}
