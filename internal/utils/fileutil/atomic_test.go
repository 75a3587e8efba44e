package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "residents.json")

	require.NoError(t, WriteFile(path, []byte(`[]`), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		require.NoError(t, WriteFile(path, []byte(`[{"id":"1"}]`), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(data))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestStage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	tmp, err := Stage(path, []byte(`[{"id":"l1"}]`), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmp) })

	assert.Equal(t, dir, filepath.Dir(tmp))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data), "target is untouched until renamed")

	data, err = os.ReadFile(tmp)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"l1"}]`, string(data))

	info, err := os.Stat(tmp)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
