package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo_NoIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.json")

	result, err := GetInfo(path)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, path, result.Path)
	assert.Equal(t, int64(0), result.Size)
	assert.Equal(t, 0, result.TotalEntries)
}

func TestGetInfo_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json"), 0644))

	result, err := GetInfo(path)
	require.NoError(t, err)

	assert.Equal(t, int64(len("not valid json")), result.Size)
	assert.Equal(t, 0, result.TotalEntries)
}

func TestGetInfo_CountsMissing(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "index.json")

	idx, err := New(path)
	require.NoError(t, err)

	keep := filepath.Join(tmpDir, "keep.log")
	gone := filepath.Join(tmpDir, "gone.log")
	for _, f := range []string{keep, gone} {
		require.NoError(t, os.WriteFile(f, []byte("x"), 0644))
		_, err := idx.Add(f)
		require.NoError(t, err)
	}
	require.NoError(t, os.Remove(gone))

	result, err := GetInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalEntries)
	assert.Equal(t, 1, result.Missing)
	assert.Positive(t, result.Size)
}
