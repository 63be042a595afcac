package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMP3sOnlyMatchesExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.MP3"), []byte("x"), 0o644))

	files, err := findMP3s(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestLargestImageInPicksBiggestAndFlagsMultipleOnReplace(t *testing.T) {
	// os.ReadDir returns entries sorted by name, so "a-small" is visited
	// before "b-big": the bigger file replaces the smaller one, which is
	// exactly the case largestImageIn flags as "multiple".
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-small.jpg"), []byte("xx"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-big.png"), []byte("xxxxxxxx"), 0o644))

	path, multiple, found := largestImageIn(dir)
	require.True(t, found)
	assert.True(t, multiple)
	assert.Equal(t, filepath.Join(dir, "b-big.png"), path)
}

func TestLargestImageInNoReplaceNoMultipleFlag(t *testing.T) {
	// Here the bigger file is visited first; the smaller one that follows
	// never replaces it, so no "multiple" flag is raised — matching
	// get_cover's original (slightly surprising) semantics exactly.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-big.png"), []byte("xxxxxxxx"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-small.jpg"), []byte("xx"), 0o644))

	_, multiple, found := largestImageIn(dir)
	require.True(t, found)
	assert.False(t, multiple)
}

func TestLargestImageInEmptyDir(t *testing.T) {
	dir := t.TempDir()
	_, _, found := largestImageIn(dir)
	assert.False(t, found)
}
