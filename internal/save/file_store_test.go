package save

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get("slot")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("slot", `{"coins":1}`))
	v, ok, err := s.Get("slot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"coins":1}`, v)

	require.NoError(t, s.Remove("slot"))
	_, ok, err = s.Get("slot")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing a missing key is not an error.
	assert.NoError(t, s.Remove("slot"))
}

func TestFileStore_KeysStayInDataDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("../escape", "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, dir, filepath.Dir(filepath.Join(dir, entries[0].Name())))
}

func TestFileStore_OverwriteReplaces(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("slot", "old"))
	require.NoError(t, s.Set("slot", "new"))

	v, ok, err := s.Get("slot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", v)
}
