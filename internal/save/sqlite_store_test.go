package save

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("slot")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("slot", `{"coins":1}`))
	require.NoError(t, s.Set("slot", `{"coins":2}`)) // upsert

	v, ok, err := s.Get("slot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"coins":2}`, v)

	require.NoError(t, s.Remove("slot"))
	_, ok, err = s.Get("slot")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("slot", "persisted"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("slot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", v)
}
