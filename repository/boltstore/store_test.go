package boltstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diasKarataev/todo-client/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("a.b.c"))
	token, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)
}

func TestSave_OverwritesPreviousToken(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("first"))
	require.NoError(t, s.Save("second"))

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestClear_RemovesToken(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("a.b.c"))
	require.NoError(t, s.Clear())

	_, err := s.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestClear_EmptyStoreIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Clear())
}

func TestTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("persisted"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}
