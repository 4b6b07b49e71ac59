package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	handle, err := s.Put([]byte("hello"), ".pdf")
	require.NoError(t, err)
	assert.True(t, len(handle) > 4)

	got, err := s.Get(handle)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	require.NoError(t, s.Delete(handle))
	_, err = s.Get(handle)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// delete idempoten
	require.NoError(t, s.Delete(handle))
}

func TestLocalStorage_HandlesAreUnique(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		handle, err := s.Put([]byte("same content"), ".txt")
		require.NoError(t, err)
		assert.False(t, seen[handle])
		seen[handle] = true
	}
}

func TestLocalStorage_GetRejectsPathTraversal(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("../../../etc/passwd")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
