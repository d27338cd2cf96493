package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Save([]byte{0x89}, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89}, data)

	require.NoError(t, store.Delete(ref))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(ref)))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_GeneratedNamesUnique(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save([]byte("a"), "image/jpeg")
	require.NoError(t, err)
	b, err := store.Save([]byte("b"), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDiskStore_RejectsUnknownType(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save([]byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestDiskStore_DeleteIgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	outside := filepath.Join(dir, "..", "victim")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	_ = store.Delete("../victim")
	_, err = os.Stat(outside)
	assert.NoError(t, err, "delete must not escape the upload directory")
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("image/png"))
	assert.True(t, Allowed("image/jpeg"))
	assert.False(t, Allowed("application/pdf"))
	assert.False(t, Allowed(""))
}
