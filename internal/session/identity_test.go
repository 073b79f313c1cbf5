package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityGetOrCreateIsStable(t *testing.T) {
	dir := t.TempDir()
	identity, err := NewIdentity(dir)
	require.NoError(t, err)

	first, err := identity.GetOrCreate()
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err)

	second, err := identity.GetOrCreate()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a fresh handle over the same directory reads the persisted value
	reopened, err := NewIdentity(dir)
	require.NoError(t, err)
	got, err := reopened.GetOrCreate()
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestIdentityIgnoresCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, identityFile), []byte("not-a-uuid"), 0o600))

	identity, err := NewIdentity(dir)
	require.NoError(t, err)

	id, err := identity.GetOrCreate()
	require.NoError(t, err)
	_, parseErr := uuid.Parse(id)
	require.NoError(t, parseErr)
	assert.NotEqual(t, "not-a-uuid", id)
}

func TestIdentityInvalidateMintsFresh(t *testing.T) {
	dir := t.TempDir()
	identity, err := NewIdentity(dir)
	require.NoError(t, err)

	first, err := identity.GetOrCreate()
	require.NoError(t, err)

	require.NoError(t, identity.Invalidate())
	_, statErr := os.Stat(filepath.Join(dir, identityFile))
	assert.True(t, os.IsNotExist(statErr))

	second, err := identity.GetOrCreate()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestIdentityInvalidateWithoutFile(t *testing.T) {
	identity, err := NewIdentity(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, identity.Invalidate())
}
