package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/portfolio-admin/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemory("")

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.SetToken(ctx, "abc"))
	token, _ = s.Token(ctx)
	assert.Equal(t, "abc", token)

	require.NoError(t, s.Clear(ctx))
	token, _ = s.Token(ctx)
	assert.Empty(t, token)
}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.toml")

	s, err := session.NewFile(path)
	require.NoError(t, err)

	token, err := s.Token(ctx)
	require.NoError(t, err, "missing file reads as empty session")
	assert.Empty(t, token)

	require.NoError(t, s.SetToken(ctx, "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), session.TokenKey)

	reopened, err := session.NewFile(path)
	require.NoError(t, err)
	token, err = reopened.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, reopened.Clear(ctx))
	require.NoError(t, reopened.Clear(ctx), "clearing twice is not an error")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("adminToken = [unterminated"), 0600))

	s, err := session.NewFile(path)
	require.NoError(t, err)

	_, err = s.Token(context.Background())
	assert.Error(t, err)
}

func TestNewFile_RequiresPath(t *testing.T) {
	_, err := session.NewFile("")
	assert.Error(t, err)
}
