package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

func TestCredentials(t *testing.T) {
	t.Run("saved credentials can be loaded back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "creds.yaml")
		creds := eventmodels.Credentials{ClientID: "ABCDEF", RefreshToken: "refresh-123"}

		require.NoError(t, SaveCredentials(path, creds))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		loaded, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, creds, loaded)
	})

	t.Run("file uses snake case keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("client_id: ABC\nrefresh_token: xyz\n"), 0o600))

		loaded, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, "ABC", loaded.ClientID)
		assert.Equal(t, "xyz", loaded.RefreshToken)
	})

	t.Run("missing refresh token is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("client_id: ABC\n"), 0o600))

		_, err := LoadCredentials(path)
		assert.ErrorIs(t, err, eventmodels.ErrInvalidCredentials)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestReadLine(t *testing.T) {
	line, err := ReadLine(strings.NewReader("https://localhost:8080/?code=abc%2F123\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://localhost:8080/?code=abc%2F123", line)

	line, err = ReadLine(strings.NewReader("no newline"))
	require.NoError(t, err)
	assert.Equal(t, "no newline", line)
}
