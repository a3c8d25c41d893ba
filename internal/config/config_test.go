package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mailauth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
meta:
  id: test
credentials:
  source: file
  file:
    path: /etc/mailauth/creds.yaml.gpg
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Credentials.Source)
	assert.Equal(t, 30, cfg.TokenEndpoint.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("MAILAUTH_TEST_SECRET", "from-env")
	path := writeConfig(t, `
credentials:
  source: static
  static:
    provider: google
    client_id: cid
    client_secret: ${MAILAUTH_TEST_SECRET}
    refresh_token: rtoken
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Credentials.Static.ClientSecret)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	path := writeConfig(t, `
credentials:
  source: keychain
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keychain")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestBuildSourceStaticWithProvider(t *testing.T) {
	path := writeConfig(t, `
credentials:
  source: static
  static:
    provider: google
    client_id: cid
    client_secret: csecret
    refresh_token: rtoken
    user: alice@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	source, err := BuildSource(cfg, discardLogger(t))
	require.NoError(t, err)

	params, err := source.Fetch("imap.gmail.com", "", "993")
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Contains(t, params.TokenURL, "googleapis.com")
	assert.Equal(t, "alice@example.com", params.UserOverride)
}

func TestBuildSourceUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Credentials.Static.Provider = "yahoo"
	cfg.Credentials.Static.ClientID = "cid"

	_, err := BuildSource(cfg, discardLogger(t))
	assert.Error(t, err)
}
