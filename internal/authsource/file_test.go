package authsource

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedDecrypter(plaintext string) Decrypter {
	return func(path string) ([]byte, error) {
		return []byte(plaintext), nil
	}
}

const singleRecord = `
token_url: https://oauth2.example.com/token
client_id: cid
client_secret: csecret
refresh_token: rtoken
user: alice@example.com
`

const multiRecord = `
- host: imap.example.com
  user: alice@example.com
  port: "993"
  token_url: https://oauth2.example.com/token
  client_id: cid-alice
  client_secret: csecret-alice
  refresh_token: rtoken-alice
- host: smtp.example.com
  user: bob@example.com
  port: "587"
  token_url: https://oauth2.example.com/token
  client_id: cid-bob
  client_secret: csecret-bob
  refresh_token: rtoken-bob
`

func TestFileRejectsUnencryptedExtension(t *testing.T) {
	source := NewFile("/etc/mailauth/creds.yaml", fixedDecrypter(singleRecord), discardLogger())

	_, err := source.Fetch("imap.example.com", "alice@example.com", "993")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotEncrypted)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "/etc/mailauth/creds.yaml", cfgErr.Path)
}

func TestFileSingleRecordMatchesAnyIdentity(t *testing.T) {
	source := NewFile("creds.yaml.gpg", fixedDecrypter(singleRecord), discardLogger())

	params, err := source.Fetch("anything.example.com", "whoever", "1")
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, "https://oauth2.example.com/token", params.TokenURL)
	assert.Equal(t, "alice@example.com", params.UserOverride)
}

func TestFileMultiRecordExactMatch(t *testing.T) {
	source := NewFile("creds.yaml.gpg", fixedDecrypter(multiRecord), discardLogger())

	params, err := source.Fetch("smtp.example.com", "bob@example.com", "587")
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, "cid-bob", params.ClientID)
}

func TestFileMultiRecordMissIsNotAnError(t *testing.T) {
	source := NewFile("creds.yaml.gpg", fixedDecrypter(multiRecord), discardLogger())

	for _, q := range []struct{ host, user, port string }{
		{"imap.example.com", "alice@example.com", "143"}, // wrong port
		{"imap.example.com", "bob@example.com", "993"},   // wrong user
		{"IMAP.EXAMPLE.COM", "alice@example.com", "993"}, // case differs, no normalization
		{"other.example.com", "alice@example.com", "993"},
	} {
		params, err := source.Fetch(q.host, q.user, q.port)
		assert.NoError(t, err)
		assert.Nil(t, params)
	}
}

func TestFileDecryptFailureIsConfigError(t *testing.T) {
	decrypt := func(path string) ([]byte, error) {
		return nil, errors.New("gpg: decryption failed")
	}
	source := NewFile("creds.yaml.gpg", decrypt, discardLogger())

	_, err := source.Fetch("imap.example.com", "alice@example.com", "993")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "creds.yaml.gpg", cfgErr.Path)
}

func TestFileParseFailureIsConfigError(t *testing.T) {
	source := NewFile("creds.yaml.gpg", fixedDecrypter("{{{not yaml"), discardLogger())

	_, err := source.Fetch("imap.example.com", "alice@example.com", "993")
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestFileIncompleteEntryIsConfigError(t *testing.T) {
	incomplete := `
- host: imap.example.com
  user: alice@example.com
  port: "993"
  token_url: https://oauth2.example.com/token
  client_id: cid
  client_secret: csecret
`
	source := NewFile("creds.yaml.gpg", fixedDecrypter(incomplete), discardLogger())

	_, err := source.Fetch("imap.example.com", "alice@example.com", "993")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "refresh_token", cfgErr.Field)
}
