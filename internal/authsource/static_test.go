package authsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticReturnsLiteral(t *testing.T) {
	source := NewStatic(ClientParams{
		TokenURL:     "https://oauth2.example.com/token",
		ClientID:     "cid",
		ClientSecret: "csecret",
		RefreshToken: "rtoken",
		UserOverride: "alice@example.com",
	})

	params, err := source.Fetch("ignored.example.com", "", "993")
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, "cid", params.ClientID)
	assert.Equal(t, "alice@example.com", params.UserOverride)
}

func TestStaticIncompleteLiteralIsConfigError(t *testing.T) {
	source := NewStatic(ClientParams{
		TokenURL: "https://oauth2.example.com/token",
		ClientID: "cid",
	})

	_, err := source.Fetch("imap.example.com", "alice", "993")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "client_secret", cfgErr.Field)
}

func TestStaticCopiesParams(t *testing.T) {
	source := NewStatic(ClientParams{
		TokenURL:     "https://oauth2.example.com/token",
		ClientID:     "cid",
		ClientSecret: "csecret",
		RefreshToken: "rtoken",
	})

	first, err := source.Fetch("a", "u", "1")
	require.NoError(t, err)
	first.ClientID = "mutated"

	second, err := source.Fetch("a", "u", "1")
	require.NoError(t, err)
	assert.Equal(t, "cid", second.ClientID)
}
