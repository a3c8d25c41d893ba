package authsource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntry map[string]string

func (e fakeEntry) Field(name string) (string, bool) {
	value, ok := e[name]
	return value, ok
}

type fakeStore struct {
	entry Entry
	err   error

	gotHost, gotUser, gotPort string
}

func (s *fakeStore) Lookup(host, user, port string) (Entry, error) {
	s.gotHost, s.gotUser, s.gotPort = host, user, port
	return s.entry, s.err
}

func completeEntry() fakeEntry {
	return fakeEntry{
		"password":        "unused",
		FieldTokenURL:     "https://oauth2.example.com/token",
		FieldClientID:     "cid",
		FieldClientSecret: "csecret",
		FieldRefreshToken: "rtoken",
	}
}

func TestPasswordStoreCompleteEntry(t *testing.T) {
	store := &fakeStore{entry: completeEntry()}
	source := NewPasswordStore(store, discardLogger())

	params, err := source.Fetch("imap.example.com", "alice", "993")
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, "https://oauth2.example.com/token", params.TokenURL)
	assert.Equal(t, "rtoken", params.RefreshToken)

	assert.Equal(t, "imap.example.com", store.gotHost)
	assert.Equal(t, "alice", store.gotUser)
	assert.Equal(t, "993", store.gotPort)
}

func TestPasswordStoreUserOverride(t *testing.T) {
	entry := completeEntry()
	entry["user"] = "alice@example.com"
	source := NewPasswordStore(&fakeStore{entry: entry}, discardLogger())

	params, err := source.Fetch("imap.example.com", "", "993")
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, "alice@example.com", params.UserOverride)
}

func TestPasswordStoreMissingFieldIsAMiss(t *testing.T) {
	entry := completeEntry()
	delete(entry, FieldClientSecret)
	source := NewPasswordStore(&fakeStore{entry: entry}, discardLogger())

	params, err := source.Fetch("imap.example.com", "alice", "993")
	assert.NoError(t, err)
	assert.Nil(t, params)
}

func TestPasswordStoreNoEntryIsAMiss(t *testing.T) {
	source := NewPasswordStore(&fakeStore{}, discardLogger())

	params, err := source.Fetch("imap.example.com", "alice", "993")
	assert.NoError(t, err)
	assert.Nil(t, params)
}

func TestPasswordStoreLookupErrorPropagates(t *testing.T) {
	source := NewPasswordStore(&fakeStore{err: errors.New("gpg failed")}, discardLogger())

	_, err := source.Fetch("imap.example.com", "alice", "993")
	assert.Error(t, err)
}
