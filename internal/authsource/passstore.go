package authsource

import (
	"log/slog"
)

// Fixed field names a secret-store entry must expose.
const (
	FieldTokenURL     = "xoauth2_token_url"
	FieldClientID     = "xoauth2_client_id"
	FieldClientSecret = "xoauth2_client_secret"
	FieldRefreshToken = "xoauth2_refresh_token"
)

// Entry is one secret-store record, exposing named fields.
type Entry interface {
	Field(name string) (string, bool)
}

// SecretStore looks up an entry for an exact (host, user, port)
// identity. A (nil, nil) return means the store has no such entry.
type SecretStore interface {
	Lookup(host, user, port string) (Entry, error)
}

// PasswordStore resolves OAuth2 client parameters from a secret store.
// All four xoauth2_* fields must be present on the matched entry; a
// partial entry yields no match, with a warning naming each missing
// field so the operator can complete it.
type PasswordStore struct {
	store  SecretStore
	logger *slog.Logger
}

// NewPasswordStore creates a secret-store-backed credential source.
func NewPasswordStore(store SecretStore, logger *slog.Logger) *PasswordStore {
	return &PasswordStore{store: store, logger: logger}
}

func (p *PasswordStore) Fetch(host, user, port string) (*ClientParams, error) {
	entry, err := p.store.Lookup(host, user, port)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	params := &ClientParams{}
	complete := true
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{FieldTokenURL, &params.TokenURL},
		{FieldClientID, &params.ClientID},
		{FieldClientSecret, &params.ClientSecret},
		{FieldRefreshToken, &params.RefreshToken},
	} {
		value, ok := entry.Field(f.name)
		if !ok || value == "" {
			p.logger.Warn("secret store entry is missing a required field",
				"field", f.name,
				"host", host,
				"user", user,
				"port", port,
			)
			complete = false
			continue
		}
		*f.dst = value
	}
	if !complete {
		return nil, nil
	}

	if value, ok := entry.Field("user"); ok {
		params.UserOverride = value
	}
	return params, nil
}
