package authsource

import (
	"errors"
	"fmt"
)

// ClientParams holds the static OAuth2 client parameters a credential
// source resolves for a (host, user, port) identity. All four required
// fields must be non-empty for the record to be usable.
type ClientParams struct {
	TokenURL     string `yaml:"token_url" json:"token_url"`
	ClientID     string `yaml:"client_id" json:"client_id"`
	ClientSecret string `yaml:"client_secret" json:"client_secret"`
	RefreshToken string `yaml:"refresh_token" json:"refresh_token"`

	// UserOverride supplies the login user when the query carries none.
	UserOverride string `yaml:"user,omitempty" json:"user,omitempty"`
}

// Complete reports whether all required fields are present.
func (p *ClientParams) Complete() bool {
	return p != nil &&
		p.TokenURL != "" &&
		p.ClientID != "" &&
		p.ClientSecret != "" &&
		p.RefreshToken != ""
}

// MissingField returns the name of the first absent required field,
// or "" when the record is complete.
func (p *ClientParams) MissingField() string {
	switch {
	case p.TokenURL == "":
		return "token_url"
	case p.ClientID == "":
		return "client_id"
	case p.ClientSecret == "":
		return "client_secret"
	case p.RefreshToken == "":
		return "refresh_token"
	}
	return ""
}

// Source resolves the static OAuth2 client parameters for an identity.
// A (nil, nil) return means the source has no entry for the query,
// which is expected and lets the caller try another backend. Errors
// are reserved for broken configuration, never for simple misses.
type Source interface {
	Fetch(host, user, port string) (*ClientParams, error)
}

// Sentinel errors for credential source failures.
var (
	// ErrNotEncrypted indicates a credentials file without the
	// required encrypted-file extension.
	ErrNotEncrypted = errors.New("credentials file is not encrypted")

	// ErrMissingField indicates a static or file record lacking one of
	// the four required OAuth2 parameters.
	ErrMissingField = errors.New("missing required credential field")
)

// ConfigError reports broken credential-source configuration: a
// malformed or undecryptable credentials file, or an incomplete
// record. It names the offending path and field so the operator can
// fix it without re-running with extra instrumentation.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("credential config %s: field %s: %v", e.Path, e.Field, e.Err)
	case e.Path != "":
		return fmt.Sprintf("credential config %s: %v", e.Path, e.Err)
	case e.Field != "":
		return fmt.Sprintf("credential config: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("credential config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
