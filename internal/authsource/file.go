package authsource

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Decrypter turns an encrypted file on disk into its plaintext bytes.
// Decryption failure must be reported as an error, never as empty
// plaintext.
type Decrypter func(path string) ([]byte, error)

// encryptedExtensions gates which files the File source will touch.
// Credentials must be encrypted at rest; a plaintext file is refused
// regardless of its contents.
var encryptedExtensions = map[string]bool{
	".gpg": true,
	".asc": true,
}

// fileEntry is one row of a multi-account credentials file. The
// (host, user, port) triple is the lookup key, matched exactly; the
// user key decodes through the inlined Params (ClientParams already
// claims the `user` yaml key as UserOverride).
type fileEntry struct {
	Host   string       `yaml:"host"`
	Port   string       `yaml:"port"`
	Params ClientParams `yaml:",inline"`
}

// File reads OAuth2 client parameters from an encrypted credentials
// file. The decrypted plaintext is YAML holding either a single
// ClientParams record, returned for any query, or a list of entries
// keyed by exact (host, user, port) triples.
type File struct {
	path    string
	decrypt Decrypter
	logger  *slog.Logger
}

// NewFile creates a file-backed credential source. The file is read
// and decrypted on every fetch; nothing is cached.
func NewFile(path string, decrypt Decrypter, logger *slog.Logger) *File {
	return &File{path: path, decrypt: decrypt, logger: logger}
}

// Fetch decrypts and parses the whole file, then resolves the query
// against it. A missing triple in a multi-account file is a normal
// miss; decryption or parse failure is a fatal configuration error.
func (f *File) Fetch(host, user, port string) (*ClientParams, error) {
	if !encryptedExtensions[strings.ToLower(filepath.Ext(f.path))] {
		return nil, &ConfigError{Path: f.path, Err: ErrNotEncrypted}
	}

	plaintext, err := f.decrypt(f.path)
	if err != nil {
		return nil, &ConfigError{Path: f.path, Err: fmt.Errorf("decrypt failed: %w", err)}
	}

	// Single-record shape first: a top-level token_url marks it.
	var single ClientParams
	if err := yaml.Unmarshal(plaintext, &single); err == nil && single.TokenURL != "" {
		if field := single.MissingField(); field != "" {
			return nil, &ConfigError{Path: f.path, Field: field, Err: ErrMissingField}
		}
		return &single, nil
	}

	var entries []fileEntry
	if err := yaml.Unmarshal(plaintext, &entries); err != nil {
		return nil, &ConfigError{Path: f.path, Err: fmt.Errorf("parse failed: %w", err)}
	}

	for i := range entries {
		e := &entries[i]
		if e.Host != host || e.Params.UserOverride != user || e.Port != port {
			continue
		}
		if field := e.Params.MissingField(); field != "" {
			return nil, &ConfigError{Path: f.path, Field: field, Err: ErrMissingField}
		}
		params := e.Params
		return &params, nil
	}

	f.logger.Debug("no credentials file entry for identity",
		"path", f.path,
		"host", host,
		"user", user,
		"port", port,
	)
	return nil, nil
}
