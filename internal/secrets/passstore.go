package secrets

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/altafino/mailauth/internal/authsource"
)

// PassStore reads entries from a password-store style directory tree:
// one gpg-encrypted file per identity, the secret on the first line
// and "key: value" attributes on the lines after. Lookup tries
// <dir>/<host>:<port>/<user>.gpg first, then <dir>/<host>/<user>.gpg
// for stores that do not key entries by port.
type PassStore struct {
	dir     string
	decrypt authsource.Decrypter
	logger  *slog.Logger
}

// NewPassStore creates a password-store backed secret store rooted at
// dir. Entries are decrypted on every lookup; nothing is cached.
func NewPassStore(dir string, decrypt authsource.Decrypter, logger *slog.Logger) *PassStore {
	return &PassStore{dir: dir, decrypt: decrypt, logger: logger}
}

// Lookup resolves the entry file for an identity. A missing file is a
// normal miss; a present file that fails to decrypt is an error.
func (s *PassStore) Lookup(host, user, port string) (authsource.Entry, error) {
	candidates := []string{
		filepath.Join(s.dir, host+":"+port, user+".gpg"),
		filepath.Join(s.dir, host, user+".gpg"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		plaintext, err := s.decrypt(path)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("found password store entry",
			"path", path,
			"host", host,
			"user", user,
			"port", port,
		)
		return parseEntry(plaintext), nil
	}
	return nil, nil
}

// mapEntry is a parsed password-store entry.
type mapEntry map[string]string

func (e mapEntry) Field(name string) (string, bool) {
	value, ok := e[name]
	return value, ok
}

// parseEntry splits a decrypted entry into its fields. The first line
// is the stored secret, kept under "password"; every following
// "key: value" line becomes a named field.
func parseEntry(plaintext []byte) mapEntry {
	entry := make(mapEntry)
	scanner := bufio.NewScanner(bytes.NewReader(plaintext))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			entry["password"] = line
			first = false
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		entry[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return entry
}
