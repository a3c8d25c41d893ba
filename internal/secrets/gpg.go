package secrets

import (
	"fmt"
	"os/exec"

	"github.com/altafino/mailauth/internal/authsource"
)

// GPGDecrypter returns a Decrypter that shells out to gpg. The
// passphrase handling (agent, pinentry) is gpg's own; the decrypter
// only captures the plaintext from stdout.
func GPGDecrypter(gpgPath string) authsource.Decrypter {
	if gpgPath == "" {
		gpgPath = "gpg"
	}
	return func(path string) ([]byte, error) {
		cmd := exec.Command(gpgPath, "--quiet", "--batch", "--decrypt", path)
		out, err := cmd.Output()
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
				return nil, fmt.Errorf("gpg decrypt of %s failed: %s", path, exitErr.Stderr)
			}
			return nil, fmt.Errorf("gpg decrypt of %s failed: %w", path, err)
		}
		return out, nil
	}
}
