package protocolauth

import (
	"fmt"
	"log/slog"

	"github.com/emersion/go-sasl"

	"github.com/altafino/mailauth/internal/oauth2"
	"github.com/altafino/mailauth/internal/resolver"
)

// IMAPSession is the slice of an IMAP client the adapter needs.
// *client.Client from github.com/emersion/go-imap/client satisfies it.
type IMAPSession interface {
	Support(cap string) (bool, error)
	Authenticate(a sasl.Client) error
	Login(username, password string) error
}

// LoginIMAP authenticates a resolved identity against an IMAP session.
// When the server advertises both AUTH=XOAUTH2 and SASL-IR, the login
// is a single AUTHENTICATE XOAUTH2 command with the initial response
// inline; otherwise it falls back to the session's normal login with
// the secret as password.
func LoginIMAP(session IMAPSession, record *resolver.Record, logger *slog.Logger) error {
	xoauth2, err := session.Support("AUTH=XOAUTH2")
	if err != nil {
		return fmt.Errorf("IMAP capability check failed: %w", err)
	}
	saslIR, err := session.Support("SASL-IR")
	if err != nil {
		return fmt.Errorf("IMAP capability check failed: %w", err)
	}

	if xoauth2 && saslIR {
		logger.Debug("authenticating via XOAUTH2",
			"host", record.Host,
			"user", record.User,
		)
		if err := session.Authenticate(oauth2.NewXOAUTH2Client(record.User, record.Secret)); err != nil {
			return fmt.Errorf("IMAP XOAUTH2 authentication failed: %w", err)
		}
		return nil
	}

	logger.Debug("server lacks AUTH=XOAUTH2 or SASL-IR, using plain login",
		"host", record.Host,
		"auth_xoauth2", xoauth2,
		"sasl_ir", saslIR,
	)
	if err := session.Login(record.User, record.Secret); err != nil {
		return fmt.Errorf("IMAP login failed: %w", err)
	}
	return nil
}
