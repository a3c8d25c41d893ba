package protocolauth

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/altafino/mailauth/internal/oauth2"
	"github.com/altafino/mailauth/internal/resolver"
)

// SMTPReplyAuthSuccess is the reply code a server returns for a
// successful AUTH exchange.
const SMTPReplyAuthSuccess = 235

// SMTPSession is the slice of an SMTP client the adapter needs: send
// one command and fail unless the reply carries the expected code.
type SMTPSession interface {
	SendCommand(cmd string, expectCode int) error
}

// AuthSMTP authenticates a resolved identity against an SMTP session
// with a single AUTH XOAUTH2 command. Any reply other than 235 is a
// hard authentication failure, surfaced unmodified.
func AuthSMTP(session SMTPSession, record *resolver.Record) error {
	cmd := "AUTH XOAUTH2 " + oauth2.EncodeXOAUTH2(record.User, record.Secret)
	if err := session.SendCommand(cmd, SMTPReplyAuthSuccess); err != nil {
		return fmt.Errorf("SMTP XOAUTH2 authentication failed: %w", err)
	}
	return nil
}

// XOAuth2 returns a net/smtp Auth implementing the XOAUTH2 mechanism,
// for callers driving smtp.Client directly. net/smtp handles the
// base64 framing and the 235 success check itself.
func XOAuth2(user, token string) smtp.Auth {
	return &xoauth2Auth{user: user, token: token}
}

type xoauth2Auth struct {
	user  string
	token string
}

func (a *xoauth2Auth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "XOAUTH2", []byte("user=" + a.user + "\x01auth=Bearer " + a.token + "\x01\x01"), nil
}

func (a *xoauth2Auth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		// A challenge after the initial response means the server
		// rejected the token and sent an error payload.
		return nil, errors.New("unexpected challenge from server")
	}
	return nil, nil
}
