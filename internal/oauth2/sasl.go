package oauth2

import (
	"encoding/base64"

	"github.com/emersion/go-sasl"
)

// EncodeXOAUTH2 builds the base64 SASL XOAUTH2 initial response for a
// user and bearer token, with no line wrapping. The unencoded framing
// is mandated by the mechanism and reproduced byte for byte:
//
//	user=<user>\x01auth=Bearer <token>\x01\x01
func EncodeXOAUTH2(user, token string) string {
	return base64.StdEncoding.EncodeToString(xoauth2InitialResponse(user, token))
}

func xoauth2InitialResponse(user, token string) []byte {
	return []byte("user=" + user + "\x01auth=Bearer " + token + "\x01\x01")
}

// NewXOAUTH2Client creates a SASL client for XOAUTH2 authentication,
// for protocol libraries that consume sasl.Client directly.
func NewXOAUTH2Client(username, token string) sasl.Client {
	return &xoauth2Client{
		username: username,
		token:    token,
	}
}

// xoauth2Client implements the XOAUTH2 SASL mechanism
type xoauth2Client struct {
	username string
	token    string
}

// Start begins the SASL exchange
func (a *xoauth2Client) Start() (mech string, ir []byte, err error) {
	return "XOAUTH2", xoauth2InitialResponse(a.username, a.token), nil
}

// Next continues the SASL exchange
func (a *xoauth2Client) Next(challenge []byte) ([]byte, error) {
	// XOAUTH2 is a single round-trip mechanism, so we should never get here
	return nil, sasl.ErrUnexpectedServerChallenge
}
