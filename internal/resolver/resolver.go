package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/altafino/mailauth/internal/authsource"
)

// Record is the outcome of one credential resolution: the identity
// that matched plus a live access token as the secret. Records are
// ephemeral; nothing is cached or persisted across calls.
type Record struct {
	Host   string `json:"host"`
	Port   string `json:"port"`
	User   string `json:"user"`
	Secret string `json:"secret"`
}

// Exchanger turns static OAuth2 client parameters into a live access
// token. Implemented by oauth2.Endpoint.
type Exchanger interface {
	Refresh(ctx context.Context, tokenURL, clientID, clientSecret, refreshToken string) (string, error)
}

// Resolver orchestrates one credential lookup: credential source
// first, then the token exchange, assembled into a Record. It holds
// no locks and no mutable state; concurrent resolutions are
// independent as long as the source and exchanger are reentrant.
type Resolver struct {
	source    authsource.Source
	exchanger Exchanger
	logger    *slog.Logger
}

// New creates a resolver from its collaborators. Configuration is
// explicit and fixed at construction time.
func New(source authsource.Source, exchanger Exchanger, logger *slog.Logger) *Resolver {
	return &Resolver{
		source:    source,
		exchanger: exchanger,
		logger:    logger,
	}
}

// Resolve probes host×port candidate pairs in row-major order and
// returns a Record for the first pair the credential source matches
// with a usable user. A (nil, nil) return means the source had no
// entry for any pair, which is a normal outcome for the caller to
// hand to another backend. A matched pair whose token exchange fails
// is a hard error: the failure propagates instead of falling through
// to the next candidate.
func (r *Resolver) Resolve(ctx context.Context, hosts []string, user string, ports []string) (*Record, error) {
	lookupID := uuid.NewString()

	for _, host := range hosts {
		for _, port := range ports {
			params, err := r.source.Fetch(host, user, port)
			if err != nil {
				return nil, fmt.Errorf("credential lookup for %s:%s failed: %w", host, port, err)
			}
			if params == nil {
				r.logger.Debug("no credentials for candidate",
					"lookup_id", lookupID,
					"host", host,
					"port", port,
				)
				continue
			}
			if !params.Complete() {
				r.logger.Debug("incomplete credentials for candidate, skipping",
					"lookup_id", lookupID,
					"host", host,
					"port", port,
					"missing_field", params.MissingField(),
				)
				continue
			}

			effectiveUser := user
			if effectiveUser == "" {
				effectiveUser = params.UserOverride
			}
			if effectiveUser == "" {
				r.logger.Debug("credentials matched but no user known, skipping",
					"lookup_id", lookupID,
					"host", host,
					"port", port,
				)
				continue
			}

			r.logger.Debug("credentials matched, exchanging refresh token",
				"lookup_id", lookupID,
				"host", host,
				"port", port,
				"user", effectiveUser,
				"token_url", params.TokenURL,
			)

			secret, err := r.exchanger.Refresh(ctx, params.TokenURL, params.ClientID, params.ClientSecret, params.RefreshToken)
			if err != nil {
				return nil, fmt.Errorf("token exchange for %s:%s failed: %w", host, port, err)
			}

			return &Record{
				Host:   host,
				Port:   port,
				User:   effectiveUser,
				Secret: secret,
			}, nil
		}
	}

	r.logger.Debug("no credential source match for any candidate",
		"lookup_id", lookupID,
		"hosts", hosts,
		"ports", ports,
	)
	return nil, nil
}
