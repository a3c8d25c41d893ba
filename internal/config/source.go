package config

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/altafino/mailauth/internal/authsource"
	"github.com/altafino/mailauth/internal/oauth2"
	"github.com/altafino/mailauth/internal/secrets"
	"github.com/altafino/mailauth/internal/types"
)

// BuildSource constructs the credential source the configuration
// selects. The variant is fixed here, once, for the process lifetime.
func BuildSource(cfg *types.Config, logger *slog.Logger) (authsource.Source, error) {
	switch cfg.Credentials.Source {
	case "static":
		s := cfg.Credentials.Static
		tokenURL := s.TokenURL
		if tokenURL == "" {
			var err error
			tokenURL, err = oauth2.ProviderTokenURL(s.Provider)
			if err != nil {
				return nil, err
			}
		}
		return authsource.NewStatic(authsource.ClientParams{
			TokenURL:     tokenURL,
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			RefreshToken: s.RefreshToken,
			UserOverride: s.User,
		}), nil

	case "file":
		decrypt := secrets.GPGDecrypter(cfg.Credentials.GPGPath)
		return authsource.NewFile(cfg.Credentials.File.Path, decrypt, logger), nil

	case "pass":
		decrypt := secrets.GPGDecrypter(cfg.Credentials.GPGPath)
		store := secrets.NewPassStore(cfg.Credentials.Pass.StoreDir, decrypt, logger)
		return authsource.NewPasswordStore(store, logger), nil
	}

	return nil, fmt.Errorf("unknown credentials source: %s", cfg.Credentials.Source)
}

// BuildEndpoint constructs the token endpoint client from the
// configured transport choice.
func BuildEndpoint(cfg *types.Config, logger *slog.Logger) *oauth2.Endpoint {
	var httpClient *http.Client
	if cfg.TokenEndpoint.Timeout > 0 {
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.TokenEndpoint.Timeout) * time.Second,
		}
	}
	return oauth2.NewEndpoint(oauth2.EndpointOpt{
		UseCurl:    cfg.TokenEndpoint.UseCurl,
		CurlPath:   cfg.TokenEndpoint.CurlPath,
		HTTPClient: httpClient,
	}, logger)
}
