package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
)

// ErrNoAccessToken indicates a token endpoint response that parsed as
// JSON but carried no access_token field.
var ErrNoAccessToken = errors.New("token endpoint response has no access_token")

// Endpoint performs the OAuth2 refresh_token grant against a token
// endpoint. It issues exactly one POST per call: no retries, no token
// caching, no proactive expiry handling. Callers needing timeouts set
// them on the HTTP client or the context.
type Endpoint struct {
	httpClient *http.Client
	useCurl    bool
	curlPath   string
	logger     *slog.Logger
}

// EndpointOpt configures an Endpoint.
type EndpointOpt struct {
	// UseCurl selects the curl subprocess transport instead of the
	// built-in HTTP client.
	UseCurl bool
	// CurlPath overrides the curl binary looked up on PATH.
	CurlPath string
	// HTTPClient overrides http.DefaultClient for the built-in
	// transport.
	HTTPClient *http.Client
}

// NewEndpoint creates a token endpoint client.
func NewEndpoint(opt EndpointOpt, logger *slog.Logger) *Endpoint {
	httpClient := opt.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	curlPath := opt.CurlPath
	if curlPath == "" {
		curlPath = "curl"
	}
	return &Endpoint{
		httpClient: httpClient,
		useCurl:    opt.UseCurl,
		curlPath:   curlPath,
		logger:     logger,
	}
}

// refreshForm builds the x-www-form-urlencoded request body. Field
// order follows the wire contract; values are query-escaped.
func refreshForm(clientID, clientSecret, refreshToken string) string {
	return "client_id=" + url.QueryEscape(clientID) +
		"&client_secret=" + url.QueryEscape(clientSecret) +
		"&refresh_token=" + url.QueryEscape(refreshToken) +
		"&grant_type=refresh_token"
}

// Refresh exchanges a refresh token for a live access token. The
// response body is parsed as JSON and the access_token field
// extracted; its absence is an error, never guessed around. The
// access token is short-lived and logged at debug for operability;
// the refresh token and client secret are not.
func (e *Endpoint) Refresh(ctx context.Context, tokenURL, clientID, clientSecret, refreshToken string) (string, error) {
	body := refreshForm(clientID, clientSecret, refreshToken)

	var (
		response []byte
		err      error
	)
	if e.useCurl {
		response, err = e.postCurl(ctx, tokenURL, body)
	} else {
		response, err = e.postHTTP(ctx, tokenURL, body)
	}
	if err != nil {
		return "", fmt.Errorf("token endpoint %s: %w", tokenURL, err)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(response, &parsed); err != nil {
		return "", fmt.Errorf("token endpoint %s: response is not JSON: %w", tokenURL, err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token endpoint %s: %w", tokenURL, ErrNoAccessToken)
	}

	e.logger.Debug("obtained access token",
		"token_url", tokenURL,
		"access_token", parsed.AccessToken,
	)
	return parsed.AccessToken, nil
}

func (e *Endpoint) postHTTP(ctx context.Context, tokenURL, body string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	e.logger.Debug("token endpoint replied",
		"status", resp.StatusCode,
		"bytes", len(data),
	)
	return data, nil
}

func (e *Endpoint) postCurl(ctx context.Context, tokenURL, body string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.curlPath,
		"--silent",
		"--request", "POST",
		"--header", "Content-Type: application/x-www-form-urlencoded",
		"--data", body,
		tokenURL,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("curl failed: %w", err)
	}
	return out, nil
}
