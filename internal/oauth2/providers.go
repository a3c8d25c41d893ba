package oauth2

import (
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
)

// Well-known provider token endpoints, so configs can name a provider
// instead of spelling out the URL.
var providerTokenURLs = map[string]string{
	"google":    google.Endpoint.TokenURL,
	"microsoft": microsoft.AzureADEndpoint("common").TokenURL,
}

// ProviderTokenURL returns the token endpoint URL for a known provider.
func ProviderTokenURL(provider string) (string, error) {
	tokenURL, ok := providerTokenURLs[provider]
	if !ok {
		return "", fmt.Errorf("unsupported OAuth2 provider: %s", provider)
	}
	return tokenURL, nil
}

// Providers lists the known provider names.
func Providers() []string {
	return []string{"google", "microsoft"}
}
