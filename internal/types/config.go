package types

// Config represents the application configuration
type Config struct {
	// Meta information for the configuration
	Meta struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description,omitempty"`
	} `yaml:"meta"`

	// Credentials selects and parameterizes the credential source.
	// Set once at startup, read-only afterwards.
	Credentials struct {
		// Source is one of "static", "file" or "pass".
		Source string `yaml:"source"`

		Static struct {
			// Provider fills token_url from a well-known provider
			// when token_url itself is empty.
			Provider     string `yaml:"provider,omitempty"`
			TokenURL     string `yaml:"token_url,omitempty"`
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			RefreshToken string `yaml:"refresh_token"`
			User         string `yaml:"user,omitempty"`
		} `yaml:"static"`

		File struct {
			// Path to the encrypted credentials file (.gpg or .asc).
			Path string `yaml:"path"`
		} `yaml:"file"`

		Pass struct {
			// StoreDir is the password-store root directory.
			StoreDir string `yaml:"store_dir"`
		} `yaml:"pass"`

		// GPGPath overrides the gpg binary used for decryption.
		GPGPath string `yaml:"gpg_path,omitempty"`
	} `yaml:"credentials"`

	TokenEndpoint struct {
		// UseCurl selects the curl subprocess transport over the
		// built-in HTTP client.
		UseCurl  bool   `yaml:"use_curl"`
		CurlPath string `yaml:"curl_path,omitempty"`
		// Timeout in seconds for the built-in HTTP client.
		Timeout int `yaml:"timeout"`
	} `yaml:"token_endpoint"`

	Logging struct {
		Level         string `yaml:"level"`
		Format        string `yaml:"format"`
		IncludeCaller bool   `yaml:"include_caller"`
	} `yaml:"logging"`
}
