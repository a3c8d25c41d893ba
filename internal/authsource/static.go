package authsource

// Static serves one fixed set of OAuth2 client parameters regardless
// of the queried identity. It covers the single-account case where
// the operator configures the literal directly.
type Static struct {
	params ClientParams
}

// NewStatic creates a static credential source from a literal record.
func NewStatic(params ClientParams) *Static {
	return &Static{params: params}
}

// Fetch returns the configured literal. An incomplete literal is an
// operator mistake, not a miss, so it surfaces as a ConfigError.
func (s *Static) Fetch(host, user, port string) (*ClientParams, error) {
	if field := s.params.MissingField(); field != "" {
		return nil, &ConfigError{Field: field, Err: ErrMissingField}
	}
	params := s.params
	return &params, nil
}
