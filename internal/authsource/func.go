package authsource

// FetchFunc adapts a plain resolver function into a Source. The
// function may implement arbitrary matching; a (nil, nil) result
// means no match, same as any other source.
type FetchFunc func(host, user, port string) (*ClientParams, error)

// Fetch forwards the query to the wrapped function verbatim.
func (f FetchFunc) Fetch(host, user, port string) (*ClientParams, error) {
	return f(host, user, port)
}
