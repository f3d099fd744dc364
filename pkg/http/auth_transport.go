package http

import "net/http"

// TokenSource yields a bearer token for outbound requests. It is called per
// request so refreshed credentials are picked up without rebuilding the client.
type TokenSource func() (string, error)

type authTransport struct {
	source    TokenSource
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.source()
	if err != nil {
		return nil, err
	}

	reqCopy := req.Clone(req.Context())
	if token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+token)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithTokenSource wraps the transport so every request carries a bearer token
// obtained from source.
func WithTokenSource(source TokenSource) Opt {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			source:    source,
			transport: rt,
		}
	})
}
