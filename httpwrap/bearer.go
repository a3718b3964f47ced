package httpwrap

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// BearerTransport is a custom RoundTripper that adds the current access token to requests.
type BearerTransport struct {
	Transport http.RoundTripper
	Source    oauth2.TokenSource
}

// RoundTrip executes a single HTTP transaction with an Authorization header
// taken from the token source.
func (b *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.Source == nil {
		return nil, fmt.Errorf("bearer transport: no token source")
	}
	token, err := b.Source.Token()
	if err != nil {
		return nil, fmt.Errorf("bearer transport: %w", err)
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	token.SetAuthHeader(reqClone)

	if b.Transport == nil {
		b.Transport = http.DefaultTransport
	}

	return b.Transport.RoundTrip(reqClone)
}
