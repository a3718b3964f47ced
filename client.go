package questrade

import (
	"context"
	"time"

	"github.com/questrade-go/questrade-api/auth"
	"github.com/questrade-go/questrade-api/httpwrap"
)

// Client is an authenticated session against the Questrade REST API.
type Client struct {
	client *httpwrap.Client
	source *auth.TokenSource
}

// New creates a Client for token. Requests carry the token as a bearer
// credential; an expired token is refreshed as configured by opts.
func New(ctx context.Context, token auth.Token, opts auth.Options) *Client {
	source := auth.NewTokenSource(ctx, token, opts)
	return &Client{
		client: httpwrap.NewClient().
			WithHeader("User-Agent", UserAgent).
			WithTokenSource(source),
		source: source,
	}
}

// Token returns the current token of the session.
func (c *Client) Token() auth.Token {
	return c.source.Current()
}

// APIServer returns the base URL all endpoints are resolved against.
func (c *Client) APIServer() string {
	if server := c.source.Current().APIServer; server != "" {
		return server
	}
	return DefaultAPIServer
}

// WithClientTimeout sets the timeout of every request
func (c *Client) WithClientTimeout(timeout time.Duration) *Client {
	c.client.SetTimeout(timeout)
	return c
}

// SetProxy
// set http proxy in the format `http://HOST:PORT`
// set socket proxy in the format `socks5://HOST:PORT`
func (c *Client) SetProxy(proxyAddr string) error {
	return c.client.SetProxy(proxyAddr)
}
