package httpwrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
	"golang.org/x/oauth2"
)

const (
	DefaultClientTimeout         = 10 * time.Second
	DefaultMaxResponseSize int64 = 1024 * 1024 * 10 // 10MB
)

// Client is a wrapper around http.Client that provides simplified HTTP methods.
type Client struct {
	httpClient      *http.Client
	base            http.RoundTripper
	source          oauth2.TokenSource
	headers         Header
	proxy           string
	maxResponseSize int64
}

// NewClient creates a new Client with the default timeout.
func NewClient() *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultClientTimeout},
		base: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 10,
			TLSHandshakeTimeout: 5 * time.Second,
		},
		headers:         NewHeader(),
		maxResponseSize: DefaultMaxResponseSize,
	}
	c.installTransport()
	return c
}

// installTransport puts the bearer transport, when a token source is set, in
// front of the base transport.
func (c *Client) installTransport() {
	if c.source == nil {
		c.httpClient.Transport = c.base
		return
	}
	c.httpClient.Transport = &BearerTransport{
		Transport: c.base,
		Source:    c.source,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoRequest sends an HTTP request and returns the body of a 2xx response.
// Any other status is returned as an *HTTPError.
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, bodyReader io.Reader, headers Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, err
	}
	for key, value := range c.headers.Merge(headers) {
		req.Header.Set(key, value)
	}

	log := logrus.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"method":     method,
		"url":        endpoint,
	})
	log.Debug("Sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to execute request")
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logrus.Errorf("error closing response body: %v", err)
		}
	}(resp.Body)

	body, err := c.readResponse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	log.WithField("status", resp.StatusCode).Debug("Received response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{
			URL:        endpoint,
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
		httpErr.Log()
		return nil, httpErr
	}
	return body, nil
}

// GetJSON sends an HTTP GET request and decodes the JSON response into obj.
func (c *Client) GetJSON(ctx context.Context, endpoint string, urlParams url.Values, headers Header, obj any) error {
	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if len(urlParams) > 0 {
		query := parsedURL.Query()
		for key, values := range urlParams {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		parsedURL.RawQuery = query.Encode()
	}

	body, err := c.DoRequest(ctx, http.MethodGet, parsedURL.String(), nil, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, obj); err != nil {
		return fmt.Errorf("decoding response from %s: %w", parsedURL.Redacted(), err)
	}
	return nil
}

func (c *Client) readResponse(body io.Reader) ([]byte, error) {
	if c.maxResponseSize > 0 {
		body = NewLimitErrorReader(body, c.maxResponseSize)
	}
	return io.ReadAll(body)
}

// LimitErrorReader fails instead of truncating once the limit is reached.
type LimitErrorReader struct {
	reader *io.LimitedReader
}

func NewLimitErrorReader(r io.Reader, limit int64) *LimitErrorReader {
	return &LimitErrorReader{
		reader: &io.LimitedReader{R: r, N: limit},
	}
}

func (ler *LimitErrorReader) Read(p []byte) (int, error) {
	if ler.reader.N <= 0 {
		return 0, errors.New("response body too large")
	}
	return ler.reader.Read(p)
}

// SetTimeout sets the timeout of the underlying http.Client.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetProxy sets the proxy for the underlying http.Client.
// Accepted forms are `http://HOST:PORT`, `https://HOST:PORT` and `socks5://[USER:PASS@]HOST:PORT`.
func (c *Client) SetProxy(proxyAddr string) error {
	switch {
	case proxyAddr == "":
		c.base = &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: c.httpClient.Timeout,
			}).DialContext,
		}
	case strings.HasPrefix(proxyAddr, "http"):
		urlproxy, err := url.Parse(proxyAddr)
		if err != nil {
			return err
		}
		c.base = &http.Transport{
			Proxy: http.ProxyURL(urlproxy),
			DialContext: (&net.Dialer{
				Timeout: c.httpClient.Timeout,
			}).DialContext,
		}
	case strings.HasPrefix(proxyAddr, "socks5"):
		baseDialer := &net.Dialer{
			Timeout:   c.httpClient.Timeout,
			KeepAlive: c.httpClient.Timeout,
		}
		proxyURL, err := url.Parse(proxyAddr)
		if err != nil {
			return err
		}

		var auth *proxy.Auth
		if proxyURL.User != nil {
			password, _ := proxyURL.User.Password()
			auth = &proxy.Auth{User: proxyURL.User.Username(), Password: password}
		}

		dialSocksProxy, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, baseDialer)
		if err != nil {
			return errors.New("error creating socks5 proxy: " + err.Error())
		}
		contextDialer, ok := dialSocksProxy.(proxy.ContextDialer)
		if !ok {
			return errors.New("failed type assertion to DialContext")
		}
		c.base = &http.Transport{
			DialContext: contextDialer.DialContext,
		}
	default:
		return errors.New("only support http(s) or socks5 protocol")
	}
	c.proxy = proxyAddr
	c.installTransport()
	return nil
}

// Proxy returns the proxy address set with SetProxy.
func (c *Client) Proxy() string {
	return c.proxy
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

func (c *Client) WithMaxSize(maxResponseSize int64) *Client {
	c.maxResponseSize = maxResponseSize
	return c
}

// WithHeader adds a header sent with every request.
func (c *Client) WithHeader(key, value string) *Client {
	c.headers.Add(key, value)
	return c
}

// WithTokenSource authenticates every request with a bearer token from src.
func (c *Client) WithTokenSource(src oauth2.TokenSource) *Client {
	c.source = src
	c.installTransport()
	return c
}

// WithBearerToken authenticates every request with a fixed access token.
func (c *Client) WithBearerToken(token string) *Client {
	return c.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}
