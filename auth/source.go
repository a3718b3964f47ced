package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// RefreshFunc receives every new token obtained by a refresh.
type RefreshFunc func(Token) error

// Options configure a TokenSource. The zero value is usable.
type Options struct {
	// RefreshURL defaults to the Questrade login server.
	RefreshURL string
	// ClientID is sent with refresh requests when set.
	ClientID string
	// HTTPClient is used for refresh requests.
	HTTPClient *http.Client
	// OnRefresh is called with the new token after a refresh.
	OnRefresh RefreshFunc
	// Now defaults to time.Now.
	Now func() time.Time
}

// TokenSource hands out the current access token and refreshes it through
// golang.org/x/oauth2 once it has expired. The refreshed token is kept by the
// source itself; OnRefresh only observes it.
type TokenSource struct {
	mu        sync.Mutex
	src       oauth2.TokenSource
	current   Token
	lastToken string
	onRefresh RefreshFunc
	now       func() time.Time
}

// NewTokenSource returns a source seeded with tok.
func NewTokenSource(ctx context.Context, tok Token, opts Options) *TokenSource {
	if opts.RefreshURL == "" {
		opts.RefreshURL = RefreshURL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	conf := &oauth2.Config{
		ClientID: opts.ClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  opts.RefreshURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return &TokenSource{
		src:       conf.TokenSource(ctx, tok.OAuth2(opts.Now())),
		current:   tok,
		lastToken: tok.AccessToken,
		onRefresh: opts.OnRefresh,
		now:       opts.Now,
	}
}

// Token implements oauth2.TokenSource.
func (s *TokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		logrus.WithError(err).Error("Failed to obtain access token")
		return nil, err
	}

	s.mu.Lock()
	if tok.AccessToken == s.lastToken {
		s.mu.Unlock()
		return tok, nil
	}
	s.current = FromOAuth2(tok, s.current.APIServer, s.now())
	s.lastToken = tok.AccessToken
	refreshed := s.current
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"api_server": refreshed.APIServer,
		"expires_in": refreshed.ExpiresIn,
	}).Info("Access token refreshed")

	if s.onRefresh != nil {
		if err := s.onRefresh(refreshed); err != nil {
			logrus.WithError(err).Warn("Refresh callback failed")
		}
	}
	return tok, nil
}

// Current returns the most recent token value.
func (s *TokenSource) Current() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
