package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// RefreshURL is the Questrade endpoint that exchanges a refresh token for a new access token.
const RefreshURL = "https://login.questrade.com/oauth2/token"

const apiServerKey = "api_server"

// Token is the OAuth2 token record issued by Questrade.
// Besides the usual fields it names the API server all requests must go to.
type Token struct {
	AccessToken  string `json:"access_token"`
	APIServer    string `json:"api_server"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// OAuth2 converts the token for use with golang.org/x/oauth2, counting
// ExpiresIn from issued. A zero ExpiresIn yields a token that never expires.
func (t Token) OAuth2(issued time.Time) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	if t.ExpiresIn > 0 {
		tok.Expiry = issued.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tok.WithExtra(map[string]interface{}{apiServerKey: t.APIServer})
}

// FromOAuth2 converts an oauth2 token back. The API server comes from the
// token response when present, otherwise fallbackServer is kept.
func FromOAuth2(tok *oauth2.Token, fallbackServer string, now time.Time) Token {
	t := Token{
		AccessToken:  tok.AccessToken,
		APIServer:    fallbackServer,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if server, ok := tok.Extra(apiServerKey).(string); ok && server != "" {
		t.APIServer = server
	}
	if !tok.Expiry.IsZero() {
		if remaining := tok.Expiry.Sub(now); remaining > 0 {
			t.ExpiresIn = int64(remaining.Round(time.Second) / time.Second)
		}
	}
	return t
}
