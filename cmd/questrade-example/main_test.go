package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	questrade "github.com/questrade-go/questrade-api"
	"github.com/questrade-go/questrade-api/auth"
	"github.com/questrade-go/questrade-api/httpwrap"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	accounts       string
	positionStatus int
}

func (m mockAPI) server(t *testing.T) *httptest.Server {
	handler := http.NewServeMux()
	reply := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		assert.Nil(t, err)
	}
	handler.HandleFunc("GET /v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, m.accounts)
	})
	handler.HandleFunc("GET /v1/accounts/{number}/positions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "11111111", r.PathValue("number"))
		status := m.positionStatus
		if status == 0 {
			status = http.StatusOK
		}
		if status != http.StatusOK {
			reply(w, status, `{"code":1017,"message":"Access token is invalid"}`)
			return
		}
		reply(w, status, `{"positions":[{"symbol":"AAPL","symbolId":8049}]}`)
	})
	handler.HandleFunc("GET /v1/symbols/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("prefix"))
		reply(w, http.StatusOK, `{"symbols":[{"symbol":"AAPL","symbolId":8049}]}`)
	})
	handler.HandleFunc("GET /v1/symbols/8049", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, `{"symbols":[{"symbol":"AAPL","symbolId":8049,"description":"APPLE INC"}]}`)
	})
	return httptest.NewServer(handler)
}

const accountsBody = `{"accounts":[{"number":"11111111","type":"Margin"},{"number":"22222222","type":"TFSA"}]}`

func testConfig(server *httptest.Server) Config {
	return Config{
		Token: auth.Token{
			AccessToken: "token",
			APIServer:   server.URL + "/",
			TokenType:   "Bearer",
		},
		Timeout:  5 * time.Second,
		Symbol:   "AAPL",
		SymbolID: 8049,
	}
}

func runAgainst(t *testing.T, m mockAPI) (string, error) {
	server := m.server(t)
	t.Cleanup(server.Close)
	cfg := testConfig(server)
	client, err := newClient(context.Background(), cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	err = run(context.Background(), client, cfg, &out)
	return strings.ReplaceAll(out.String(), server.URL, "{api}"), err
}

func TestRun(t *testing.T) {
	out, err := runAgainst(t, mockAPI{accounts: accountsBody})
	require.NoError(t, err)

	sections := []string{
		"Questrade Accounts Endpoint: {api}/v1/accounts\n",
		"\n11111111\n",
		"Questrade Accounts Positions Endpoint: {api}/v1/accounts/11111111/positions\n",
		"Questrade Symbols Search Endpoint: {api}/v1/symbols/search\n",
		"Questrade Symbols Endpoint: {api}/v1/symbols/8049\n",
		`"description": "APPLE INC"`,
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, "missing %q in\n%s", s, out)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
	assert.NotContains(t, out, "22222222/positions")
}

func TestRunStopsOnHTTPError(t *testing.T) {
	out, err := runAgainst(t, mockAPI{accounts: accountsBody, positionStatus: http.StatusUnauthorized})
	var httpErr *httpwrap.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Contains(t, out, "Questrade Accounts Positions Endpoint:")
	assert.NotContains(t, out, "Questrade Symbols Search Endpoint")
	assert.NotContains(t, out, "Questrade Symbols Endpoint")
}

func TestRunEmptyAccounts(t *testing.T) {
	out, err := runAgainst(t, mockAPI{accounts: `{"accounts":[]}`})
	assert.True(t, errors.Is(err, questrade.ErrNoAccounts))
	assert.NotContains(t, out, "Positions Endpoint")
}

func TestPrettyPrint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, prettyPrint(&out, map[string]any{"accounts": []any{map[string]any{"number": "1"}}}))
	assert.Equal(t, "{\n  \"accounts\": [\n    {\n      \"number\": \"1\"\n    }\n  ]\n}\n", out.String())
}

func clearEnv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var envKeys = []string{
	"QUESTRADE_ACCESS_TOKEN", "QUESTRADE_API_SERVER", "QUESTRADE_REFRESH_TOKEN",
	"QUESTRADE_TOKEN_TYPE", "QUESTRADE_EXPIRES_IN", "QUESTRADE_PROXY",
	"QUESTRADE_TIMEOUT", "QUESTRADE_LOG_LEVEL",
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t, envKeys...)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "QUESTRADE_ACCESS_TOKEN=abc\nQUESTRADE_API_SERVER=https://api01.iq.questrade.com/\nQUESTRADE_TIMEOUT=3s\nQUESTRADE_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, auth.Token{
		AccessToken: "abc",
		APIServer:   "https://api01.iq.questrade.com/",
		ExpiresIn:   1800,
		TokenType:   "Bearer",
	}, cfg.Token)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoadConfigMissingToken(t *testing.T) {
	clearEnv(t, envKeys...)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "QUESTRADE_ACCESS_TOKEN is missing")
}

func TestLoadConfigBadExpiry(t *testing.T) {
	clearEnv(t, envKeys...)
	t.Setenv("QUESTRADE_ACCESS_TOKEN", "abc")
	t.Setenv("QUESTRADE_API_SERVER", "https://api01.iq.questrade.com/")
	t.Setenv("QUESTRADE_EXPIRES_IN", "soon")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "QUESTRADE_EXPIRES_IN")
}

func TestNewClientBadProxy(t *testing.T) {
	_, err := newClient(context.Background(), Config{Token: auth.Token{AccessToken: "x"}, Proxy: "ftp://proxy"})
	assert.ErrorContains(t, err, "only support")
}
