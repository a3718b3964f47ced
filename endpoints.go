package questrade

import (
	"fmt"
	"net/url"
)

// ResolveEndpoint resolves route against base the way a browser resolves a
// relative link. A route is appended to base only when base ends with a slash,
// otherwise it replaces the last path segment of base.
func ResolveEndpoint(base, route string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	routeURL, err := url.Parse(route)
	if err != nil {
		return "", fmt.Errorf("invalid route %q: %w", route, err)
	}
	return baseURL.ResolveReference(routeURL).String(), nil
}

// AccountsEndpoint returns the account list endpoint.
func (c *Client) AccountsEndpoint() (string, error) {
	return ResolveEndpoint(c.APIServer(), accountsRoute)
}

// PositionsEndpoint resolves the positions route of an account relative to
// the accounts endpoint, giving {api_server}v1/accounts/{number}/positions.
func PositionsEndpoint(accountsEndpoint, number string) (string, error) {
	return ResolveEndpoint(accountsEndpoint, fmt.Sprintf(positionsRoute, url.PathEscape(number)))
}

// SymbolsSearchEndpoint returns the symbol search endpoint.
func (c *Client) SymbolsSearchEndpoint() (string, error) {
	return ResolveEndpoint(c.APIServer(), symbolsSearchRoute)
}

// SymbolEndpoint returns the endpoint of a single symbol.
func (c *Client) SymbolEndpoint(id int64) (string, error) {
	return ResolveEndpoint(c.APIServer(), fmt.Sprintf(symbolsIDRoute, id))
}
