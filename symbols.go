package questrade

import (
	"context"
	"fmt"

	"github.com/questrade-go/questrade-api/types"
)

// SearchSymbols lists the symbols starting with prefix.
func (c *Client) SearchSymbols(ctx context.Context, prefix string) ([]types.Document, error) {
	endpoint, err := c.SymbolsSearchEndpoint()
	if err != nil {
		return nil, err
	}
	var resp types.SymbolsResponse
	if err := c.GetJSON(ctx, endpoint, Param(nil, symbolSearchPrefix, prefix), &resp); err != nil {
		return nil, err
	}
	return resp.Symbols, nil
}

// GetSymbol returns the detail record of symbol id.
func (c *Client) GetSymbol(ctx context.Context, id int64) (types.Document, error) {
	endpoint, err := c.SymbolEndpoint(id)
	if err != nil {
		return nil, err
	}
	var resp types.SymbolsResponse
	if err := c.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Symbols) != 1 {
		return nil, fmt.Errorf("symbol %d: expected 1 record, got %d", id, len(resp.Symbols))
	}
	return resp.Symbols[0], nil
}
