package questrade

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/questrade-go/questrade-api/types"
)

// ErrNoAccounts is returned when an account list holds no account to pick.
var ErrNoAccounts = errors.New("no accounts in response")

// GetAccounts lists the accounts of the token's user.
func (c *Client) GetAccounts(ctx context.Context) (*types.AccountsResponse, error) {
	endpoint, err := c.AccountsEndpoint()
	if err != nil {
		return nil, err
	}
	var resp types.AccountsResponse
	if err := c.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPositions lists the positions held in account number.
func (c *Client) GetPositions(ctx context.Context, number string) (*types.PositionsResponse, error) {
	accountsEndpoint, err := c.AccountsEndpoint()
	if err != nil {
		return nil, err
	}
	endpoint, err := PositionsEndpoint(accountsEndpoint, number)
	if err != nil {
		return nil, err
	}
	var resp types.PositionsResponse
	if err := c.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AccountNumber picks the number of the first account out of an account
// list decoded by GetData.
func AccountNumber(data any) (string, error) {
	doc, ok := data.(map[string]any)
	if !ok {
		return "", fmt.Errorf("accounts response is %T, not an object", data)
	}
	accounts, ok := doc["accounts"].([]any)
	if !ok {
		return "", fmt.Errorf("accounts response has no accounts list")
	}
	if len(accounts) == 0 {
		return "", ErrNoAccounts
	}
	account, ok := accounts[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("account 0 is %T, not an object", accounts[0])
	}
	switch number := account["number"].(type) {
	case string:
		return number, nil
	case float64:
		return strconv.FormatFloat(number, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("account 0 has no number")
	}
}
