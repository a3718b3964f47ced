package types

import "fmt"

// Error is the error document returned by the Questrade API.
type Error struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Document is a JSON object passed through without interpretation.
type Document map[string]any

type Account struct {
	Type              string `json:"type"`
	Number            string `json:"number"`
	Status            string `json:"status"`
	IsPrimary         bool   `json:"isPrimary"`
	IsBilling         bool   `json:"isBilling"`
	ClientAccountType string `json:"clientAccountType"`
}

type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
	UserID   int64     `json:"userId"`
}

// First returns the first account of the list.
func (r *AccountsResponse) First() (Account, error) {
	if len(r.Accounts) == 0 {
		return Account{}, fmt.Errorf("accounts list is empty")
	}
	return r.Accounts[0], nil
}

type PositionsResponse struct {
	Positions []Document `json:"positions"`
}

// SymbolsResponse is returned by both symbol search and symbol lookup.
type SymbolsResponse struct {
	Symbols []Document `json:"symbols"`
}
