package questrade

const (
	DefaultAPIServer = "https://api01.iq.questrade.com/"
	UserAgent        = "questrade-api-go/1.0"

	accountsRoute      = "v1/accounts"
	positionsRoute     = "accounts/%s/positions"
	symbolsSearchRoute = "v1/symbols/search"
	symbolsIDRoute     = "v1/symbols/%d"
	symbolSearchPrefix = "prefix"
)
