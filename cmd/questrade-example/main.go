package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	questrade "github.com/questrade-go/questrade-api"
	"github.com/questrade-go/questrade-api/auth"
	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "Path of the .env file")
	symbol := flag.String("symbol", "AAPL", "Symbol prefix to search for")
	symbolID := flag.Int64("symbol-id", 8049, "Symbol id to look up")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := LoadConfig(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	cfg.Symbol = *symbol
	cfg.SymbolID = *symbolID
	logrus.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up session")
	}
	if err := run(ctx, client, cfg, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("Questrade example failed")
	}
}

func newClient(ctx context.Context, cfg Config) (*questrade.Client, error) {
	client := questrade.New(ctx, cfg.Token, auth.Options{
		OnRefresh: func(tok auth.Token) error {
			logrus.WithField("api_server", tok.APIServer).Info("Session token replaced")
			return nil
		},
	})
	if cfg.Timeout > 0 {
		client.WithClientTimeout(cfg.Timeout)
	}
	if cfg.Proxy != "" {
		if err := client.SetProxy(cfg.Proxy); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// run queries accounts, positions of the first account, a symbol search and
// a symbol lookup in that order, printing each response to out. It stops at
// the first error.
func run(ctx context.Context, client *questrade.Client, cfg Config, out io.Writer) error {
	accountsEndpoint, err := client.AccountsEndpoint()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Questrade Accounts Endpoint: %s\n", accountsEndpoint)
	accountData, err := client.GetData(ctx, accountsEndpoint, nil)
	if err != nil {
		return err
	}
	if err := prettyPrint(out, accountData); err != nil {
		return err
	}

	accountNumber, err := questrade.AccountNumber(accountData)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, accountNumber)
	positionsEndpoint, err := questrade.PositionsEndpoint(accountsEndpoint, accountNumber)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Questrade Accounts Positions Endpoint: %s\n", positionsEndpoint)
	positionsData, err := client.GetData(ctx, positionsEndpoint, nil)
	if err != nil {
		return err
	}
	if err := prettyPrint(out, positionsData); err != nil {
		return err
	}

	searchEndpoint, err := client.SymbolsSearchEndpoint()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Questrade Symbols Search Endpoint: %s\n", searchEndpoint)
	symbolsData, err := client.GetData(ctx, searchEndpoint, questrade.Param(nil, "prefix", cfg.Symbol))
	if err != nil {
		return err
	}
	if err := prettyPrint(out, symbolsData); err != nil {
		return err
	}

	symbolEndpoint, err := client.SymbolEndpoint(cfg.SymbolID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Questrade Symbols Endpoint: %s\n", symbolEndpoint)
	symbolData, err := client.GetData(ctx, symbolEndpoint, nil)
	if err != nil {
		return err
	}
	return prettyPrint(out, symbolData)
}

func prettyPrint(out io.Writer, data any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
