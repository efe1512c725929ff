package tracker

import "context"

const (
	NotFound         = "not found"
	SymbolField      = "symbol"
	DefaultSeparator = " | "
	DefaultFormat    = "{name}, {symbol}, {rank}, {price_usd}, {price_btc}, " +
		"{24h_volume_usd}, {market_cap_usd}, {available_supply}, " +
		"{total_supply}, {percent_change_1h}, {percent_change_24h}, " +
		"{percent_change_7d}, {last_updated}"
)

type (
	Fetcher interface {
		Fetch(ctx context.Context) (string, error)
	}

	Service interface {
		Report(ctx context.Context, symbols []string) (string, error)
	}
)
