package eventmodels

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OptionQuoteCSV is one row of an offline quotes file. Delta and ChanceOfProfitShort are
// kept as strings so an empty cell means "absent" rather than zero.
type OptionQuoteCSV struct {
	UnderlyingSymbol    string  `csv:"underlying_symbol"`
	Symbol              string  `csv:"symbol"`
	StrikePrice         float64 `csv:"strike_price"`
	ExpirationDate      string  `csv:"expiration_date"`
	BidPrice            float64 `csv:"bid_price"`
	AskPrice            float64 `csv:"ask_price"`
	Delta               string  `csv:"delta"`
	ChanceOfProfitShort string  `csv:"chance_of_profit_short"`
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (row *OptionQuoteCSV) ToModel() (OptionQuote, error) {
	expiration, err := time.Parse("2006-01-02", strings.TrimSpace(row.ExpirationDate))
	if err != nil {
		return OptionQuote{}, fmt.Errorf("OptionQuoteCSV.ToModel: failed to parse expiration date: %w", err)
	}

	delta, err := parseOptionalFloat(row.Delta)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("OptionQuoteCSV.ToModel: failed to parse delta: %w", err)
	}

	chanceOfProfit, err := parseOptionalFloat(row.ChanceOfProfitShort)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("OptionQuoteCSV.ToModel: failed to parse chance_of_profit_short: %w", err)
	}

	underlying := NewStockSymbol(row.UnderlyingSymbol)

	symbol := OptionSymbol(strings.TrimSpace(row.Symbol))
	if symbol == "" {
		if symbol, err = NewOptionSymbol(underlying, expiration, Put, row.StrikePrice); err != nil {
			return OptionQuote{}, fmt.Errorf("OptionQuoteCSV.ToModel: %w", err)
		}
	}

	return OptionQuote{
		UnderlyingSymbol:    underlying,
		Symbol:              symbol,
		OptionType:          Put,
		StrikePrice:         row.StrikePrice,
		ExpirationDate:      expiration,
		BidPrice:            row.BidPrice,
		AskPrice:            row.AskPrice,
		Delta:               delta,
		ChanceOfProfitShort: chanceOfProfit,
	}, nil
}
