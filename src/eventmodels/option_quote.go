package eventmodels

import "time"

// OptionQuote is a single contract from an option chain, as returned by a data provider.
// Delta and ChanceOfProfitShort are nil when the provider did not report them.
type OptionQuote struct {
	UnderlyingSymbol    StockSymbol  `json:"underlying_symbol"`
	Symbol              OptionSymbol `json:"symbol"`
	OptionType          OptionType   `json:"option_type"`
	StrikePrice         float64      `json:"strike_price"`
	ExpirationDate      time.Time    `json:"expiration_date"`
	BidPrice            float64      `json:"bid_price"`
	AskPrice            float64      `json:"ask_price"`
	Delta               *float64     `json:"delta"`
	ChanceOfProfitShort *float64     `json:"chance_of_profit_short"`
}

func (q OptionQuote) HasDelta() bool {
	return q.Delta != nil
}

func (q OptionQuote) HasChanceOfProfitShort() bool {
	return q.ChanceOfProfitShort != nil
}

// ExpirationDateString formats the expiration as a calendar date (YYYY-MM-DD).
func (q OptionQuote) ExpirationDateString() string {
	return q.ExpirationDate.Format("2006-01-02")
}

func Float64Ptr(f float64) *float64 {
	return &f
}
