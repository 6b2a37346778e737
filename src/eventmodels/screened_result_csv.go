package eventmodels

import "strconv"

type ScreenedResultCSV struct {
	UnderlyingSymbol       string  `csv:"underlying_symbol"`
	Symbol                 string  `csv:"symbol"`
	StrikePrice            float64 `csv:"strike_price"`
	ExpirationDate         string  `csv:"expiration_date"`
	DaysToExpiration       int     `csv:"dte"`
	BidPrice               float64 `csv:"bid_price"`
	Delta                  string  `csv:"delta"`
	ProbabilityOfProfitPct float64 `csv:"pop_pct"`
	PoPSource              string  `csv:"pop_source"`
	PutReturnPct           float64 `csv:"return_pct"`
	AnnualizedReturnPct    float64 `csv:"annual_return_pct"`
}

func (r ScreenedResult) ToCSV() *ScreenedResultCSV {
	delta := ""
	if d, ok := r.AbsDelta(); ok {
		delta = strconv.FormatFloat(d, 'f', 4, 64)
	}

	return &ScreenedResultCSV{
		UnderlyingSymbol:       r.UnderlyingSymbol.String(),
		Symbol:                 string(r.Symbol),
		StrikePrice:            r.StrikePrice,
		ExpirationDate:         r.ExpirationDateString(),
		DaysToExpiration:       r.DaysToExpiration,
		BidPrice:               r.BidPrice,
		Delta:                  delta,
		ProbabilityOfProfitPct: r.ProbabilityOfProfitPct,
		PoPSource:              string(r.ProbabilityOfProfitSource),
		PutReturnPct:           r.PutReturnPct,
		AnnualizedReturnPct:    r.AnnualizedReturnPct,
	}
}
