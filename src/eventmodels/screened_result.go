package eventmodels

// PoPSource records which quote field a probability of profit was derived from.
type PoPSource string

const (
	PoPSourceChanceOfProfit PoPSource = "chance_of_profit_short"
	PoPSourceDelta          PoPSource = "delta"
)

// ScreenedResult is an OptionQuote that passed the screen, with its derived metrics.
// Percentages are stored as percentages (5.26 means 5.26%).
type ScreenedResult struct {
	OptionQuote
	DaysToExpiration          int       `json:"days_to_expiration"`
	PutReturnPct              float64   `json:"put_return_pct"`
	AnnualizedReturnPct       float64   `json:"annualized_return_pct"`
	ProbabilityOfProfitPct    float64   `json:"probability_of_profit_pct"`
	ProbabilityOfProfitSource PoPSource `json:"probability_of_profit_source"`
}

// AbsDelta returns |delta|, or false when the quote had no delta.
func (r ScreenedResult) AbsDelta() (float64, bool) {
	if r.Delta == nil {
		return 0, false
	}

	if *r.Delta < 0 {
		return -*r.Delta, true
	}

	return *r.Delta, true
}
