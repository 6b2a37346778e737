package eventmodels

import "fmt"

const (
	DefaultPopMin          = 70.0
	DefaultPopMax          = 90.0
	DefaultMinAnnualReturn = 20.0
	DefaultMaxDTE          = 60
)

// ScreenParams holds the thresholds of a screening run. PopMin, PopMax and MinAnnualReturn
// are percentages (70 means 70%).
type ScreenParams struct {
	PopMin          float64 `json:"pop_min"`
	PopMax          float64 `json:"pop_max"`
	MinAnnualReturn float64 `json:"min_annual_return"`
	MaxDTE          int     `json:"max_dte"`
}

func (p ScreenParams) Validate() error {
	if p.PopMin < 0 || p.PopMin > 100 {
		return fmt.Errorf("%w: pop-min must be between 0 and 100, got %v", ErrInvalidScreenParams, p.PopMin)
	}

	if p.PopMax < 0 || p.PopMax > 100 {
		return fmt.Errorf("%w: pop-max must be between 0 and 100, got %v", ErrInvalidScreenParams, p.PopMax)
	}

	if p.PopMin > p.PopMax {
		return fmt.Errorf("%w: pop-min (%v) is greater than pop-max (%v)", ErrInvalidScreenParams, p.PopMin, p.PopMax)
	}

	if p.MaxDTE < 0 {
		return fmt.Errorf("%w: dte-max must not be negative, got %v", ErrInvalidScreenParams, p.MaxDTE)
	}

	return nil
}

func NewDefaultScreenParams() ScreenParams {
	return ScreenParams{
		PopMin:          DefaultPopMin,
		PopMax:          DefaultPopMax,
		MinAnnualReturn: DefaultMinAnnualReturn,
		MaxDTE:          DefaultMaxDTE,
	}
}
