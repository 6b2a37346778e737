package eventmodels

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type OptionSymbol string

// NoPrefix strips polygon's "O:" prefix.
func (s OptionSymbol) NoPrefix() string {
	if strings.HasPrefix(string(s), "O:") {
		return string(s)[2:]
	}

	return string(s)
}

// NewOptionSymbol builds an OCC option ticker, e.g. AAPL240119P00150000.
func NewOptionSymbol(underlying StockSymbol, expiration time.Time, optionType OptionType, strike float64) (OptionSymbol, error) {
	var typeCode string
	switch optionType {
	case Call:
		typeCode = "C"
	case Put:
		typeCode = "P"
	default:
		return "", fmt.Errorf("NewOptionSymbol: invalid option type: %s", optionType)
	}

	if strike <= 0 {
		return "", fmt.Errorf("NewOptionSymbol: invalid strike: %v", strike)
	}

	year := expiration.Year() % 100
	month := int(expiration.Month())
	day := expiration.Day()

	strikePrice := fmt.Sprintf("%08d", int(math.Round(strike*1000)))

	ticker := fmt.Sprintf("%s%02d%02d%02d%s%s", underlying.String(), year, month, day, typeCode, strikePrice)

	return OptionSymbol(ticker), nil
}
