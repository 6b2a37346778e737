package eventmodels

import (
	"fmt"
	"strings"
)

type DataProvider string

const (
	TDAmeritradeProvider DataProvider = "tdameritrade"
	TradierProvider      DataProvider = "tradier"
	PolygonProvider      DataProvider = "polygon"
	CsvProvider          DataProvider = "csv"
)

func ParseDataProvider(s string) (DataProvider, error) {
	p := DataProvider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case TDAmeritradeProvider, TradierProvider, PolygonProvider, CsvProvider:
		return p, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownDataProvider, s)
}
