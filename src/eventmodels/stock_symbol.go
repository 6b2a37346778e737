package eventmodels

import (
	"encoding/json"
	"fmt"
	"strings"
)

type StockSymbol string

func (s StockSymbol) String() string {
	return strings.ToUpper(string(s))
}

func (s StockSymbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s StockSymbol) Validate() error {
	if strings.TrimSpace(string(s)) == "" {
		return fmt.Errorf("StockSymbol: Validate: symbol is empty")
	}

	for _, c := range s.String() {
		if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '/') {
			return fmt.Errorf("StockSymbol: Validate: invalid character %c in %s", c, s)
		}
	}

	return nil
}

func NewStockSymbol(s string) StockSymbol {
	return StockSymbol(strings.ToUpper(strings.TrimSpace(s)))
}
