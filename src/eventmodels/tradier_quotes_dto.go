package eventmodels

import (
	"encoding/json"
	"fmt"
)

type TradierStockQuoteDTO struct {
	Symbol      string        `json:"symbol"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Last        NullableFloat `json:"last"`
	Bid         NullableFloat `json:"bid"`
	Ask         NullableFloat `json:"ask"`
}

type tradierUnmatchedSymbolsDTO struct {
	Symbol []string `json:"symbol"`
}

type tradierUnmatchedSymbolDTO struct {
	Symbol string `json:"symbol"`
}

type TradierQuotesRawDTO struct {
	Quote            *json.RawMessage `json:"quote"`
	UnmatchedSymbols *json.RawMessage `json:"unmatched_symbols"`
}

// TradierQuotesDTO is the /v1/markets/quotes response. Tradier returns a bare object
// instead of a list when there is a single quote or a single unmatched symbol.
type TradierQuotesDTO struct {
	Quotes TradierQuotesRawDTO `json:"quotes"`
}

func (dto *TradierQuotesDTO) Parse() ([]TradierStockQuoteDTO, []string, error) {
	var quotes []TradierStockQuoteDTO
	if dto.Quotes.Quote != nil {
		if quoteListErr := json.Unmarshal(*dto.Quotes.Quote, &quotes); quoteListErr != nil {
			var quote TradierStockQuoteDTO
			if quoteSingleErr := json.Unmarshal(*dto.Quotes.Quote, &quote); quoteSingleErr != nil {
				return nil, nil, fmt.Errorf("TradierQuotesDTO.Parse: failed to decode quote: %w", quoteSingleErr)
			}

			quotes = append(quotes, quote)
		}
	}

	var unmatched []string
	if dto.Quotes.UnmatchedSymbols != nil {
		var unmatchedSymbols tradierUnmatchedSymbolsDTO
		if listErr := json.Unmarshal(*dto.Quotes.UnmatchedSymbols, &unmatchedSymbols); listErr != nil {
			var unmatchedSymbol tradierUnmatchedSymbolDTO
			if singleErr := json.Unmarshal(*dto.Quotes.UnmatchedSymbols, &unmatchedSymbol); singleErr != nil {
				return nil, nil, fmt.Errorf("TradierQuotesDTO.Parse: failed to decode unmatched symbols: %w", singleErr)
			}

			unmatched = append(unmatched, unmatchedSymbol.Symbol)
		} else {
			unmatched = unmatchedSymbols.Symbol
		}
	}

	return quotes, unmatched, nil
}

// Contains reports whether symbol came back as a matched quote.
func (dto *TradierQuotesDTO) Contains(symbol StockSymbol) (bool, error) {
	quotes, _, err := dto.Parse()
	if err != nil {
		return false, fmt.Errorf("TradierQuotesDTO.Contains: %w", err)
	}

	for _, q := range quotes {
		if NewStockSymbol(q.Symbol) == symbol {
			return true, nil
		}
	}

	return false, nil
}
