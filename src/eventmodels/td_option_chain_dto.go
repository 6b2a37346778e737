package eventmodels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type TDOptionContractDTO struct {
	PutCall          string        `json:"putCall"`
	Symbol           string        `json:"symbol"`
	Description      string        `json:"description"`
	Bid              float64       `json:"bid"`
	Ask              float64       `json:"ask"`
	Last             float64       `json:"last"`
	Delta            NullableFloat `json:"delta"`
	StrikePrice      float64       `json:"strikePrice"`
	ExpirationDate   int64         `json:"expirationDate"`
	DaysToExpiration int           `json:"daysToExpiration"`
	OpenInterest     int           `json:"openInterest"`
}

// TDOptionChainDTO is the /v1/marketdata/chains response. The exp date map is keyed by
// "YYYY-MM-DD:<dte>", then by strike.
type TDOptionChainDTO struct {
	Symbol        string                                      `json:"symbol"`
	Status        string                                      `json:"status"`
	PutExpDateMap map[string]map[string][]TDOptionContractDTO `json:"putExpDateMap"`
}

func parseTDExpirationKey(key string) (time.Time, error) {
	datePart, _, _ := strings.Cut(key, ":")
	expiration, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("parseTDExpirationKey: failed to parse expiration %s: %w", key, err)
	}

	return expiration, nil
}

func (dto *TDOptionChainDTO) Expirations() ([]time.Time, error) {
	var expirations []time.Time
	for key := range dto.PutExpDateMap {
		expiration, err := parseTDExpirationKey(key)
		if err != nil {
			return nil, fmt.Errorf("TDOptionChainDTO.Expirations: %w", err)
		}

		expirations = append(expirations, expiration)
	}

	sort.Slice(expirations, func(i, j int) bool {
		return expirations[i].Before(expirations[j])
	})

	return expirations, nil
}

// ToModel flattens the put map into quotes ordered by expiration, then strike.
func (dto *TDOptionChainDTO) ToModel(underlying StockSymbol) ([]OptionQuote, error) {
	var quotes []OptionQuote

	for key, strikes := range dto.PutExpDateMap {
		expiration, err := parseTDExpirationKey(key)
		if err != nil {
			return nil, fmt.Errorf("TDOptionChainDTO.ToModel: %w", err)
		}

		for strikeKey, contracts := range strikes {
			for _, c := range contracts {
				strike := c.StrikePrice
				if strike == 0 {
					if strike, err = strconv.ParseFloat(strikeKey, 64); err != nil {
						return nil, fmt.Errorf("TDOptionChainDTO.ToModel: failed to parse strike %s: %w", strikeKey, err)
					}
				}

				quotes = append(quotes, OptionQuote{
					UnderlyingSymbol: underlying,
					Symbol:           OptionSymbol(c.Symbol),
					OptionType:       Put,
					StrikePrice:      strike,
					ExpirationDate:   expiration,
					BidPrice:         c.Bid,
					AskPrice:         c.Ask,
					Delta:            c.Delta.Ptr(),
				})
			}
		}
	}

	sortQuotes(quotes)

	return quotes, nil
}

func sortQuotes(quotes []OptionQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		if !quotes[i].ExpirationDate.Equal(quotes[j].ExpirationDate) {
			return quotes[i].ExpirationDate.Before(quotes[j].ExpirationDate)
		}

		return quotes[i].StrikePrice < quotes[j].StrikePrice
	})
}

type TDInstrumentDTO struct {
	Cusip       string `json:"cusip"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Exchange    string `json:"exchange"`
	AssetType   string `json:"assetType"`
}

// TDInstrumentsDTO is keyed by symbol; an unknown symbol yields an empty object.
type TDInstrumentsDTO map[string]TDInstrumentDTO

func (dto TDInstrumentsDTO) Contains(symbol StockSymbol) bool {
	_, found := dto[symbol.String()]
	return found
}
