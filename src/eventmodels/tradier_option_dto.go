package eventmodels

import (
	"fmt"
	"time"
)

type TradierGreeksDTO struct {
	Delta     NullableFloat `json:"delta"`
	Gamma     NullableFloat `json:"gamma"`
	Theta     NullableFloat `json:"theta"`
	Vega      NullableFloat `json:"vega"`
	BidIv     NullableFloat `json:"bid_iv"`
	MidIv     NullableFloat `json:"mid_iv"`
	AskIv     NullableFloat `json:"ask_iv"`
	UpdatedAt string        `json:"updated_at"`
}

// TradierOptionDTO is one entry of /v1/markets/options/chains. Greeks is null outside
// market hours for some contracts.
type TradierOptionDTO struct {
	Symbol         string            `json:"symbol"`
	Description    string            `json:"description"`
	Underlying     string            `json:"underlying"`
	RootSymbol     string            `json:"root_symbol"`
	Bid            float64           `json:"bid"`
	Ask            float64           `json:"ask"`
	Last           NullableFloat     `json:"last"`
	Volume         int               `json:"volume"`
	OpenInterest   int               `json:"open_interest"`
	Strike         float64           `json:"strike"`
	ContractSize   int               `json:"contract_size"`
	OptionType     string            `json:"option_type"`
	ExpirationDate string            `json:"expiration_date"`
	ExpirationType string            `json:"expiration_type"`
	Greeks         *TradierGreeksDTO `json:"greeks"`
}

func (d *TradierOptionDTO) ToModel() (OptionQuote, error) {
	expiration, err := time.Parse("2006-01-02", d.ExpirationDate)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("TradierOptionDTO.ToModel: failed to parse expiration date: %w", err)
	}

	optionType, err := ParseOptionType(d.OptionType)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("TradierOptionDTO.ToModel: %w", err)
	}

	underlying := d.Underlying
	if underlying == "" {
		underlying = d.RootSymbol
	}

	var delta *float64
	if d.Greeks != nil {
		delta = d.Greeks.Delta.Ptr()
	}

	return OptionQuote{
		UnderlyingSymbol: NewStockSymbol(underlying),
		Symbol:           OptionSymbol(d.Symbol),
		OptionType:       optionType,
		StrikePrice:      d.Strike,
		ExpirationDate:   expiration,
		BidPrice:         d.Bid,
		AskPrice:         d.Ask,
		Delta:            delta,
	}, nil
}
