package utils

import (
	"encoding/json"
	"fmt"
)

// ParseTradierResponse unwraps Tradier's two-level envelope, e.g. {"options": {"option": [...]}}.
// Tradier sends a bare object instead of a one-element list, and null (or "null") when
// there is nothing to return.
func ParseTradierResponse[T any](response []byte) ([]T, error) {
	header := make(map[string]json.RawMessage)

	if err := json.Unmarshal(response, &header); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal header in response: %w", err)
	}

	if len(header) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in header, got %v", len(header))
	}

	var v json.RawMessage
	for _, value := range header {
		v = value
	}

	if isTradierNull(v) {
		return []T{}, nil
	}

	data := make(map[string]json.RawMessage)
	if err := json.Unmarshal(v, &data); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal data in response: %w", err)
	}

	if len(data) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in data, got %v", len(data))
	}

	var items json.RawMessage
	for _, value := range data {
		items = value
	}

	if isTradierNull(items) {
		return []T{}, nil
	}

	var dtos []T

	var singleDTO T
	if err := json.Unmarshal(items, &singleDTO); err == nil {
		dtos = append(dtos, singleDTO)
	} else if err := json.Unmarshal(items, &dtos); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal dtos in response: %w", err)
	}

	return dtos, nil
}

func isTradierNull(v json.RawMessage) bool {
	s := string(v)
	return s == "null" || s == "\"null\"" || s == ""
}
