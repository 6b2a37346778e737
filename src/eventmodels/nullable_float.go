package eventmodels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// tdMissingValue is what TD Ameritrade reports for greeks it could not compute.
const tdMissingValue = -999.0

// NullableFloat decodes a JSON number that brokers sometimes report as null, "NaN" or -999.
type NullableFloat struct {
	Value float64
	Valid bool
}

func (f *NullableFloat) UnmarshalJSON(data []byte) error {
	*f = NullableFloat{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var v float64
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("NullableFloat: failed to decode string: %w", err)
		}

		if s == "" {
			return nil
		}

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// "NaN", "N/A" and friends mean the value is unknown
			return nil
		}

		v = parsed
	} else {
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("NullableFloat: failed to decode number: %w", err)
		}
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v == tdMissingValue {
		return nil
	}

	f.Value = v
	f.Valid = true

	return nil
}

func (f NullableFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}

	v := f.Value
	return &v
}
