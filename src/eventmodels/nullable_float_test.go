package eventmodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableFloat(t *testing.T) {
	decode := func(t *testing.T, raw string) NullableFloat {
		var v struct {
			Delta NullableFloat `json:"delta"`
		}

		require.NoError(t, json.Unmarshal([]byte(`{"delta": `+raw+`}`), &v))
		return v.Delta
	}

	t.Run("number", func(t *testing.T) {
		f := decode(t, "-0.31")
		assert.True(t, f.Valid)
		assert.Equal(t, -0.31, f.Value)
		require.NotNil(t, f.Ptr())
		assert.Equal(t, -0.31, *f.Ptr())
	})

	t.Run("numeric string", func(t *testing.T) {
		f := decode(t, `"0.5"`)
		assert.True(t, f.Valid)
		assert.Equal(t, 0.5, f.Value)
	})

	t.Run("missing values", func(t *testing.T) {
		for _, raw := range []string{"null", `"NaN"`, `""`, `"N/A"`, "-999", "-999.0"} {
			f := decode(t, raw)
			assert.False(t, f.Valid, raw)
			assert.Nil(t, f.Ptr(), raw)
		}
	})

	t.Run("invalid json type", func(t *testing.T) {
		var f NullableFloat
		assert.Error(t, json.Unmarshal([]byte(`{}`), &f))
	})
}
