package screener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

func newQuote(symbol string, strike, bid float64, expiration time.Time, delta, chanceOfProfit *float64) eventmodels.OptionQuote {
	return eventmodels.OptionQuote{
		UnderlyingSymbol:    "GME",
		Symbol:              eventmodels.OptionSymbol(symbol),
		OptionType:          eventmodels.Put,
		StrikePrice:         strike,
		ExpirationDate:      expiration,
		BidPrice:            bid,
		Delta:               delta,
		ChanceOfProfitShort: chanceOfProfit,
	}
}

func TestDaysToExpiration(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)

	t.Run("future expiration counts calendar days", func(t *testing.T) {
		assert.Equal(t, 30, DaysToExpiration(now, now.AddDate(0, 0, 30)))
		assert.Equal(t, 1, DaysToExpiration(now, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("same day is zero", func(t *testing.T) {
		assert.Equal(t, 0, DaysToExpiration(now, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("past expiration is never negative", func(t *testing.T) {
		assert.Equal(t, 1, DaysToExpiration(now, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("time zone of now does not shift the date", func(t *testing.T) {
		ny := time.FixedZone("EST", -5*3600)
		lateEvening := time.Date(2024, 1, 2, 23, 0, 0, 0, ny)
		assert.Equal(t, 17, DaysToExpiration(lateEvening, time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)))
	})
}

func TestPutReturn(t *testing.T) {
	t.Run("premium over capital at risk", func(t *testing.T) {
		r, ok := PutReturn(100, 5)
		assert.True(t, ok)
		assert.InDelta(t, 0.0526, r, 0.0001)
	})

	t.Run("strike equal to bid is undefined", func(t *testing.T) {
		_, ok := PutReturn(5, 5)
		assert.False(t, ok)
	})

	t.Run("bid above strike is undefined", func(t *testing.T) {
		_, ok := PutReturn(5, 6)
		assert.False(t, ok)
	})
}

func TestAnnualizedReturn(t *testing.T) {
	r, ok := AnnualizedReturn(0.1, 365)
	assert.True(t, ok)
	assert.InDelta(t, 0.1, r, 1e-12)

	_, ok = AnnualizedReturn(0.1, 0)
	assert.False(t, ok)
}

func TestResolveProbabilityOfProfit(t *testing.T) {
	exp := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("chance of profit wins over delta", func(t *testing.T) {
		q := newQuote("A", 100, 5, exp, eventmodels.Float64Ptr(-0.4), eventmodels.Float64Ptr(0.75))
		pop, source, ok := ResolveProbabilityOfProfit(q)
		assert.True(t, ok)
		assert.Equal(t, 0.75, pop)
		assert.Equal(t, eventmodels.PoPSourceChanceOfProfit, source)
	})

	t.Run("falls back to one minus absolute delta", func(t *testing.T) {
		q := newQuote("A", 100, 5, exp, eventmodels.Float64Ptr(-0.25), nil)
		pop, source, ok := ResolveProbabilityOfProfit(q)
		assert.True(t, ok)
		assert.Equal(t, 0.75, pop)
		assert.Equal(t, eventmodels.PoPSourceDelta, source)
	})

	t.Run("missing both fields", func(t *testing.T) {
		_, _, ok := ResolveProbabilityOfProfit(newQuote("A", 100, 5, exp, nil, nil))
		assert.False(t, ok)
	})
}

func TestScreen(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)
	params := eventmodels.NewDefaultScreenParams()
	in30Days := now.AddDate(0, 0, 30)

	t.Run("cash secured put within defaults is accepted", func(t *testing.T) {
		q := newQuote("GME240201P00100000", 100, 5, in30Days, eventmodels.Float64Ptr(-0.20), nil)

		result := Screen([]eventmodels.OptionQuote{q}, params, now)

		require.Len(t, result.Accepted, 1)
		accepted := result.Accepted[0]
		assert.Equal(t, 30, accepted.DaysToExpiration)
		assert.InDelta(t, 5.26, accepted.PutReturnPct, 0.01)
		assert.InDelta(t, 64.0, accepted.AnnualizedReturnPct, 0.1)
		assert.InDelta(t, 80.0, accepted.ProbabilityOfProfitPct, 1e-9)
		assert.Equal(t, eventmodels.PoPSourceDelta, accepted.ProbabilityOfProfitSource)
		assert.Equal(t, q, accepted.OptionQuote)
		assert.Equal(t, 0, result.BelowThresholdCount)
		assert.Equal(t, 1, result.CandidateCount)
		assert.Equal(t, 1, result.InputCount)
	})

	t.Run("zero days to expiration is excluded", func(t *testing.T) {
		q := newQuote("A", 100, 5, now, eventmodels.Float64Ptr(-0.20), nil)

		result := Screen([]eventmodels.OptionQuote{q}, params, now)

		assert.Empty(t, result.Accepted)
		assert.Equal(t, 0, result.BelowThresholdCount)
		assert.Equal(t, 0, result.CandidateCount)
	})

	t.Run("strike equal to bid is excluded from both sets", func(t *testing.T) {
		q := newQuote("A", 5, 5, in30Days, eventmodels.Float64Ptr(-0.20), nil)

		result := Screen([]eventmodels.OptionQuote{q}, params, now)

		assert.Empty(t, result.Accepted)
		assert.Equal(t, 0, result.BelowThresholdCount)
	})

	t.Run("pop above the maximum is not a candidate", func(t *testing.T) {
		q := newQuote("A", 100, 5, in30Days, nil, eventmodels.Float64Ptr(0.95))

		result := Screen([]eventmodels.OptionQuote{q}, params, now)

		assert.Empty(t, result.Accepted)
		assert.Equal(t, 0, result.BelowThresholdCount)
		assert.Equal(t, 0, result.CandidateCount)
	})

	t.Run("low annual return is counted as below threshold", func(t *testing.T) {
		// 10 / (110 - 10) = 10% over a full year
		q := newQuote("A", 110, 10, now.AddDate(0, 0, 365), eventmodels.Float64Ptr(-0.20), nil)

		result := Screen([]eventmodels.OptionQuote{q}, params, now)

		assert.Empty(t, result.Accepted)
		assert.Equal(t, 1, result.BelowThresholdCount)
		assert.Equal(t, 1, result.CandidateCount)
	})

	t.Run("missing delta and chance of profit is excluded", func(t *testing.T) {
		q := newQuote("A", 100, 5, in30Days, nil, nil)

		result := Screen([]eventmodels.OptionQuote{q}, params, now)

		assert.Empty(t, result.Accepted)
		assert.Equal(t, 0, result.CandidateCount)
	})

	t.Run("pop bounds are inclusive", func(t *testing.T) {
		low := newQuote("LOW", 100, 5, in30Days, nil, eventmodels.Float64Ptr(0.5))
		high := newQuote("HIGH", 100, 5, in30Days, nil, eventmodels.Float64Ptr(0.75))

		p := params
		p.PopMin = 50
		p.PopMax = 75

		result := Screen([]eventmodels.OptionQuote{low, high}, p, now)

		assert.Len(t, result.Accepted, 2)
	})

	t.Run("return threshold is inclusive", func(t *testing.T) {
		q := newQuote("A", 100, 5, in30Days, eventmodels.Float64Ptr(-0.20), nil)

		putReturn, ok := PutReturn(100, 5)
		require.True(t, ok)
		annualReturn, ok := AnnualizedReturn(putReturn, 30)
		require.True(t, ok)

		p := params
		p.MinAnnualReturn = annualReturn * 100

		result := Screen([]eventmodels.OptionQuote{q}, p, now)

		assert.Len(t, result.Accepted, 1)
		assert.Equal(t, 0, result.BelowThresholdCount)
	})

	t.Run("negative minimum return accepts every candidate", func(t *testing.T) {
		q := newQuote("A", 100, 0, in30Days, eventmodels.Float64Ptr(-0.20), nil)

		p := params
		p.MinAnnualReturn = -1

		result := Screen([]eventmodels.OptionQuote{q}, p, now)

		require.Len(t, result.Accepted, 1)
		assert.Equal(t, 0.0, result.Accepted[0].AnnualizedReturnPct)
	})

	t.Run("results are sorted by annual return and ties keep input order", func(t *testing.T) {
		quotes := []eventmodels.OptionQuote{
			newQuote("TIE-1", 100, 2, in30Days, eventmodels.Float64Ptr(-0.20), nil),
			newQuote("BEST", 100, 8, in30Days, eventmodels.Float64Ptr(-0.20), nil),
			newQuote("TIE-2", 100, 2, in30Days, eventmodels.Float64Ptr(-0.20), nil),
			newQuote("MID", 100, 4, in30Days, eventmodels.Float64Ptr(-0.20), nil),
			newQuote("TIE-3", 100, 2, in30Days, eventmodels.Float64Ptr(-0.20), nil),
		}

		result := Screen(quotes, params, now)

		var symbols []eventmodels.OptionSymbol
		for _, r := range result.Accepted {
			symbols = append(symbols, r.Symbol)
		}

		assert.Equal(t, []eventmodels.OptionSymbol{"BEST", "MID", "TIE-1", "TIE-2", "TIE-3"}, symbols)
	})

	t.Run("accepted rows satisfy every threshold", func(t *testing.T) {
		var quotes []eventmodels.OptionQuote
		for i := 0; i < 40; i++ {
			delta := -0.05 * float64(i%8)
			bid := 0.5 * float64(i%10)
			exp := now.AddDate(0, 0, i%45)
			quotes = append(quotes, newQuote("Q", 50, bid, exp, eventmodels.Float64Ptr(delta), nil))
		}

		result := Screen(quotes, params, now)

		for i, r := range result.Accepted {
			assert.GreaterOrEqual(t, r.ProbabilityOfProfitPct, params.PopMin)
			assert.LessOrEqual(t, r.ProbabilityOfProfitPct, params.PopMax)
			assert.GreaterOrEqual(t, r.AnnualizedReturnPct, params.MinAnnualReturn)
			assert.Greater(t, r.DaysToExpiration, 0)
			if i > 0 {
				assert.GreaterOrEqual(t, result.Accepted[i-1].AnnualizedReturnPct, r.AnnualizedReturnPct)
			}
		}

		assert.LessOrEqual(t, len(result.Accepted)+result.BelowThresholdCount, result.CandidateCount)
		assert.LessOrEqual(t, result.CandidateCount, result.InputCount)
		assert.Equal(t, len(quotes), result.InputCount)
	})

	t.Run("empty input", func(t *testing.T) {
		result := Screen(nil, params, now)

		assert.NotNil(t, result.Accepted)
		assert.Empty(t, result.Accepted)
		assert.Equal(t, 0, result.InputCount)
	})
}
