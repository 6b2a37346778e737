package screener

import (
	"math"
	"sort"
	"time"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

const daysPerYear = 365.0

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysToExpiration is the absolute number of calendar days between now and the expiration.
func DaysToExpiration(now, expiration time.Time) int {
	days := int(math.Round(calendarDate(expiration).Sub(calendarDate(now)).Hours() / 24))
	if days < 0 {
		return -days
	}

	return days
}

// PutReturn is the premium received over the capital at risk, bid / (strike - bid).
// It reports false when the capital at risk is not positive.
func PutReturn(strike, bid float64) (float64, bool) {
	atRisk := strike - bid
	if math.IsNaN(atRisk) || atRisk <= 0 {
		return 0, false
	}

	return bid / atRisk, true
}

func AnnualizedReturn(putReturn float64, daysToExpiration int) (float64, bool) {
	if daysToExpiration <= 0 {
		return 0, false
	}

	annualized := putReturn / float64(daysToExpiration) * daysPerYear
	if math.IsNaN(annualized) || math.IsInf(annualized, 0) {
		return 0, false
	}

	return annualized, true
}

// ResolveProbabilityOfProfit prefers the broker's chance of profit and falls back to
// 1 - |delta|. The two are never reconciled when both are present.
func ResolveProbabilityOfProfit(quote eventmodels.OptionQuote) (float64, eventmodels.PoPSource, bool) {
	if quote.HasChanceOfProfitShort() && !math.IsNaN(*quote.ChanceOfProfitShort) {
		return *quote.ChanceOfProfitShort, eventmodels.PoPSourceChanceOfProfit, true
	}

	if quote.HasDelta() && !math.IsNaN(*quote.Delta) {
		return 1 - math.Abs(*quote.Delta), eventmodels.PoPSourceDelta, true
	}

	return 0, "", false
}

// Screen computes return and probability of profit for every quote, keeps the ones whose
// PoP lies within [PopMin, PopMax] and whose annualized return meets MinAnnualReturn, and
// returns them ordered by annualized return, highest first. Candidates that only miss the
// return threshold are counted in BelowThresholdCount. Quotes with missing or degenerate
// data are dropped. params.MaxDTE is not applied here; it limits which expirations are
// fetched.
func Screen(quotes []eventmodels.OptionQuote, params eventmodels.ScreenParams, now time.Time) eventmodels.ScreenResult {
	result := eventmodels.ScreenResult{
		Accepted:   []eventmodels.ScreenedResult{},
		InputCount: len(quotes),
	}

	for _, quote := range quotes {
		dte := DaysToExpiration(now, quote.ExpirationDate)

		putReturn, ok := PutReturn(quote.StrikePrice, quote.BidPrice)
		if !ok {
			continue
		}

		annualReturn, ok := AnnualizedReturn(putReturn, dte)
		if !ok {
			continue
		}

		pop, source, ok := ResolveProbabilityOfProfit(quote)
		if !ok {
			continue
		}

		popPct := pop * 100
		if popPct < params.PopMin || popPct > params.PopMax {
			continue
		}

		result.CandidateCount++

		annualReturnPct := annualReturn * 100
		if annualReturnPct < params.MinAnnualReturn {
			result.BelowThresholdCount++
			continue
		}

		result.Accepted = append(result.Accepted, eventmodels.ScreenedResult{
			OptionQuote:               quote,
			DaysToExpiration:          dte,
			PutReturnPct:              putReturn * 100,
			AnnualizedReturnPct:       annualReturnPct,
			ProbabilityOfProfitPct:    popPct,
			ProbabilityOfProfitSource: source,
		})
	}

	sort.SliceStable(result.Accepted, func(i, j int) bool {
		return result.Accepted[i].AnnualizedReturnPct > result.Accepted[j].AnnualizedReturnPct
	})

	return result
}
