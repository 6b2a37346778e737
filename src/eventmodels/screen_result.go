package eventmodels

type ScreenResult struct {
	Accepted            []ScreenedResult `json:"accepted"`
	BelowThresholdCount int              `json:"below_threshold_count"`
	CandidateCount      int              `json:"candidate_count"`
	InputCount          int              `json:"input_count"`
}

func (r ScreenResult) AnnualizedReturns() []float64 {
	returns := make([]float64, 0, len(r.Accepted))
	for _, a := range r.Accepted {
		returns = append(returns, a.AnnualizedReturnPct)
	}

	return returns
}
