package arithseq

import "chi-reactor-workshop/internal/handlers"

// ResultResponse is the JSON form of one Result.
type ResultResponse struct {
	MinValue int32 `json:"min_value"`
	Step     int32 `json:"step"`
	Count    int32 `json:"count"`
	MaxValue int32 `json:"max_value"`
	Sum      int32 `json:"sum"`
}

// DetailResponse is the JSON response for the detail endpoints. The reactive
// variant streams the same document.
type DetailResponse struct {
	Results []ResultResponse `json:"results"`
	handlers.Execution
}

// SummaryResponse is the JSON response for the summary endpoints.
type SummaryResponse struct {
	TotalSum int64 `json:"total_sum"`
	Count    int32 `json:"count"`
	handlers.Execution
}

func toResponse(r Result) ResultResponse {
	return ResultResponse{
		MinValue: r.MinValue,
		Step:     r.Step,
		Count:    r.Count,
		MaxValue: r.MaxValue,
		Sum:      r.Sum,
	}
}
