package model

// SummaryCounts holds status metrics over all cases.
//
// Cases whose status is not canonical are part of Total but of no bucket;
// Unbucketed makes that difference visible.
type SummaryCounts struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	Unbucketed int64            `json:"unbucketed"`
}

// NewSummaryCounts returns SummaryCounts with a zero bucket for every
// canonical status.
func NewSummaryCounts() SummaryCounts {
	by := make(map[string]int64, len(CaseStatuses))
	for _, s := range CaseStatuses {
		by[s] = 0
	}
	return SummaryCounts{ByStatus: by}
}

// SummaryStore computes status metrics.
type SummaryStore interface {
	Counts() (SummaryCounts, error)
}
