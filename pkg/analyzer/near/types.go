package near

import "github.com/clonehound/clonehound/pkg/analyzer"

// DefaultThreshold is the similarity cutoff when none is configured.
// A pair scoring exactly the threshold is included.
const DefaultThreshold = 0.8

// bucketWidth is the size-bucket granularity in characters of rendered
// text. Functions whose lengths fall in different buckets are never
// compared; the lost recall is the price of avoiding a global O(n^2) scan.
const bucketWidth = 100

// Candidate is one function found similar to an anchor function.
type Candidate struct {
	Function string  `json:"function"`
	File     string  `json:"file"`
	Score    float64 `json:"score"`
}

// Match groups all candidates found for one anchor function.
type Match struct {
	Function string      `json:"function"`
	File     string      `json:"file"`
	Matches  []Candidate `json:"matches"`
}

// Summary aggregates match score statistics.
type Summary struct {
	TotalMatches int     `json:"total_matches"`
	MeanScore    float64 `json:"mean_score"`
	P50Score     float64 `json:"p50_score"`
	P95Score     float64 `json:"p95_score"`
}

// Analysis is the full near-duplicate result.
type Analysis struct {
	Matches           []Match          `json:"matches"`
	Threshold         float64          `json:"threshold"`
	Summary           Summary          `json:"summary"`
	TotalFilesScanned int              `json:"total_files_scanned"`
	TotalFunctions    int              `json:"total_functions"`
	Events            []analyzer.Event `json:"events,omitempty"`
}
