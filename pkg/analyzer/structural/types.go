package structural

import "github.com/clonehound/clonehound/pkg/analyzer"

// Occurrence is one original function contributing to a structural group,
// kept for traceability back to source.
type Occurrence struct {
	File string `json:"file"`
	Code string `json:"code"`
}

// Group collects functions whose canonical forms hash identically. Repeats
// within one file count; a group always has at least two occurrences.
type Group struct {
	Hash          string       `json:"hash"`
	CanonicalCode string       `json:"canonical_code"`
	Occurrences   []Occurrence `json:"occurrences"`
}

// Analysis is the full structural-duplicate result.
type Analysis struct {
	Groups            []Group          `json:"groups"`
	TotalFilesScanned int              `json:"total_files_scanned"`
	TotalFunctions    int              `json:"total_functions"`
	Events            []analyzer.Event `json:"events,omitempty"`
}
