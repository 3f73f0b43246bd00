package exact

import "github.com/clonehound/clonehound/pkg/analyzer"

// Group is a set of files whose rendered function text hashes collide.
// A file is listed once per hash even when it contains multiple identical
// occurrences; a group always has at least two distinct files.
type Group struct {
	Hash  string   `json:"hash"`
	Code  string   `json:"code"`
	Files []string `json:"files"`
}

// Analysis is the full exact-duplicate result.
type Analysis struct {
	Groups            []Group          `json:"groups"`
	TotalFilesScanned int              `json:"total_files_scanned"`
	TotalFunctions    int              `json:"total_functions"`
	Events            []analyzer.Event `json:"events,omitempty"`
}
