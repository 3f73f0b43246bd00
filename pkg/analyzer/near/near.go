// Package near discovers textually near-identical functions by bucketed
// pairwise similarity scoring.
//
// Functions are partitioned into coarse buckets by rendered-text length, and
// only pairs within one bucket are compared. Each ordered pair is scored
// with a bigram Dice similarity; pairs at or above the threshold are grouped
// under their anchor function. A typed pair key (sorted file pair plus a
// hash of the anchor's text) suppresses repeat reporting of the same pair;
// the key deliberately incorporates the anchor's own text, so both
// orientations of a pair can still surface, each anchored at a different
// source function.
package near

import (
	"context"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/clonehound/clonehound/internal/fileproc"
	"github.com/clonehound/clonehound/pkg/analyzer"
	"github.com/clonehound/clonehound/pkg/source"
)

// Analyzer finds near-duplicate functions across a file set.
type Analyzer struct {
	threshold  float64
	onProgress fileproc.ProgressFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThreshold sets the similarity threshold in (0,1].
func WithThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.threshold = threshold
	}
}

// WithProgress sets a callback invoked once per processed file.
func WithProgress(fn fileproc.ProgressFunc) Option {
	return func(a *Analyzer) {
		a.onProgress = fn
	}
}

// New creates a near-duplicate analyzer with the default threshold.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// pairKey identifies an emitted pair: the sorted file pair plus a hash of
// the anchor function's own text.
type pairKey struct {
	fileA  string
	fileB  string
	anchor uint64
}

// Analyze extracts all functions, buckets them by length, and scores every
// in-bucket ordered pair against the threshold. A function is never
// compared with itself. Failing files are skipped and reported via Events.
func (a *Analyzer) Analyze(ctx context.Context, files []string, src source.ContentSource) (*Analysis, error) {
	fragments, events := analyzer.Extract(ctx, files, src, a.onProgress)

	// Size-bucket index: fragment ids per floor(len/bucketWidth).
	buckets := make(map[int]*roaring64.Bitmap)
	for i, frag := range fragments {
		key := len(frag.Code) / bucketWidth
		bm, ok := buckets[key]
		if !ok {
			bm = roaring64.New()
			buckets[key] = bm
		}
		bm.Add(uint64(i))
	}

	bucketKeys := make([]int, 0, len(buckets))
	for key := range buckets {
		bucketKeys = append(bucketKeys, key)
	}
	sort.Ints(bucketKeys)

	seen := make(map[pairKey]struct{})
	candidates := make(map[int][]Candidate)
	var scores []float64

	for _, key := range bucketKeys {
		ids := buckets[key].ToArray()
		for _, ai := range ids {
			anchor := fragments[ai]
			anchorHash := xxhash.Sum64String(anchor.Code)
			for _, bi := range ids {
				if ai == bi {
					continue
				}
				other := fragments[bi]

				score := Dice(anchor.Code, other.Code)
				if score < a.threshold {
					continue
				}

				fileA, fileB := anchor.File, other.File
				if fileB < fileA {
					fileA, fileB = fileB, fileA
				}
				pk := pairKey{fileA: fileA, fileB: fileB, anchor: anchorHash}
				if _, dup := seen[pk]; dup {
					continue
				}
				seen[pk] = struct{}{}

				candidates[int(ai)] = append(candidates[int(ai)], Candidate{
					Function: other.Code,
					File:     other.File,
					Score:    score,
				})
				scores = append(scores, score)
			}
		}
	}

	var matches []Match
	for i, frag := range fragments {
		found, ok := candidates[i]
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Function: frag.Code,
			File:     frag.File,
			Matches:  found,
		})
	}

	return &Analysis{
		Matches:           matches,
		Threshold:         a.threshold,
		Summary:           summarize(scores),
		TotalFilesScanned: len(files),
		TotalFunctions:    len(fragments),
		Events:            events,
	}, nil
}

// summarize computes aggregate score statistics.
func summarize(scores []float64) Summary {
	s := Summary{TotalMatches: len(scores)}
	if len(scores) == 0 {
		return s
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	s.MeanScore = stat.Mean(sorted, nil)
	s.P50Score = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P95Score = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}
