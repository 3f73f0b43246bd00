// Package structural groups functions that are structurally identical up to
// identifier and literal naming. Each extracted function's rendered text is
// re-parsed into a fresh subtree, canonicalized, and hashed; hash collisions
// define the groups.
package structural

import (
	"context"
	"sort"

	"github.com/clonehound/clonehound/internal/fileproc"
	"github.com/clonehound/clonehound/pkg/analyzer"
	"github.com/clonehound/clonehound/pkg/canonical"
	"github.com/clonehound/clonehound/pkg/parser"
	"github.com/clonehound/clonehound/pkg/source"
)

// Analyzer finds structural duplicate functions across a file set.
type Analyzer struct {
	parser     *parser.Parser
	onProgress fileproc.ProgressFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress sets a callback invoked once per processed file.
func WithProgress(fn fileproc.ProgressFunc) Option {
	return func(a *Analyzer) {
		a.onProgress = fn
	}
}

// New creates a structural-duplicate analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{parser: parser.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// Analyze extracts all functions, canonicalizes each one, and returns every
// canonical hash with at least two contributing occurrences. A function
// whose rendered text fails to re-parse or canonicalize is skipped for
// structural analysis and reported via Events, never partially normalized.
func (a *Analyzer) Analyze(ctx context.Context, files []string, src source.ContentSource) (*Analysis, error) {
	fragments, events := analyzer.Extract(ctx, files, src, a.onProgress)

	type acc struct {
		canonicalCode string
		occurrences   []Occurrence
	}
	byHash := make(map[string]*acc)
	var hashOrder []string

	for _, frag := range fragments {
		canonText, err := a.canonicalize(ctx, frag)
		if err != nil {
			stage := analyzer.StageCanonicalize
			if _, ok := err.(*parser.ParseError); ok {
				stage = analyzer.StageParse
			}
			events = append(events, analyzer.NewEvent(frag.File, frag.Name, stage, err))
			continue
		}

		hash := analyzer.ContentHash(canonText)
		group, ok := byHash[hash]
		if !ok {
			group = &acc{canonicalCode: canonText}
			byHash[hash] = group
			hashOrder = append(hashOrder, hash)
		}
		group.occurrences = append(group.occurrences, Occurrence{
			File: frag.File,
			Code: frag.Code,
		})
	}

	var groups []Group
	for _, hash := range hashOrder {
		group := byHash[hash]
		if len(group.occurrences) < 2 {
			continue
		}
		groups = append(groups, Group{
			Hash:          hash,
			CanonicalCode: group.canonicalCode,
			Occurrences:   group.occurrences,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Hash < groups[j].Hash
	})

	return &Analysis{
		Groups:            groups,
		TotalFilesScanned: len(files),
		TotalFunctions:    len(fragments),
		Events:            events,
	}, nil
}

// canonicalize re-parses a fragment's rendered text under its own dialect
// and canonicalizes the first function-like subtree found inside it.
func (a *Analyzer) canonicalize(ctx context.Context, frag analyzer.Fragment) (string, error) {
	result, err := a.parser.Parse(ctx, []byte(frag.Code), frag.Dialect, frag.File)
	if err != nil {
		return "", err
	}
	defer result.Close()

	functions, err := parser.Functions(result)
	if err != nil {
		return "", err
	}
	if len(functions) == 0 {
		return "", &canonical.Error{Kind: "program", Reason: "no function subtree after re-parse"}
	}

	return canonical.Node(functions[0].Node, result.Source)
}
