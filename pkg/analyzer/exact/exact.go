// Package exact groups byte-identical functions by content hash of their
// rendered text.
package exact

import (
	"context"
	"sort"
	"strings"

	"github.com/clonehound/clonehound/internal/fileproc"
	"github.com/clonehound/clonehound/pkg/analyzer"
	"github.com/clonehound/clonehound/pkg/source"
)

// Analyzer finds exact duplicate functions across a file set.
type Analyzer struct {
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

// New creates an exact-duplicate analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts all functions, hashes each one's trimmed rendered text,
// and returns every hash shared by at least two distinct files. Failing
// files are skipped and reported via Events; they never abort the run.
func (a *Analyzer) Analyze(ctx context.Context, files []string, src source.ContentSource) (*Analysis, error) {
	fragments, events := analyzer.Extract(ctx, files, src, a.onProgress)

	type acc struct {
		code  string
		files map[string]struct{}
	}
	byHash := make(map[string]*acc)

	for _, frag := range fragments {
		code := strings.TrimSpace(frag.Code)
		hash := analyzer.ContentHash(code)
		group, ok := byHash[hash]
		if !ok {
			group = &acc{code: code, files: make(map[string]struct{})}
			byHash[hash] = group
		}
		group.files[frag.File] = struct{}{}
	}

	var groups []Group
	for hash, group := range byHash {
		if len(group.files) < 2 {
			continue
		}
		fileList := make([]string, 0, len(group.files))
		for f := range group.files {
			fileList = append(fileList, f)
		}
		sort.Strings(fileList)
		groups = append(groups, Group{
			Hash:  hash,
			Code:  group.code,
			Files: fileList,
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
