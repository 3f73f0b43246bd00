// Package analyzer holds the pieces shared by the three duplicate finders:
// function fragment extraction, content hashing, and skip-event reporting.
package analyzer

import (
	"context"
	"encoding/hex"
	"errors"
	"sort"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/clonehound/clonehound/internal/fileproc"
	"github.com/clonehound/clonehound/pkg/parser"
	"github.com/clonehound/clonehound/pkg/render"
	"github.com/clonehound/clonehound/pkg/source"
)

// Fragment is one function-like subtree rendered to normalized text.
// Immutable once created; scoped to a single analysis run.
type Fragment struct {
	File      string
	Dialect   parser.Dialect
	Name      string
	Code      string
	StartLine uint32
	EndLine   uint32
}

// ContentHash returns the hex-encoded blake3 digest of a text string. Used
// purely as an opaque grouping key; hash equality is the sole grouping
// criterion and is not re-verified against the original text.
func ContentHash(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Extract parses every file and renders each function-like subtree it
// contains. Files are processed in parallel with a per-worker parser; the
// returned fragments are sorted by file and position so results are
// deterministic. A failure in one file never aborts the others: it is
// recorded as an Event and the file is skipped.
func Extract(ctx context.Context, files []string, src source.ContentSource, onProgress fileproc.ProgressFunc) ([]Fragment, []Event) {
	var mu sync.Mutex
	var events []Event

	results := fileproc.MapFilesN(files, 0, func(psr *parser.Parser, path string) (fileResult, error) {
		return extractFile(ctx, psr, path, src)
	}, onProgress, func(path string, err error) {
		stage := StageRead
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			stage = StageParse
		}
		mu.Lock()
		events = append(events, NewEvent(path, "", stage, err))
		mu.Unlock()
	})

	var fragments []Fragment
	for _, r := range results {
		fragments = append(fragments, r.fragments...)
		events = append(events, r.events...)
	}

	sort.Slice(fragments, func(i, j int) bool {
		if fragments[i].File != fragments[j].File {
			return fragments[i].File < fragments[j].File
		}
		if fragments[i].StartLine != fragments[j].StartLine {
			return fragments[i].StartLine < fragments[j].StartLine
		}
		return fragments[i].Code < fragments[j].Code
	})
	sort.Slice(events, func(i, j int) bool {
		if events[i].File != events[j].File {
			return events[i].File < events[j].File
		}
		return events[i].Function < events[j].Function
	})

	return fragments, events
}

type fileResult struct {
	fragments []Fragment
	events    []Event
}

// extractFile parses one file and renders its functions. Parse failures are
// returned as errors (the caller records them); render failures are scoped
// to the single function and recorded as events alongside the survivors.
func extractFile(ctx context.Context, psr *parser.Parser, path string, src source.ContentSource) (fileResult, error) {
	content, err := src.Read(path)
	if err != nil {
		return fileResult{}, err
	}

	dialect := parser.Detect(path)
	if dialect == parser.DialectUnknown {
		return fileResult{}, &parser.ParseError{Path: path, Dialect: dialect}
	}

	result, err := psr.Parse(ctx, content, dialect, path)
	if err != nil {
		return fileResult{}, err
	}
	defer result.Close()

	functions, err := parser.Functions(result)
	if err != nil {
		// Depth bound tripped; drop this file's extraction only.
		return fileResult{events: []Event{NewEvent(path, "", StageExtract, err)}}, nil
	}

	var out fileResult
	for _, fn := range functions {
		code, err := render.Node(fn.Node, result.Source)
		if err != nil {
			out.events = append(out.events, NewEvent(path, fn.Name, StageRender, err))
			continue
		}
		out.fragments = append(out.fragments, Fragment{
			File:      path,
			Dialect:   dialect,
			Name:      fn.Name,
			Code:      code,
			StartLine: fn.StartLine,
			EndLine:   fn.EndLine,
		})
	}
	return out, nil
}
