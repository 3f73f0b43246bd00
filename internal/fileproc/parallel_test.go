package fileproc

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clonehound/clonehound/pkg/parser"
)

func TestMapFiles(t *testing.T) {
	files := []string{"a.js", "b.js", "c.js"}

	results := MapFiles(files, func(p *parser.Parser, path string) (string, error) {
		assert.NotNil(t, p)
		return filepath.Base(path), nil
	})

	assert.Len(t, results, 3)
	assert.ElementsMatch(t, files, results)
}

func TestMapFiles_Empty(t *testing.T) {
	results := MapFiles(nil, func(p *parser.Parser, path string) (string, error) {
		return path, nil
	})
	assert.Nil(t, results)
}

func TestMapFilesWithErrors(t *testing.T) {
	files := []string{"ok.js", "bad.js", "fine.js"}

	var mu sync.Mutex
	var failed []string

	results := MapFilesWithErrors(files, func(p *parser.Parser, path string) (string, error) {
		if path == "bad.js" {
			return "", errors.New("boom")
		}
		return path, nil
	}, func(path string, err error) {
		mu.Lock()
		failed = append(failed, path)
		mu.Unlock()
	})

	assert.Len(t, results, 2)
	assert.Equal(t, []string{"bad.js"}, failed)
}

func TestMapFilesN_Progress(t *testing.T) {
	files := []string{"a.js", "b.js", "c.js", "d.js"}

	var ticks atomic.Int64
	results := MapFilesN(files, 2, func(p *parser.Parser, path string) (int, error) {
		return 1, nil
	}, func() {
		ticks.Add(1)
	}, nil)

	assert.Len(t, results, 4)
	assert.Equal(t, int64(4), ticks.Load())
}

func TestMapFilesN_ProgressIncludesFailures(t *testing.T) {
	files := []string{"a.js", "b.js"}

	var ticks atomic.Int64
	MapFilesN(files, 1, func(p *parser.Parser, path string) (int, error) {
		return 0, errors.New("always fails")
	}, func() {
		ticks.Add(1)
	}, nil)

	assert.Equal(t, int64(2), ticks.Load(), "progress ticks for failed files too")
}

func TestProcessingError(t *testing.T) {
	err := ProcessingError{Path: "x.js", Err: errors.New("bad")}
	assert.Contains(t, err.Error(), "x.js")
	assert.Contains(t, err.Error(), "bad")
}
