package near

import (
	"context"
	"strings"
	"testing"

	"github.com/clonehound/clonehound/pkg/source"
)

func TestNew(t *testing.T) {
	a := New()
	if a.threshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", a.threshold, DefaultThreshold)
	}

	a = New(WithThreshold(0.95))
	if a.threshold != 0.95 {
		t.Errorf("threshold = %v, want 0.95", a.threshold)
	}
}

func TestAnalyze_NearIdentical(t *testing.T) {
	// Same function with one literal changed: high bigram overlap.
	src := source.NewMap(map[string]string{
		"a.js": `function fetchUser(id) { const url = baseUrl + id; return request(url, 1000); }`,
		"b.js": `function fetchUser(id) { const url = baseUrl + id; return request(url, 3000); }`,
	})

	a := New(WithThreshold(0.8))
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if analysis.TotalFunctions != 2 {
		t.Fatalf("TotalFunctions = %d, want 2", analysis.TotalFunctions)
	}
	if len(analysis.Matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if analysis.Summary.TotalMatches == 0 {
		t.Error("summary reports zero matches")
	}
	for _, match := range analysis.Matches {
		for _, cand := range match.Matches {
			if cand.Score < 0.8 || cand.Score > 1.0 {
				t.Errorf("score %v outside [threshold, 1]", cand.Score)
			}
		}
	}
}

func TestAnalyze_RenamedParameters(t *testing.T) {
	// Renamed single-letter parameters and loose whitespace: the rendered
	// texts score exactly 0.8, and the threshold is inclusive.
	src := source.NewMap(map[string]string{
		"a.js": `function add(a,b){return a+b;}`,
		"b.js": `function add(x,y){ return x + y; }`,
	})

	a := New(WithThreshold(0.8))
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) == 0 {
		t.Fatal("expected a match at exactly the threshold")
	}
	if score := analysis.Matches[0].Matches[0].Score; score < 0.8 {
		t.Errorf("score = %v, want >= 0.8", score)
	}
}

func TestAnalyze_NoSelfMatch(t *testing.T) {
	src := source.NewMap(map[string]string{
		"solo.js": `function onlyOne(a, b) { return a + b; }`,
	})

	a := New()
	analysis, err := a.Analyze(context.Background(), []string{"solo.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) != 0 {
		t.Errorf("a lone function matched itself: %+v", analysis.Matches)
	}
}

func TestAnalyze_BelowThreshold(t *testing.T) {
	src := source.NewMap(map[string]string{
		"a.js": `function alpha() { return "left"; }`,
		"b.js": `const beta = (q, w) => q * w + q;`,
	})

	a := New(WithThreshold(0.9))
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) != 0 {
		t.Errorf("dissimilar functions matched: %+v", analysis.Matches)
	}
}

func TestAnalyze_DifferentBucketsNeverCompared(t *testing.T) {
	// The small function's rendered text is well under one bucket width;
	// the large one is past it. Even at a permissive threshold the pair
	// is never scored because length bucketing keeps them apart.
	long := `function big(a) { return a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a + a; }`
	src := source.NewMap(map[string]string{
		"small.js": `function big(a) { return a + a; }`,
		"large.js": long,
	})

	a := New(WithThreshold(0.1))
	analysis, err := a.Analyze(context.Background(), []string{"small.js", "large.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) != 0 {
		t.Errorf("cross-bucket pair was scored: %+v", analysis.Matches)
	}
}

func TestAnalyze_ThresholdInclusive(t *testing.T) {
	// Identical functions score exactly 1.0; a threshold of 1.0 must
	// still include them.
	src := source.NewMap(map[string]string{
		"a.js": `function same() { return 7; }`,
		"b.js": `function same() { return 7; }`,
	})

	a := New(WithThreshold(1.0))
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) == 0 {
		t.Fatal("pair scoring exactly the threshold was excluded")
	}
}

func TestAnalyze_Summary(t *testing.T) {
	src := source.NewMap(map[string]string{
		"a.js": `function same() { return 7; }`,
		"b.js": `function same() { return 7; }`,
	})

	a := New()
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	s := analysis.Summary
	if s.TotalMatches == 0 {
		t.Fatal("summary reports zero matches")
	}
	if s.MeanScore != 1.0 || s.P50Score != 1.0 || s.P95Score != 1.0 {
		t.Errorf("summary of all-identical pairs = %+v, want all 1.0", s)
	}
}

func TestAnalyze_SummaryEmpty(t *testing.T) {
	a := New()
	analysis, err := a.Analyze(context.Background(), nil, source.NewMap(nil))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if analysis.Summary.TotalMatches != 0 || analysis.Summary.MeanScore != 0 {
		t.Errorf("empty input summary = %+v", analysis.Summary)
	}
}

func TestAnalyze_MatchCarriesRenderedText(t *testing.T) {
	src := source.NewMap(map[string]string{
		"a.js": `function same() { return 7; }`,
		"b.js": `function same() { return 7; }`,
	})

	a := New()
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) == 0 {
		t.Fatal("expected matches")
	}
	if !strings.Contains(analysis.Matches[0].Function, "same") {
		t.Errorf("match function text = %q", analysis.Matches[0].Function)
	}
}

func TestAnalyze_PartialFailure(t *testing.T) {
	src := source.NewMap(map[string]string{
		"a.js":      `function same() { return 7; }`,
		"b.js":      `function same() { return 7; }`,
		"broken.js": `function ( ][`,
	})

	a := New()
	analysis, err := a.Analyze(context.Background(), []string{"a.js", "b.js", "broken.js"}, src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(analysis.Matches) == 0 {
		t.Error("broken file suppressed matches from healthy files")
	}
	if len(analysis.Events) != 1 || analysis.Events[0].File != "broken.js" {
		t.Errorf("events = %+v, want one for broken.js", analysis.Events)
	}
}
