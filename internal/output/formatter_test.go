package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"toon", FormatTOON},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFormat(tt.input), "ParseFormat(%q)", tt.input)
	}
}

func sampleTable() *Table {
	return NewTable(
		"Duplicates",
		[]string{"Code", "Files"},
		[][]string{
			{"function a ( ) { }", "2"},
			{"function b ( ) { }", "3"},
		},
		[]string{"Groups: 2", ""},
		map[string]any{"groups": 2},
	)
}

func TestFormatter_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, path, true)
	require.NoError(t, err)
	require.NoError(t, f.Output(sampleTable()))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2), decoded["groups"], "structured output serializes the wrapped data, not the table")
}

func TestFormatter_YAMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	f, err := NewFormatter(FormatYAML, path, true)
	require.NoError(t, err)
	require.NoError(t, f.Output(sampleTable()))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "groups: 2")
}

func TestFormatter_TOONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toon")

	f, err := NewFormatter(FormatTOON, path, true)
	require.NoError(t, err)
	require.NoError(t, f.Output(sampleTable()))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "groups")
}

func TestTable_RenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable().RenderMarkdown(&buf))

	out := buf.String()
	assert.Contains(t, out, "## Duplicates")
	assert.Contains(t, out, "| Code | Files |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| function a ( ) { } | 2 |")
}

func TestTable_RenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable().RenderText(&buf, false))

	out := buf.String()
	assert.Contains(t, out, "Duplicates")
	assert.Contains(t, out, "function a ( ) { }")
	assert.Contains(t, out, "Groups: 2")
}

func TestTable_RenderDataFallback(t *testing.T) {
	table := NewTable("T", []string{"A", "B"}, [][]string{{"1", "2"}}, nil, nil)

	data := table.RenderData()
	rows, ok := data.([]map[string]string)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["A"])
	assert.Equal(t, "2", rows[0]["B"])
}

func TestFormatter_NonRenderable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")

	f, err := NewFormatter(FormatJSON, path, true)
	require.NoError(t, err)
	require.NoError(t, f.Output(map[string]int{"n": 1}))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"n": 1`))
}
