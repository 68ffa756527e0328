package visualizer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleRecords() []graph.GeneOverlapRecord {
	return []graph.GeneOverlapRecord{
		{Gene: "geneB", Count: 2, Pathways: []string{"P1", "P2"}},
		{Gene: "geneA", Count: 1, Pathways: []string{"P1"}},
		{Gene: "geneC", Count: 1, Pathways: []string{"P2"}},
	}
}

func writeIfMissingOrUpdate(path string, got string) (created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		return true, os.WriteFile(path, []byte(got), 0644)
	}
	if _, e := os.Stat(path); os.IsNotExist(e) {
		return true, os.WriteFile(path, []byte(got), 0644)
	}
	return false, nil
}

func TestWriteTextTable_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTextTable(&buf, exampleRecords()))
	got := buf.String()

	path := filepath.Join("testdata", "example_table.golden")
	created, err := writeIfMissingOrUpdate(path, got)
	require.NoError(t, err)
	if created {
		t.Logf("wrote %s", path)
		return
	}
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), got)
}

func TestWriteTextTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTextTable(&buf, nil))
	assert.Equal(t, "GENE  COUNT  PATHWAYS\n", buf.String())
}

func TestWriteMarkdownTable(t *testing.T) {
	names := PathwayNames([]graph.Pathway{
		{ID: "P1", Name: "Pathways in cancer"},
		{ID: "P2", Name: "P2"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdownTable(&buf, exampleRecords(), names))

	want := "| Gene | Count | Pathways |\n" +
		"|------|-------|----------|\n" +
		"| geneB | 2 | Pathways in cancer (P1), P2 |\n" +
		"| geneA | 1 | Pathways in cancer (P1) |\n" +
		"| geneC | 1 | P2 |\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteMarkdownTableEscapesPipes(t *testing.T) {
	var buf bytes.Buffer
	records := []graph.GeneOverlapRecord{{Gene: "A|B", Count: 1, Pathways: []string{"P1"}}}
	require.NoError(t, WriteMarkdownTable(&buf, records, nil))
	assert.Contains(t, buf.String(), `| A\|B | 1 | P1 |`)
}
