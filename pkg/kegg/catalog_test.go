package kegg

import (
	"testing"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/stretchr/testify/assert"
)

func sampleCatalog() []graph.Pathway {
	return []graph.Pathway{
		{ID: "hsa05210", Name: "Colorectal cancer"},
		{ID: "hsa00010", Name: "Glycolysis / Gluconeogenesis"},
		{ID: "hsa04930", Name: "Type II diabetes mellitus"},
		{ID: "hsa00053", Name: "Ascorbate and aldarate metabolism"},
		{ID: "hsa05200", Name: "Pathways in cancer"},
		{ID: "hsa00980", Name: "Metabolism of xenobiotics by cytochrome P450"},
	}
}

func TestCategorize(t *testing.T) {
	tests := map[string]string{
		"Pathways in cancer":                      graph.CategoryCancer,
		"Vitamin D in cancer":                     graph.CategoryCancer,
		"Vitamin digestion and absorption":        graph.CategoryVitamin,
		"Ascorbate and aldarate metabolism":       graph.CategoryVitamin,
		"Type I diabetes mellitus":                graph.CategoryDiabetes,
		"Drug metabolism - cytochrome P450":       graph.CategoryDrug,
		"Fluoropyrimidine activity":               graph.CategoryDrug,
		"Chemical carcinogenesis - DNA adducts":   graph.CategoryOther,
		"Metabolism of xenobiotics by cytochrome": graph.CategoryDrug,
	}
	for name, want := range tests {
		assert.Equal(t, want, Categorize(name), name)
	}
}

func TestSortByName(t *testing.T) {
	catalog := sampleCatalog()
	sorted := SortByName(catalog)

	names := make([]string, 0, len(sorted))
	for _, p := range sorted {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"Ascorbate and aldarate metabolism",
		"Colorectal cancer",
		"Glycolysis / Gluconeogenesis",
		"Metabolism of xenobiotics by cytochrome P450",
		"Pathways in cancer",
		"Type II diabetes mellitus",
	}, names)
	assert.Equal(t, "hsa05210", catalog[0].ID, "input must not be reordered")
}

func TestFilterByText(t *testing.T) {
	catalog := sampleCatalog()
	assert.Len(t, FilterByText(catalog, ""), len(catalog))

	got := FilterByText(catalog, "  CANCER ")
	assert.Len(t, got, 2)
	assert.Equal(t, "hsa05210", got[0].ID)
	assert.Equal(t, "hsa05200", got[1].ID)

	assert.Empty(t, FilterByText(catalog, "no such pathway"))
}

func TestFilterByKeywords(t *testing.T) {
	got := FilterByKeywords(sampleCatalog(), DefaultKeywords)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"hsa05210", "hsa04930", "hsa00053", "hsa05200", "hsa00980"}, ids)
}

func TestDefaultSelection(t *testing.T) {
	catalog := make([]graph.Pathway, 0, 15)
	for i := 0; i < 15; i++ {
		catalog = append(catalog, graph.Pathway{ID: string(rune('a' + i)), Name: "Some cancer"})
	}
	catalog = append(catalog, graph.Pathway{ID: "z", Name: "Glycolysis"})

	sel := DefaultSelection(catalog)
	assert.Len(t, sel, DefaultSelectionSize)
	assert.Equal(t, "a", sel[0])
	assert.NotContains(t, sel, "z")
}

func TestResolve(t *testing.T) {
	got := Resolve(sampleCatalog(), []string{"path:hsa05200", "", "hsa12345"})
	assert.Equal(t, []graph.Pathway{
		{ID: "hsa05200", Name: "Pathways in cancer"},
		{ID: "hsa12345", Name: "hsa12345", Category: graph.CategoryOther},
	}, got)
}
