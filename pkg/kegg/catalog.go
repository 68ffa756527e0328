package kegg

import (
	"sort"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
)

// DefaultKeywords selects pathways related to cancers, vitamins, diabetes and drug metabolism
var DefaultKeywords = []string{
	"cancer",
	"ascorbate",
	"vitamin d",
	"diabetes",
	"drug metabolism",
	"xenobiotics",
	"fluoropyrimidine",
}

// DefaultSelectionSize is how many preset pathways are selected when a session starts
const DefaultSelectionSize = 10

// Categorize assigns a display category from the pathway name. Rules are
// checked in order, so "Vitamin D in cancer" is a cancer pathway.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "cancer"):
		return graph.CategoryCancer
	case strings.Contains(lower, "vitamin"), strings.Contains(lower, "ascorbate"):
		return graph.CategoryVitamin
	case strings.Contains(lower, "diabetes"):
		return graph.CategoryDiabetes
	case containsAny(lower, "drug", "xenobiotics", "fluoropyrimidine"):
		return graph.CategoryDrug
	default:
		return graph.CategoryOther
	}
}

// SortByName returns a copy of the catalog ordered by display name, then ID
func SortByName(catalog []graph.Pathway) []graph.Pathway {
	sorted := append([]graph.Pathway(nil), catalog...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// FilterByText keeps pathways whose display name contains query, ignoring case.
// An empty query keeps everything.
func FilterByText(catalog []graph.Pathway, query string) []graph.Pathway {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return catalog
	}
	out := make([]graph.Pathway, 0)
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByKeywords keeps pathways whose display name contains any keyword
func FilterByKeywords(catalog []graph.Pathway, keywords []string) []graph.Pathway {
	if len(keywords) == 0 {
		return catalog
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	out := make([]graph.Pathway, 0)
	for _, p := range catalog {
		if containsAny(strings.ToLower(p.Name), lowered...) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultSelection returns the IDs of the first preset pathways of the catalog,
// in catalog order.
func DefaultSelection(catalog []graph.Pathway) []string {
	preset := FilterByKeywords(catalog, DefaultKeywords)
	if len(preset) > DefaultSelectionSize {
		preset = preset[:DefaultSelectionSize]
	}
	ids := make([]string, 0, len(preset))
	for _, p := range preset {
		ids = append(ids, p.ID)
	}
	return ids
}

// Resolve maps pathway IDs to catalog entries. IDs missing from the catalog
// are kept with the ID as name so they can still be fetched.
func Resolve(catalog []graph.Pathway, ids []string) []graph.Pathway {
	byID := make(map[string]graph.Pathway, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	out := make([]graph.Pathway, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimPrefix(strings.TrimSpace(id), "path:")
		if id == "" {
			continue
		}
		if p, ok := byID[id]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, graph.Pathway{ID: id, Name: id, Category: graph.CategoryOther})
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
