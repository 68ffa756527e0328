package graph

import (
	"sort"
)

// ComputeOverlap tallies, per gene, the pathways whose membership set contains it.
// Records are ordered by count descending, then gene symbol ascending. The pathway
// list of each record keeps the order of the memberships argument.
func ComputeOverlap(memberships []Membership) []GeneOverlapRecord {
	if len(memberships) == 0 {
		return []GeneOverlapRecord{}
	}

	containing := make(map[string][]string)
	for _, m := range memberships {
		if m.Genes == nil {
			continue
		}
		m.Genes.Each(func(gene string) bool {
			containing[gene] = append(containing[gene], m.Pathway.ID)
			return false
		})
	}

	records := make([]GeneOverlapRecord, 0, len(containing))
	for gene, pathways := range containing {
		records = append(records, GeneOverlapRecord{
			Gene:     gene,
			Count:    len(pathways),
			Pathways: pathways,
		})
	}

	SortRecords(records)
	return records
}

// SortRecords orders records by count descending, tie-broken by gene ascending
func SortRecords(records []GeneOverlapRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count > records[j].Count
		}
		return records[i].Gene < records[j].Gene
	})
}

// FilterMinCount keeps records appearing in at least minCount pathways.
// A minCount of 2 gives the shared-genes-only view.
func FilterMinCount(records []GeneOverlapRecord, minCount int) []GeneOverlapRecord {
	if minCount <= 1 {
		return records
	}
	filtered := make([]GeneOverlapRecord, 0, len(records))
	for _, r := range records {
		if r.Count >= minCount {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
