package visualizer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/athapong/kegg-overlap/pkg/graph"
)

// WriteTextTable writes records as an aligned gene/count/pathways table
func WriteTextTable(w io.Writer, records []graph.GeneOverlapRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GENE\tCOUNT\tPATHWAYS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Gene, r.Count, strings.Join(r.Pathways, ", "))
	}
	return tw.Flush()
}

// WriteMarkdownTable writes records as a markdown table. Pathway IDs are
// replaced by display names found in names.
func WriteMarkdownTable(w io.Writer, records []graph.GeneOverlapRecord, names map[string]string) error {
	var b strings.Builder
	b.WriteString("| Gene | Count | Pathways |\n")
	b.WriteString("|------|-------|----------|\n")
	for _, r := range records {
		labels := make([]string, 0, len(r.Pathways))
		for _, id := range r.Pathways {
			if name, ok := names[id]; ok && name != "" && name != id {
				labels = append(labels, fmt.Sprintf("%s (%s)", name, id))
				continue
			}
			labels = append(labels, id)
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(r.Gene), r.Count, escapeCell(strings.Join(labels, ", ")))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// PathwayNames indexes pathway display names by ID
func PathwayNames(pathways []graph.Pathway) map[string]string {
	names := make(map[string]string, len(pathways))
	for _, p := range pathways {
		names[p.ID] = p.Name
	}
	return names
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
