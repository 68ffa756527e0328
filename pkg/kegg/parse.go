package kegg

import (
	"bufio"
	"io"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// Width of the field name column in KEGG flat files
	flatFieldWidth = 12
	maxLineSize    = 1024 * 1024
)

// ParsePathwayList parses the tab separated output of /list/pathway/<org>.
// Each line is "<id>\t<name> - <organism label>"; the organism suffix and any
// "path:" prefix on the id are dropped.
func ParsePathwayList(r io.Reader) ([]graph.Pathway, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	pathways := make([]graph.Pathway, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		id, desc, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, &ParseError{Op: "list", Line: lineNo, Msg: "missing tab separator"}
		}
		id = strings.TrimPrefix(strings.TrimSpace(id), "path:")
		if id == "" {
			return nil, &ParseError{Op: "list", Line: lineNo, Msg: "empty pathway id"}
		}

		name := strings.TrimSpace(desc)
		if i := strings.LastIndex(name, " - "); i > 0 {
			name = strings.TrimSpace(name[:i])
		}

		pathways = append(pathways, graph.Pathway{
			ID:       id,
			Name:     name,
			Category: Categorize(name),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Op: "list", Line: lineNo, Msg: err.Error()}
	}
	if len(pathways) == 0 {
		return nil, &ParseError{Op: "list", Msg: "empty pathway list"}
	}
	return pathways, nil
}

// ParseGeneSection extracts gene symbols from the GENE section of a KEGG
// pathway flat file. Entries look like "7157  TP53; tumor protein p53 [KO:K04451]";
// only entries that start with a numeric gene id are kept.
func ParseGeneSection(r io.Reader) (mapset.Set[string], error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	genes := mapset.NewSet[string]()
	inSection := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		var content string
		switch {
		case strings.HasPrefix(line, "GENE"):
			inSection = true
			if len(line) > flatFieldWidth {
				content = strings.TrimSpace(line[flatFieldWidth:])
			}
		case inSection && strings.HasPrefix(line, " "):
			content = strings.TrimSpace(line)
		default:
			inSection = false
			continue
		}

		fields := strings.Fields(content)
		if len(fields) > 1 && isDigits(fields[0]) {
			if symbol := strings.ReplaceAll(fields[1], ";", ""); symbol != "" {
				genes.Add(symbol)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Op: "get", Line: lineNo, Msg: err.Error()}
	}
	return genes, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
