package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/athapong/kegg-overlap/pkg/graph/algorithms"
	"github.com/athapong/kegg-overlap/pkg/graph/visualizer"
	"github.com/athapong/kegg-overlap/pkg/kegg"
	"github.com/athapong/kegg-overlap/services"
	"github.com/athapong/kegg-overlap/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Longest catalog listing returned by list_kegg_pathways
const maxListedPathways = 200

// RegisterKEGGTools registers the pathway listing and overlap tools backed by the KEGG REST API
func RegisterKEGGTools(s *server.MCPServer) {
	registerKEGGTools(s, newKEGGTools(services.DefaultKEGGClient(), nil))
}

func registerKEGGTools(s *server.MCPServer, k *keggTools) {
	listTool := mcp.NewTool("list_kegg_pathways",
		mcp.WithDescription("List KEGG pathways of the configured organism, sorted by name. Use this to find pathway IDs before computing gene overlap."),
		mcp.WithString("query", mcp.Description("Case-insensitive text that pathway names must contain")),
		mcp.WithBoolean("preset", mcp.Description("Only list pathways related to cancers, vitamins, diabetes and drug metabolism")),
	)
	s.AddTool(listTool, util.ErrorGuard(k.listPathwaysHandler))

	overlapTool := mcp.NewTool("kegg_pathway_overlap",
		mcp.WithDescription("Fetch the genes of the given KEGG pathways and report, for every gene, how many of the pathways contain it and which ones. Pathways that cannot be fetched are skipped and reported."),
		mcp.WithString("pathway_ids", mcp.Required(), mcp.Description("Comma separated KEGG pathway IDs (e.g. hsa05200,hsa04930)")),
		mcp.WithNumber("min_count", mcp.Description("Only report genes found in at least this many pathways (default 1, use 2 for shared genes)")),
	)
	s.AddTool(overlapTool, util.ErrorGuard(k.pathwayOverlapHandler))
}

type keggTools struct {
	source   kegg.Source
	analyzer *graph.Analyzer
	logger   *logrus.Logger
}

func newKEGGTools(source kegg.Source, logger *logrus.Logger) *keggTools {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &keggTools{
		source:   source,
		analyzer: graph.NewAnalyzer(source, logger),
		logger:   logger,
	}
}

func (k *keggTools) listPathwaysHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	preset, err := boolArgument(request.GetArguments(), "preset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	catalog, err := kegg.LoadCatalog(ctx, k.source, k.logger)
	if err != nil {
		fmt.Fprintf(&b, "> warning: %s\n\n", err.Error())
	}
	if preset {
		catalog = kegg.FilterByKeywords(catalog, kegg.DefaultKeywords)
	}
	catalog = kegg.FilterByText(catalog, query)

	if len(catalog) == 0 {
		b.WriteString("No pathways matched.")
		return mcp.NewToolResultText(b.String()), nil
	}

	fmt.Fprintf(&b, "Found %d pathways:\n", len(catalog))
	for i, p := range catalog {
		if i == maxListedPathways {
			fmt.Fprintf(&b, "... %d more, narrow the query to see them\n", len(catalog)-i)
			break
		}
		fmt.Fprintf(&b, "- %s: %s [%s]\n", p.ID, p.Name, p.Category)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (k *keggTools) pathwayOverlapHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := splitIDs(request.GetString("pathway_ids", ""))
	if len(ids) == 0 {
		return mcp.NewToolResultError("pathway_ids must list at least one pathway ID"), nil
	}

	minCount, err := intArgument(request.GetArguments(), "min_count", 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Names are only decoration; a missing catalog still allows the analysis
	catalog, catalogErr := kegg.LoadCatalog(ctx, k.source, k.logger)
	result := k.analyzer.Analyze(ctx, kegg.Resolve(catalog, ids))

	var b strings.Builder
	if catalogErr != nil {
		fmt.Fprintf(&b, "> warning: %s\n\n", catalogErr.Error())
	}
	for _, n := range result.Notices {
		fmt.Fprintf(&b, "> %s: %s\n\n", n.Level, n.Message)
	}

	analyzed := len(result.Selected) - len(result.Skipped)
	records := graph.FilterMinCount(result.Records, minCount)
	groups := algorithms.NewGraphTraversal(result.Graph).PathwayGroups()
	fmt.Fprintf(&b, "Analyzed %d pathways: %d genes, %d shared by two or more. The pathways form %d group(s) connected through shared genes.\n\n",
		analyzed, len(result.Records), result.Graph.Stats.SharedGenes, len(groups))

	if err := visualizer.WriteMarkdownTable(&b, records, visualizer.PathwayNames(result.Selected)); err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(b.String()), nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func boolArgument(arguments map[string]interface{}, key string) (bool, error) {
	switch v := arguments[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if v == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, errors.Errorf("%s must be a boolean", key)
		}
		return b, nil
	default:
		return false, errors.Errorf("%s must be a boolean", key)
	}
}

func intArgument(arguments map[string]interface{}, key string, def int) (int, error) {
	var n int
	switch v := arguments[key].(type) {
	case nil:
		return def, nil
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		if strings.TrimSpace(v) == "" {
			return def, nil
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errors.Errorf("%s must be a number", key)
		}
		n = parsed
	default:
		return 0, errors.Errorf("%s must be a number", key)
	}
	if n < 1 {
		return 0, errors.Errorf("%s must be at least 1", key)
	}
	return n, nil
}
