package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/athapong/kegg-overlap/pkg/graph/algorithms"
	"github.com/athapong/kegg-overlap/pkg/graph/storage"
	"github.com/athapong/kegg-overlap/pkg/graph/visualizer"
	"github.com/athapong/kegg-overlap/pkg/kegg"
	"github.com/athapong/kegg-overlap/services"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	pathwayIDs      = flag.String("pathways", "", "Comma separated KEGG pathway IDs to compare")
	preset          = flag.Bool("preset", false, "Compare the preset cancer, vitamin, diabetes and drug metabolism pathways")
	minCount        = flag.Int("min-count", 1, "Only print genes found in at least this many pathways")
	outputFile      = flag.String("output", "pathway_overlap.json", "Output file path for the JSON result; empty to skip")
	visualize       = flag.Bool("visualize", false, "Generate a visualization of the membership graph")
	visualizeOutput = flag.String("viz-output", "pathway_overlap.html", "Output file for the visualization")
	logLevel        = flag.String("log-level", "", "Logging level (debug, info, warn, error); defaults to LOG_LEVEL")
	envFile         = flag.String("env", ".env", "Path to environment file")
)

type options struct {
	pathwayIDs      []string
	preset          bool
	minCount        int
	outputFile      string
	visualize       bool
	visualizeOutput string
}

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		logrus.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// Configure logging
	logger, err := services.NewLogger(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}

	opts := options{
		pathwayIDs:      splitIDs(*pathwayIDs),
		preset:          *preset,
		minCount:        *minCount,
		outputFile:      *outputFile,
		visualize:       *visualize,
		visualizeOutput: *visualizeOutput,
	}

	client := services.NewKEGGClient(cfg, logger)
	if err := run(context.Background(), opts, client, client.Organism(), os.Stdout, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, opts options, source kegg.Source, organism string, out io.Writer, logger *logrus.Logger) error {
	if len(opts.pathwayIDs) == 0 && !opts.preset {
		return errors.New("either -pathways or -preset must be specified")
	}
	if opts.minCount < 1 {
		return errors.Errorf("-min-count must be at least 1, got %d", opts.minCount)
	}

	// A missing catalog leaves an empty preset and bare IDs as names
	catalog, err := kegg.LoadCatalog(ctx, source, logger)
	if err != nil {
		logger.Warn(err.Error())
	}

	ids := opts.pathwayIDs
	if len(ids) == 0 {
		ids = kegg.DefaultSelection(catalog)
		logger.Infof("Using %d preset pathways", len(ids))
	}

	analyzer := graph.NewAnalyzer(source, logger)
	result := analyzer.Analyze(ctx, kegg.Resolve(catalog, ids))

	for _, n := range result.Notices {
		logger.Warn(n.Message)
	}

	if err := visualizer.WriteTextTable(out, graph.FilterMinCount(result.Records, opts.minCount)); err != nil {
		return errors.Wrap(err, "failed to write table")
	}

	logger.Infof("Membership graph generated with %d nodes and %d edges",
		len(result.Graph.Nodes), len(result.Graph.Edges))
	for i, group := range algorithms.NewGraphTraversal(result.Graph).PathwayGroups() {
		logger.WithField("pathways", strings.Join(group, ",")).Debugf("Pathway group %d", i+1)
	}

	if opts.outputFile != "" {
		store := storage.NewJSONResultStore(opts.outputFile, organism)
		if err := store.StoreResult(ctx, result); err != nil {
			return errors.Wrap(err, "failed to store result")
		}
		logger.Infof("Result saved to %s", opts.outputFile)
	}

	// Visualize the graph if requested
	if opts.visualize {
		viz := visualizer.NewD3Visualizer(opts.visualizeOutput)
		if err := viz.Visualize(result.Graph); err != nil {
			logger.Errorf("Failed to visualize membership graph: %v", err)
		} else {
			logger.Infof("Visualization saved to %s", opts.visualizeOutput)
		}
	}
	return nil
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
