package kegg

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/athapong/kegg-overlap/pkg/graph/metrics"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL  = "https://rest.kegg.jp"
	DefaultOrganism = "hsa"
)

// CatalogSource lists the pathways available for an organism
type CatalogSource interface {
	ListPathways(ctx context.Context) ([]graph.Pathway, error)
}

// Source is the read-only view of KEGG the analyzer needs
type Source interface {
	CatalogSource
	graph.GeneSource
}

// ClientConfig configures a KEGG REST client
type ClientConfig struct {
	BaseURL  string
	Organism string
	// Timeout bounds each request; zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client talks to the KEGG REST API. Every call is a single best-effort request.
type Client struct {
	baseURL    string
	organism   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a KEGG client, filling defaults for empty fields
func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	organism := cfg.Organism
	if organism == "" {
		organism = DefaultOrganism
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
		httpClient.Timeout = cfg.Timeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Client{
		baseURL:    baseURL,
		organism:   organism,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Organism returns the KEGG organism code the catalog is listed for
func (c *Client) Organism() string {
	return c.organism
}

// ListPathways fetches the pathway catalog of the configured organism
func (c *Client) ListPathways(ctx context.Context) ([]graph.Pathway, error) {
	body, err := c.fetch(ctx, "list", "/list/pathway/"+url.PathEscape(c.organism))
	if err != nil {
		return nil, err
	}

	pathways, err := ParsePathwayList(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"organism":      c.organism,
		"pathway_count": len(pathways),
	}).Debug("Fetched pathway catalog")
	return pathways, nil
}

// GetGenes fetches the gene symbols of one pathway
func (c *Client) GetGenes(ctx context.Context, pathwayID string) (mapset.Set[string], error) {
	pathwayID = strings.TrimPrefix(strings.TrimSpace(pathwayID), "path:")
	if pathwayID == "" {
		return nil, errors.New("pathway id is required")
	}

	body, err := c.fetch(ctx, "get", "/get/"+url.PathEscape(pathwayID))
	if err != nil {
		return nil, err
	}

	genes, err := ParseGeneSection(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"pathway_id": pathwayID,
		"gene_count": genes.Cardinality(),
	}).Debug("Fetched pathway genes")
	return genes, nil
}

func (c *Client) fetch(ctx context.Context, op, path string) ([]byte, error) {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build kegg %s request", op)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.KEGGRequests.WithLabelValues(op, "error").Inc()
		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	metrics.KEGGRequests.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: errors.Wrap(err, "failed to read response body")}
	}
	return body, nil
}

// LoadCatalog fetches the catalog sorted by display name. A failure is returned
// as a CatalogFetchError together with an empty, non-nil catalog.
func LoadCatalog(ctx context.Context, source CatalogSource, logger *logrus.Logger) ([]graph.Pathway, error) {
	pathways, err := source.ListPathways(ctx)
	if err != nil {
		metrics.CatalogFetchErrors.Inc()
		if logger != nil {
			logger.WithError(err).Warn("Pathway catalog unavailable")
		}
		return []graph.Pathway{}, &CatalogFetchError{Err: err}
	}
	return SortByName(pathways), nil
}
