package kegg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	list, err := os.ReadFile(filepath.Join("testdata", "hsa_pathways.txt"))
	require.NoError(t, err)
	entry, err := os.ReadFile(filepath.Join("testdata", "hsa04930.txt"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/list/pathway/hsa", func(w http.ResponseWriter, r *http.Request) {
		w.Write(list)
	})
	mux.HandleFunc("/get/hsa04930", func(w http.ResponseWriter, r *http.Request) {
		w.Write(entry)
	})
	mux.HandleFunc("/get/hsa00000", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/get/hsa99999", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientListPathways(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL + "/", Logger: quietLogger()})

	pathways, err := client.ListPathways(context.Background())
	require.NoError(t, err)
	require.Len(t, pathways, 5)
	assert.Equal(t, "hsa05200", pathways[0].ID)
	assert.Equal(t, DefaultOrganism, client.Organism())
}

func TestClientGetGenes(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: quietLogger()})

	genes, err := client.GetGenes(context.Background(), "path:hsa04930")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"INS", "INSR", "IRS1", "PIK3CA"}, genes.ToSlice())

	empty, err := client.GetGenes(context.Background(), "hsa00000")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Cardinality())
}

func TestClientGetGenesNotFound(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: quietLogger()})

	_, err := client.GetGenes(context.Background(), "hsa99999")
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Equal(t, "get", netErr.Op)
}

func TestClientGetGenesRequiresID(t *testing.T) {
	client := NewClient(ClientConfig{Logger: quietLogger()})
	_, err := client.GetGenes(context.Background(), "  ")
	require.Error(t, err)
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{BaseURL: base, Logger: quietLogger()})
	_, err := client.ListPathways(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.StatusCode)
	assert.Error(t, netErr.Unwrap())
}

func TestLoadCatalog(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: quietLogger()})

	catalog, err := LoadCatalog(context.Background(), client, quietLogger())
	require.NoError(t, err)
	require.Len(t, catalog, 5)
	assert.Equal(t, "Ascorbate and aldarate metabolism", catalog[0].Name)
	assert.Equal(t, "Type II diabetes mellitus", catalog[4].Name)
}

func TestLoadCatalogFailureIsEmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: quietLogger()})
	catalog, err := LoadCatalog(context.Background(), client, quietLogger())

	require.Error(t, err)
	var catErr *CatalogFetchError
	require.ErrorAs(t, err, &catErr)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)

	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
	assert.IsType(t, []graph.Pathway{}, catalog)
}
