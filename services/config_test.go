package services

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test. envconfig treats a
// variable set to "" as present, so t.Setenv(key, "") would skip defaults.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, v) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "KEGG_BASE_URL", "KEGG_ORGANISM", "KEGG_TIMEOUT", "LOG_LEVEL", "HTTP_ADDR", "ENABLE_TOOLS", "ENABLE_SSE")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://rest.kegg.jp", cfg.KEGGBaseURL)
	assert.Equal(t, "hsa", cfg.KEGGOrganism)
	assert.Equal(t, time.Duration(0), cfg.KEGGTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.EnableSSE)
	assert.Nil(t, cfg.EnabledTools())
}

func TestLoadConfigFromEnv(t *testing.T) {
	unsetEnv(t, "LOG_LEVEL", "HTTP_ADDR")
	t.Setenv("KEGG_BASE_URL", "http://localhost:9999")
	t.Setenv("KEGG_ORGANISM", "mmu")
	t.Setenv("KEGG_TIMEOUT", "15s")
	t.Setenv("ENABLE_TOOLS", " kegg_pathway_overlap, ,list_kegg_pathways")
	t.Setenv("ENABLE_SSE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.KEGGBaseURL)
	assert.Equal(t, "mmu", cfg.KEGGOrganism)
	assert.Equal(t, 15*time.Second, cfg.KEGGTimeout)
	assert.True(t, cfg.EnableSSE)
	assert.Equal(t, []string{"kegg_pathway_overlap", "list_kegg_pathways"}, cfg.EnabledTools())

	client := NewKEGGClient(cfg, nil)
	assert.Equal(t, "mmu", client.Organism())
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	unsetEnv(t, "ENABLE_SSE")
	t.Setenv("KEGG_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
