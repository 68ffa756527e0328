package services

import (
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the environment driven settings shared by all entry points
type Config struct {
	KEGGBaseURL  string        `envconfig:"KEGG_BASE_URL" default:"https://rest.kegg.jp"`
	KEGGOrganism string        `envconfig:"KEGG_ORGANISM" default:"hsa"`
	KEGGTimeout  time.Duration `envconfig:"KEGG_TIMEOUT" default:"0s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
	EnableTools  string        `envconfig:"ENABLE_TOOLS"`
	EnableSSE    bool          `envconfig:"ENABLE_SSE" default:"false"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "error processing environment configuration")
	}
	return &cfg, nil
}

// EnabledTools returns the tool names listed in ENABLE_TOOLS; empty means all
func (c *Config) EnabledTools() []string {
	if strings.TrimSpace(c.EnableTools) == "" {
		return nil
	}
	var tools []string
	for _, name := range strings.Split(c.EnableTools, ",") {
		if name = strings.TrimSpace(name); name != "" {
			tools = append(tools, name)
		}
	}
	return tools
}

// NewLogger creates a text logger at the given level for command line use
func NewLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	logger.SetLevel(lvl)
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger, nil
}
