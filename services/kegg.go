package services

import (
	"fmt"
	"sync"

	"github.com/athapong/kegg-overlap/pkg/kegg"
	"github.com/sirupsen/logrus"
)

// DefaultKEGGClient returns the process wide KEGG client configured from the environment
var DefaultKEGGClient = sync.OnceValue(func() *kegg.Client {
	cfg, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("invalid KEGG configuration: %v", err))
	}
	return NewKEGGClient(cfg, nil)
})

// NewKEGGClient builds a KEGG client from cfg
func NewKEGGClient(cfg *Config, logger *logrus.Logger) *kegg.Client {
	return kegg.NewClient(kegg.ClientConfig{
		BaseURL:  cfg.KEGGBaseURL,
		Organism: cfg.KEGGOrganism,
		Timeout:  cfg.KEGGTimeout,
		Logger:   logger,
	})
}
