// Package yaml loads crawl configuration from YAML files.
package yaml

import (
	"os"

	"github.com/fwojciec/crawlkit"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML config file, applies it over the defaults and
// validates the result.
func LoadConfig(path string) (*crawlkit.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crawlkit.Errorf(crawlkit.ECONFIG, "read config file: %v", err)
	}
	cfg := crawlkit.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, crawlkit.Errorf(crawlkit.ECONFIG, "parse config file: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
