package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tessella-ai/flatsheet/internal/flatten"
)

// ProjectConfig holds project-level settings loaded from flatsheet.yml.
// Command-line flags override anything set here.
type ProjectConfig struct {
	Policy         string  `yaml:"policy,omitempty"`
	SheetName      string  `yaml:"sheetName,omitempty"`
	MaxColumnWidth float64 `yaml:"maxColumnWidth,omitempty"`
	Verbose        bool    `yaml:"verbose,omitempty"`
}

// Load attempts to read flatsheet.yml or flatsheet.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"flatsheet.yml", "flatsheet.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if _, err := flatten.ParsePolicy(cfg.Policy); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
