package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root       string   `yaml:"root"`
		IgnoreDirs []string `yaml:"ignore_dirs"`
	} `yaml:"project"`
	Hierarchy struct {
		ArchitectureDirs []string `yaml:"architecture_dirs"`
		SourceRoots      []string `yaml:"source_roots"`
	} `yaml:"hierarchy"`
	Output struct {
		Snapshot string `yaml:"snapshot"`
		Diagram  string `yaml:"diagram"`
	} `yaml:"output"`
}

// LoadConfig reads a YAML config file, applying .env and environment
// overrides on top. A missing file is not an error, defaults apply.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	var cfg Config

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("ARCHMAP_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if snapshot := os.Getenv("ARCHMAP_SNAPSHOT"); snapshot != "" {
		cfg.Output.Snapshot = snapshot
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Project.Root == "" {
		c.Project.Root = "."
	}
	if c.Output.Snapshot == "" {
		c.Output.Snapshot = ".archmap/facts.json"
	}
}
