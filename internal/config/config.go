package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tiedye/internal/errors"
	"tiedye/pkg/types"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration document.
// The sorter section drives the file sorting engine; scaffolder, paths and
// analytics belong to the other subcommands.
type Config struct {
	Sorter     *SorterSection    `yaml:"sorter,omitempty"`
	Scaffolder ScaffolderSection `yaml:"scaffolder,omitempty"`
	Paths      map[string]string `yaml:"paths,omitempty"`
	Analytics  AnalyticsSection  `yaml:"analytics,omitempty"`
}

// SorterSection is the raw `sorter` block as written in the YAML document.
// It is normalized and validated by SorterConfig before the engine sees it.
type SorterSection struct {
	Rules           []types.SortRule `yaml:"rules"`
	CollisionPolicy string           `yaml:"collision_policy"` // skip | overwrite | rename
	RecursiveScan   *bool            `yaml:"recursive_scan"`   // default true
	IgnorePatterns  []string         `yaml:"ignore_patterns"`
}

// ScaffolderSection configures the directory-template scaffolder.
type ScaffolderSection struct {
	TemplatesDir              string   `yaml:"templates_dir,omitempty"`
	DefaultProjectDestination string   `yaml:"default_project_destination,omitempty"`
	Favorites                 []string `yaml:"favorites,omitempty"`
}

// AnalyticsSection configures the local event log.
type AnalyticsSection struct {
	Enabled  *bool  `yaml:"enabled,omitempty"` // default true
	Database string `yaml:"database,omitempty"`
}

// DefaultPath returns the default config file location
// (~/.config/tiedye/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tiedye", "config.yaml"), nil
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
// If the file doesn't exist, returns an empty configuration; commands that
// require a particular section report its absence themselves.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	return cfg, nil
}

// New creates an empty configuration.
func New() *Config {
	return &Config{Paths: map[string]string{}}
}

// Save writes the configuration to the specified file, creating parent
// directories if they don't exist.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SorterConfig validates and normalizes the sorter section. A missing section
// is a configuration error: the sorter never runs against an implicit rule set.
func (c *Config) SorterConfig() (*types.SorterConfig, error) {
	if c.Sorter == nil {
		return nil, errors.NewConfigError("sorter configuration is missing", "sorter", errors.MissingSection, nil)
	}

	out := &types.SorterConfig{
		CollisionPolicy: types.CollisionSkip,
		Recursive:       true,
		IgnorePatterns:  c.Sorter.IgnorePatterns,
	}

	if c.Sorter.CollisionPolicy != "" {
		policy, err := types.ParseCollisionPolicy(c.Sorter.CollisionPolicy)
		if err != nil {
			return nil, errors.NewConfigError("invalid configuration", "sorter.collision_policy", errors.InvalidConfig, err)
		}
		out.CollisionPolicy = policy
	}

	if c.Sorter.RecursiveScan != nil {
		out.Recursive = *c.Sorter.RecursiveScan
	}

	for i, rule := range c.Sorter.Rules {
		if len(rule.Extensions) == 0 {
			return nil, errors.NewRuleError("rule must list at least one extension",
				fmt.Sprintf("sorter.rules[%d]", i), errors.InvalidRule, nil)
		}
		if strings.TrimSpace(rule.TargetFolder) == "" {
			return nil, errors.NewRuleError("rule target_folder is required",
				fmt.Sprintf("sorter.rules[%d]", i), errors.InvalidRule, nil)
		}

		normalized := types.SortRule{TargetFolder: rule.TargetFolder}
		for _, ext := range rule.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext != "" && !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized.Extensions = append(normalized.Extensions, ext)
		}
		out.Rules = append(out.Rules, normalized)
	}

	for i, pattern := range c.Sorter.IgnorePatterns {
		if _, err := glob.Compile(pattern); err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern",
				fmt.Sprintf("sorter.ignore_patterns[%d]", i), errors.InvalidConfig, err)
		}
	}

	return out, nil
}

// ExpandUser replaces a leading ~ with the user's home directory.
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
