// Package config loads pyscope's YAML configuration and ignore-file
// exclusion patterns, the way the Kaizen tool this engine was adapted
// from loads its own .kaizen.yaml / .kaizenignore pair.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is pyscope's configuration, loaded from .pyscope.yaml and
// .pyscopeignore in the project root.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Smells   SmellConfig    `yaml:"smells"`

	// IgnorePatterns come from .pyscopeignore, not the YAML file.
	IgnorePatterns []string `yaml:"-"`
}

// AnalysisConfig controls source-tree traversal.
type AnalysisConfig struct {
	ExcludePattern []string `yaml:"exclude"`
}

// SmellConfig controls the Smell Detector's thresholds.
type SmellConfig struct {
	MaxParameters     int  `yaml:"max_parameters"`
	ReportMagicNumber bool `yaml:"report_magic_number"`
}

// DefaultConfig returns pyscope's default configuration. Directory
// pruning (dotfile dirs, __pycache__, node_modules, venv, env) is
// built into the Project Walker itself; filename-based exclusion is
// opt-in per project via .pyscope.yaml or .pyscopeignore, not baked
// in here.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ExcludePattern: []string{},
		},
		Smells: SmellConfig{
			MaxParameters:     5,
			ReportMagicNumber: true,
		},
		IgnorePatterns: []string{},
	}
}

// LoadConfig loads configuration from .pyscope.yaml and .pyscopeignore
// under rootPath, falling back to defaults for whatever is absent.
func LoadConfig(rootPath string) (*Config, error) {
	cfg := DefaultConfig()

	yamlPath := filepath.Join(rootPath, ".pyscope.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := cfg.loadYAML(yamlPath); err != nil {
			return nil, err
		}
	}

	ignorePath := filepath.Join(rootPath, ".pyscopeignore")
	if _, err := os.Stat(ignorePath); err == nil {
		if err := cfg.loadIgnoreFile(ignorePath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	defaults := DefaultConfig()
	if cfg.Smells.MaxParameters == 0 {
		cfg.Smells.MaxParameters = defaults.Smells.MaxParameters
	}

	return nil
}

// Validate ensures configured thresholds are sane.
func (cfg *Config) Validate() error {
	if cfg.Smells.MaxParameters < 0 {
		return fmt.Errorf("smells.max_parameters must be >= 0, got %d", cfg.Smells.MaxParameters)
	}
	return nil
}

func (cfg *Config) loadIgnoreFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, line)
	}

	return scanner.Err()
}

// ShouldIgnore reports whether path should be excluded from the walk,
// checking both .pyscopeignore patterns and .pyscope.yaml's exclude list.
func (cfg *Config) ShouldIgnore(path string) bool {
	for _, pattern := range cfg.IgnorePatterns {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	for _, pattern := range cfg.Analysis.ExcludePattern {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks a path against a gitignore-style pattern:
// negation (!), directory-only (trailing /), root-anchored (leading /),
// "**" wildcard, basename match, substring containment, or a plain glob.
func matchesPattern(path string, pattern string) bool {
	if strings.HasPrefix(pattern, "!") {
		return !matchesPattern(path, pattern[1:])
	}

	if strings.HasSuffix(pattern, "/") {
		pattern = pattern[:len(pattern)-1]
		return strings.HasPrefix(path, pattern+"/") || path == pattern
	}

	if strings.HasPrefix(pattern, "/") {
		pattern = pattern[1:]
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		if len(parts) == 2 {
			prefix, suffix := parts[0], parts[1]
			if strings.HasPrefix(path, prefix) {
				rest := path[len(prefix):]
				for i := 0; i <= len(rest); i++ {
					if matched, _ := filepath.Match(suffix, rest[i:]); matched {
						return true
					}
				}
			}
		}
	}

	if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
		return true
	}

	if strings.Contains(path, pattern) {
		return true
	}

	matched, _ := filepath.Match(pattern, path)
	return matched
}

// GetExcludePatterns returns all exclude patterns from both sources.
func (cfg *Config) GetExcludePatterns() []string {
	patterns := make([]string, 0, len(cfg.IgnorePatterns)+len(cfg.Analysis.ExcludePattern))
	patterns = append(patterns, cfg.IgnorePatterns...)
	patterns = append(patterns, cfg.Analysis.ExcludePattern...)
	return patterns
}
