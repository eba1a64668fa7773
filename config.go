package jgen

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the .jgen.yaml configuration file.
type Config struct {
	// Target language (e.g., "java")
	Lang string `yaml:"lang,omitempty"`

	// Default environment snapshot for all descriptors
	Environment string `yaml:"environment,omitempty"`

	// Per-pattern environment overrides (glob pattern -> snapshot path)
	// e.g., "legacy/*.yaml": "env/javaee7.yaml"
	Files map[string]string `yaml:"files,omitempty"`

	// Source root generated files are placed under
	Out string `yaml:"out,omitempty"`

	// Line delimiter: "lf", "crlf" or a literal delimiter
	LineDelimiter string `yaml:"lineDelimiter,omitempty"`

	// Properties copied into every generation context
	Properties map[string]string `yaml:"properties,omitempty"`

	// path is the file the config was loaded from.
	path string
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".jgen.yaml", ".jgen.yml", "jgen.yaml", "jgen.yml"}

// LoadConfig finds and loads the nearest .jgen.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	cfg.path = path

	return &cfg, nil
}

// EnvironmentFor returns the environment snapshot for a descriptor path.
// It checks file-specific patterns first (in sorted order), then falls back to the default.
// Relative snapshot paths are resolved against the config file's directory.
func (c *Config) EnvironmentFor(filePath string) string {
	env := c.Environment

	for _, pattern := range slices.Sorted(maps.Keys(c.Files)) {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			env = c.Files[pattern]

			break
		}
	}

	if env == "" || filepath.IsAbs(env) || c.path == "" {
		return env
	}

	return filepath.Join(filepath.Dir(c.path), env)
}

// OutputRoot returns the configured source root, resolved against the config
// file's directory when relative. Empty when no root is configured.
func (c *Config) OutputRoot() string {
	if c.Out == "" || filepath.IsAbs(c.Out) || c.path == "" {
		return c.Out
	}

	return filepath.Join(filepath.Dir(c.path), c.Out)
}

// Delimiter translates the configured line delimiter.
func (c *Config) Delimiter() string {
	return ParseLineDelimiter(c.LineDelimiter)
}

// ParseLineDelimiter maps "lf", "crlf" and "cr" to their characters; any other
// non-empty value is used literally, empty yields DefaultLineDelimiter.
func ParseLineDelimiter(s string) string {
	switch s {
	case "":
		return DefaultLineDelimiter
	case "lf", "LF":
		return "\n"
	case "crlf", "CRLF":
		return "\r\n"
	case "cr", "CR":
		return "\r"
	default:
		return s
	}
}
