// Package config resolves the runtime configuration: built-in defaults, an
// optional TOML or YAML file, a .env file and the access token variable.
// It is the only place that reads the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/repo-stats/internal/gateway"
)

// DefaultTokenEnv is the variable holding the optional GitHub access token.
const DefaultTokenEnv = "GITHUB_TOKEN"

// DefaultExtensions are the source file extensions counted without --all-ext.
var DefaultExtensions = []string{
	".py", ".js", ".ts", ".java", ".c", ".cpp",
	".go", ".rb", ".rs", ".php", ".html", ".css",
}

// Config is the resolved configuration.
type Config struct {
	TokenEnv          string
	Token             string
	BaseURL           string
	UploadURL         string
	GraphQLURL        string
	Extensions        []string
	RateLimitMaxSleep time.Duration
}

// fileConfig mirrors the keys accepted in a config file.
type fileConfig struct {
	TokenEnv          string   `toml:"token_env" yaml:"token_env"`
	BaseURL           string   `toml:"base_url" yaml:"base_url"`
	UploadURL         string   `toml:"upload_url" yaml:"upload_url"`
	GraphQLURL        string   `toml:"graphql_url" yaml:"graphql_url"`
	Extensions        []string `toml:"extensions" yaml:"extensions"`
	RateLimitMaxSleep string   `toml:"rate_limit_max_sleep" yaml:"rate_limit_max_sleep"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		TokenEnv:          DefaultTokenEnv,
		Extensions:        append([]string(nil), DefaultExtensions...),
		RateLimitMaxSleep: time.Hour,
	}
}

// Load builds the configuration. configPath and dotenvPath may be empty.
// A missing dotenv file is ignored; a missing config file is an error.
func Load(configPath, dotenvPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		fc, err := readFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.merge(fc); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
		}
	}

	if dotenvPath != "" {
		// Variables already set in the environment take precedence.
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	cfg.Token = strings.TrimSpace(os.Getenv(cfg.TokenEnv))
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return &fc, nil
}

func (c *Config) merge(fc *fileConfig) error {
	if fc.TokenEnv != "" {
		c.TokenEnv = fc.TokenEnv
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.UploadURL != "" {
		c.UploadURL = fc.UploadURL
	}
	if fc.GraphQLURL != "" {
		c.GraphQLURL = fc.GraphQLURL
	}
	if len(fc.Extensions) > 0 {
		c.Extensions = NormalizeExtensions(fc.Extensions)
	}
	if fc.RateLimitMaxSleep != "" {
		d, err := time.ParseDuration(fc.RateLimitMaxSleep)
		if err != nil {
			return fmt.Errorf("rate_limit_max_sleep: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("rate_limit_max_sleep must be positive, got %s", d)
		}
		c.RateLimitMaxSleep = d
	}
	return nil
}

// NormalizeExtensions trims entries, adds the leading dot and drops duplicates.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]bool, len(extensions))
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}

// GatewayOptions returns the settings the GitHub gateway is built from.
func (c *Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Token:             c.Token,
		BaseURL:           c.BaseURL,
		UploadURL:         c.UploadURL,
		GraphQLURL:        c.GraphQLURL,
		MaxRateLimitSleep: c.RateLimitMaxSleep,
	}
}
