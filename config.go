package taxonomist

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index/openfda"
	"github.com/poiesic/taxonomist/resolve"
)

// Config holds the resolver tuning and the index connection settings.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	OpenFDA OpenFDAConfig `toml:"openfda"`
	Mirror  MirrorConfig  `toml:"mirror"`

	// Synonyms extends the built-in synonym table. Entries replace built-in
	// entries for the same term.
	Synonyms map[string][]string `toml:"synonyms"`

	// Fillers, GenericTerms and HighMissTerms replace the built-in word
	// lists when set.
	Fillers       []string `toml:"fillers"`
	GenericTerms  []string `toml:"generic_terms"`
	HighMissTerms []string `toml:"high_miss_terms"`
}

// SearchConfig tunes the resolver.
type SearchConfig struct {
	CallBudget         int      `toml:"call_budget"`
	BridgeBudget       int      `toml:"bridge_budget"`
	RelevanceThreshold float64  `toml:"relevance_threshold"`
	MaxBridgeCodes     int      `toml:"max_bridge_codes"`
	Fields             []string `toml:"fields"`
	CorpusField        string   `toml:"corpus_field"`
	CodePattern        string   `toml:"code_pattern"`
}

// OpenFDAConfig configures the remote indexes.
type OpenFDAConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"` // requests per second
	Timeout   string `toml:"timeout"`    // duration string, default "30s"
	Limit     int    `toml:"limit"`      // records per query
}

// GetTimeout parses and returns the timeout duration
func (c *OpenFDAConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return openfda.DefaultTimeout
	}
	return d
}

// MirrorConfig configures the local mirror. An empty path means the remote
// indexes are used.
type MirrorConfig struct {
	Path     string `toml:"path"`
	PageSize int    `toml:"page_size"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMirror resolves against the local mirror at path.
func WithMirror(path string) ConfigOption {
	return func(c *Config) {
		c.Mirror.Path = path
	}
}

// WithAPIKey sets the openFDA API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.OpenFDA.APIKey = key
	}
}

// WithCallBudget sets the call budget of the direct search stage.
func WithCallBudget(budget int) ConfigOption {
	return func(c *Config) {
		c.Search.CallBudget = budget
	}
}

// WithBridgeBudget sets the call budget of the bridge stage.
func WithBridgeBudget(budget int) ConfigOption {
	return func(c *Config) {
		c.Search.BridgeBudget = budget
	}
}

// WithRelevanceThreshold sets the coverage accepted as a strong match.
func WithRelevanceThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.Search.RelevanceThreshold = threshold
	}
}

// DefaultConfig returns a Config that resolves against the public openFDA API.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			CallBudget:         resolve.DefaultCallBudget,
			BridgeBudget:       resolve.DefaultBridgeBudget,
			RelevanceThreshold: resolve.DefaultRelevanceThreshold,
			MaxBridgeCodes:     resolve.DefaultMaxBridgeCodes,
			Fields:             append([]string(nil), resolve.DefaultFields...),
			CorpusField:        core.FieldName,
			CodePattern:        resolve.DefaultCodePattern.String(),
		},
		OpenFDA: OpenFDAConfig{
			BaseURL:   openfda.DefaultBaseURL,
			RateLimit: openfda.DefaultRateLimit,
			Timeout:   openfda.DefaultTimeout.String(),
			Limit:     openfda.DefaultLimit,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadConfig loads configuration from TOML files on top of the defaults.
// Later files override earlier ones and missing files are skipped.
// The TAXONOMIST_OPENFDA_API_KEY and TAXONOMIST_MIRROR environment
// variables override the files.
func LoadConfig(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("TAXONOMIST_OPENFDA_API_KEY"); key != "" {
		cfg.OpenFDA.APIKey = key
	}
	if path := os.Getenv("TAXONOMIST_MIRROR"); path != "" {
		cfg.Mirror.Path = path
	}
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.OpenFDA.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.OpenFDA.BaseURL), "/")
	c.Mirror.Path = strings.TrimSpace(c.Mirror.Path)
	if c.Search.CorpusField == "" {
		c.Search.CorpusField = core.FieldName
	}
	if c.Search.CodePattern == "" {
		c.Search.CodePattern = resolve.DefaultCodePattern.String()
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Search.CallBudget < 0 || c.Search.BridgeBudget < 0 {
		return fmt.Errorf("%w: budgets must not be negative", ErrInvalidConfig)
	}
	if c.Search.RelevanceThreshold < 0 || c.Search.RelevanceThreshold > 1 {
		return fmt.Errorf("%w: relevance_threshold must be within [0, 1]", ErrInvalidConfig)
	}
	if c.Search.MaxBridgeCodes < 1 {
		return fmt.Errorf("%w: max_bridge_codes must be at least 1", ErrInvalidConfig)
	}
	if len(c.Search.Fields) == 0 {
		return fmt.Errorf("%w: at least one search field is required", ErrInvalidConfig)
	}
	if _, err := regexp.Compile(c.Search.CodePattern); err != nil {
		return fmt.Errorf("%w: code_pattern: %w", ErrInvalidConfig, err)
	}
	if c.Mirror.Path == "" && c.OpenFDA.BaseURL == "" {
		return fmt.Errorf("%w: either a mirror path or an openfda base_url is required", ErrInvalidConfig)
	}
	if c.OpenFDA.Timeout != "" {
		if _, err := time.ParseDuration(c.OpenFDA.Timeout); err != nil {
			return fmt.Errorf("%w: openfda timeout: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ResolverOptions translates the configuration into resolver options.
// The configuration must be valid.
func (c *Config) ResolverOptions() []resolve.Option {
	opts := []resolve.Option{
		resolve.WithCallBudget(c.Search.CallBudget),
		resolve.WithBridgeBudget(c.Search.BridgeBudget),
		resolve.WithRelevanceThreshold(c.Search.RelevanceThreshold),
		resolve.WithMaxBridgeCodes(c.Search.MaxBridgeCodes),
		resolve.WithFields(c.Search.Fields...),
		resolve.WithCorpusField(c.Search.CorpusField),
		resolve.WithCodePattern(regexp.MustCompile(c.Search.CodePattern)),
	}
	if len(c.Synonyms) > 0 {
		opts = append(opts, resolve.WithSynonyms(resolve.DefaultSynonyms().With(c.Synonyms)))
	}
	if len(c.Fillers) > 0 {
		opts = append(opts, resolve.WithFillers(resolve.NewWordSet(c.Fillers...)))
	}
	if len(c.GenericTerms) > 0 {
		opts = append(opts, resolve.WithGenericTerms(resolve.NewWordSet(c.GenericTerms...)))
	}
	if len(c.HighMissTerms) > 0 {
		opts = append(opts, resolve.WithHighMissTerms(resolve.NewWordSet(c.HighMissTerms...)))
	}
	return opts
}
