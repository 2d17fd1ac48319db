package idprovider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/idprovider/internal/idgen"
	"gopkg.in/yaml.v3"
)

// DefaultScopeName names the scope used by Service.Pop and Service.Provider.
const DefaultScopeName = "default"

// Config is a serialisable representation of the service configuration. It can
// be populated from YAML or JSON; zero-value fields inherit the defaults.
type Config struct {
	// DefaultScope names the scope served by Pop.
	DefaultScope string `json:"defaultScope" yaml:"defaultScope"`
	// Reserved and ReservedURL seed the default scope.
	Reserved    []int64 `json:"reserved,omitempty" yaml:"reserved,omitempty"`
	ReservedURL string  `json:"reservedURL,omitempty" yaml:"reservedURL,omitempty"`
	// Scopes seeds other named scopes.
	Scopes map[string]*ScopeConfig `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	// Source is either "random" (default) or "wide".
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// MaxRetries caps regeneration after a collision, 0 means unbounded.
	MaxRetries int           `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
	LogLevel   string        `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	Tracing    TracingConfig `json:"tracing" yaml:"tracing"`
}

// ScopeConfig seeds a scope's reserved pool. When both fields are set the pool
// is the content of ReservedURL followed by Reserved, so inline entries are
// issued first.
type ScopeConfig struct {
	Reserved    []int64 `json:"reserved,omitempty" yaml:"reserved,omitempty"`
	ReservedURL string  `json:"reservedURL,omitempty" yaml:"reservedURL,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	// OutputFile receives stdout exporter output; empty means os.Stdout.
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		DefaultScope: DefaultScopeName,
		Source:       "random",
		LogLevel:     logrus.InfoLevel.String(),
		Tracing: TracingConfig{
			ServiceName:    "idprovider",
			ServiceVersion: "0.1.0",
		},
	}
}

// LoadConfig reads a YAML (or JSON) config from URL on top of DefaultConfig.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return cfg, cfg.Validate()
}

// Scope returns the seed of the named scope; the default scope also takes the
// top level Reserved and ReservedURL.
func (c *Config) Scope(name string) *ScopeConfig {
	ret := &ScopeConfig{}
	if c == nil {
		return ret
	}
	if name == c.DefaultScope {
		ret.Reserved = c.Reserved
		ret.ReservedURL = c.ReservedURL
	}
	if scope, ok := c.Scopes[name]; ok && scope != nil {
		ret.Reserved = append(append([]int64{}, ret.Reserved...), scope.Reserved...)
		if scope.ReservedURL != "" {
			ret.ReservedURL = scope.ReservedURL
		}
	}
	return ret
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.DefaultScope == "" {
		errs = append(errs, fmt.Errorf("defaultScope must not be empty"))
	}
	if _, ok := idgen.Named(c.Source); !ok {
		errs = append(errs, fmt.Errorf("unsupported source: %q", c.Source))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("maxRetries must be >= 0"))
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("logLevel: %w", err))
		}
	}
	if _, ok := c.Scopes[""]; ok {
		errs = append(errs, fmt.Errorf("scope name must not be empty"))
	}
	return errors.Join(errs...)
}
