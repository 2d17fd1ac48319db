package idprovider

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/idprovider/internal/idgen"
	"github.com/viant/idprovider/metrics"
	"github.com/viant/idprovider/provider"
	"github.com/viant/idprovider/service/pool"
	"github.com/viant/idprovider/service/registry"
	"github.com/viant/idprovider/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service owns the scoped identifier providers.
type Service struct {
	config     *Config
	logger     logrus.FieldLogger
	fs         afs.Service
	source     idgen.Source
	sourceKind string
	exporter   sdktrace.SpanExporter
	pool       *pool.Service
	registry   *registry.Service
	collector  *metrics.Collector
}

// Pop returns the next identifier of the default scope.
func (s *Service) Pop(ctx context.Context) (int64, error) {
	return s.PopScope(ctx, s.config.DefaultScope)
}

// PopScope returns the next identifier of the named scope, creating the scope
// on first use.
func (s *Service) PopScope(ctx context.Context, scope string) (id int64, err error) {
	ctx, span := tracing.StartSpan(ctx, "idprovider.pop")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{
		"idprovider.scope":  scope,
		"idprovider.source": s.sourceKind,
	})

	p, err := s.registry.Get(ctx, scope)
	if err != nil {
		return 0, err
	}
	id, origin, err := p.NextWithOrigin(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("scope", scope).Error("failed to allocate id")
		return 0, err
	}
	span.WithAttributes(map[string]string{"idprovider.origin": string(origin)}).WithID("idprovider.id", id)
	return id, nil
}

// Provider returns the provider of the default scope.
func (s *Service) Provider(ctx context.Context) (*provider.Provider, error) {
	return s.registry.Get(ctx, s.config.DefaultScope)
}

// Scope returns the provider of the named scope, creating it on first use.
func (s *Service) Scope(ctx context.Context, name string) (*provider.Provider, error) {
	return s.registry.Get(ctx, name)
}

// Registry returns the scope registry.
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// Collector returns a Prometheus collector over all scopes; register it with a
// prometheus.Registerer to expose allocation metrics.
func (s *Service) Collector() *metrics.Collector {
	return s.collector
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// newProvider seeds a scope from configuration.
func (s *Service) newProvider(ctx context.Context, name string) (*provider.Provider, error) {
	seed := s.config.Scope(name)
	var reserved []int64
	if seed.ReservedURL != "" {
		loaded, err := s.pool.Load(ctx, seed.ReservedURL)
		if err != nil {
			return nil, err
		}
		reserved = loaded
	}
	reserved = append(reserved, seed.Reserved...)
	logger := s.logger.WithField("scope", name)
	logger.WithField("reserved", len(reserved)).Debug("created id provider scope")
	return provider.New(reserved,
		provider.WithSource(s.source),
		provider.WithMaxRetries(s.config.MaxRetries),
		provider.WithLogger(logger),
	), nil
}

func (s *Service) ensureBaseSetup() error {
	if s.logger == nil {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		if s.config.LogLevel != "" {
			level, err := logrus.ParseLevel(s.config.LogLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
		}
		s.logger = logger
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.source == nil {
		s.source, _ = idgen.Named(s.config.Source)
		s.sourceKind = s.config.Source
		if s.sourceKind == "" {
			s.sourceKind = "random"
		}
	} else {
		s.sourceKind = "custom"
	}
	s.pool = pool.New(s.fs)
	s.registry = registry.New(s.newProvider)
	s.collector = metrics.NewPrometheusCollector(s.registry, s.logger)
	return nil
}

func (s *Service) initTracing() error {
	cfg := s.config.Tracing
	if !cfg.Enabled {
		return nil
	}
	if s.exporter != nil {
		return tracing.InitWithExporter(cfg.ServiceName, cfg.ServiceVersion, s.exporter)
	}
	return tracing.Init(cfg.ServiceName, cfg.ServiceVersion, cfg.OutputFile)
}

// New creates a service with DefaultConfig.
func New(options ...Option) (*Service, error) {
	return NewFromConfig(DefaultConfig(), options...)
}

// NewFromConfig creates a service from cfg; options are applied on top of it.
// The config is copied, so cfg is not modified.
func NewFromConfig(cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clone := *cfg
	if cfg.Scopes != nil {
		clone.Scopes = make(map[string]*ScopeConfig, len(cfg.Scopes))
		for name, scope := range cfg.Scopes {
			if scope != nil {
				copied := *scope
				copied.Reserved = append([]int64(nil), scope.Reserved...)
				scope = &copied
			}
			clone.Scopes[name] = scope
		}
	}
	ret := &Service{config: &clone}
	for _, option := range options {
		option(ret)
	}
	if err := ret.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := ret.ensureBaseSetup(); err != nil {
		return nil, err
	}
	if err := ret.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	return ret, nil
}
