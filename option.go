package idprovider

import (
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service.
type Option func(s *Service)

// WithLogger sets the logger; by default one is built from Config.LogLevel.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFs sets the file system used to read reserved pools.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithSource replaces the configured random source, mostly for tests.
func WithSource(source func() int64) Option {
	return func(s *Service) {
		s.source = source
	}
}

// WithReserved seeds the named scope with additional inline reserved
// identifiers, appended after the configured ones.
func WithReserved(scope string, ids ...int64) Option {
	return func(s *Service) {
		if s.config.Scopes == nil {
			s.config.Scopes = map[string]*ScopeConfig{}
		}
		seed, ok := s.config.Scopes[scope]
		if !ok || seed == nil {
			seed = &ScopeConfig{}
			s.config.Scopes[scope] = seed
		}
		seed.Reserved = append(seed.Reserved, ids...)
	}
}

// WithTracing enables OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty traces go to os.Stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.config.Tracing = TracingConfig{
			Enabled:        true,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}
	}
}

// WithTracingExporter enables tracing with a custom SpanExporter, for example
// OTLP, Jaeger or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.config.Tracing.Enabled = true
		s.config.Tracing.ServiceName = serviceName
		s.config.Tracing.ServiceVersion = serviceVersion
		s.exporter = exporter
	}
}
