package projcut

import (
	"github.com/projcut/projcut/service/fixture"
	"github.com/projcut/projcut/service/shell"
	"github.com/projcut/projcut/tracing"
)

// Option customises the harness service.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithRenderer overrides the renderer executable.
func WithRenderer(command string) Option {
	return func(s *Service) {
		s.ensureBaseSetup()
		s.config.Renderer.Command = command
	}
}

// WithTemplate sets the template source location.
func WithTemplate(location string) Option {
	return func(s *Service) {
		s.ensureBaseSetup()
		s.config.Renderer.Template = location
	}
}

// WithOutputDir sets the directory rendered projects are written to.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.ensureBaseSetup()
		s.config.Renderer.OutputDir = dir
	}
}

// WithConfigDir sets the directory per-session renderer config files are
// written to.
func WithConfigDir(dir string) Option {
	return func(s *Service) {
		s.ensureBaseSetup()
		s.config.Renderer.ConfigDir = dir
	}
}

// WithTimeoutMs bounds every external command; 0 waits indefinitely.
func WithTimeoutMs(timeoutMs int) Option {
	return func(s *Service) {
		s.ensureBaseSetup()
		s.config.TimeoutMs = timeoutMs
	}
}

// WithShellService supplies a custom shell boundary.
func WithShellService(service *shell.Service) Option {
	return func(s *Service) { s.shell = service }
}

// WithFixtureOptions forwards options to the fixture manager.
func WithFixtureOptions(options ...fixture.Option) Option {
	return func(s *Service) { s.fixtureOptions = append(s.fixtureOptions, options...) }
}

// WithTracing configures OpenTelemetry tracing for the harness. If outputFile
// is empty the stdout exporter is used; otherwise traces are written to the
// supplied file path. The function is safe to call multiple times – the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}
