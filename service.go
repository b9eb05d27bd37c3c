package projcut

import (
	"context"

	"github.com/viant/afs"

	"github.com/projcut/projcut/service/fixture"
	"github.com/projcut/projcut/service/gitrepo"
	"github.com/projcut/projcut/service/maketool"
	"github.com/projcut/projcut/service/meta"
	"github.com/projcut/projcut/service/shell"
	"github.com/projcut/projcut/service/template"
	"github.com/projcut/projcut/service/verify"
)

// Service is the harness façade wiring the template generator, git
// initializer, build-tool runner and fixture manager together.
type Service struct {
	config         *Config
	shell          *shell.Service
	templates      *template.Service
	git            *gitrepo.Service
	maketool       *maketool.Service
	fixtures       *fixture.Manager
	verifier       *verify.Service
	fixtureOptions []fixture.Option
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.templates = template.New(s.shell,
		s.config.Renderer.Command,
		s.config.Renderer.Template,
		s.config.Renderer.OutputDir,
		s.config.Renderer.ConfigDir,
		s.config.TimeoutMs)
	s.git = gitrepo.New(s.shell,
		gitrepo.WithBranch(s.config.Git.Branch),
		gitrepo.WithCommitMessage(s.config.Git.CommitMessage),
		gitrepo.WithAuthor(s.config.Git.AuthorName, s.config.Git.AuthorEmail),
		gitrepo.WithTimeoutMs(s.config.TimeoutMs))
	s.maketool = maketool.New(s.shell, s.config.Make.Command, s.config.TimeoutMs)

	fixtureOptions := append([]fixture.Option{
		fixture.WithLintTarget(maketool.Target(s.config.Make.LintTarget)),
	}, s.fixtureOptions...)
	s.fixtures = fixture.New(s.templates, s.git, s.maketool, fixtureOptions...)
	s.verifier = verify.New()
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.shell == nil {
		s.shell = shell.New()
	}
}

// Config returns the effective configuration.
func (s *Service) Config() *Config { return s.config }

// Fixtures returns the fixture manager.
func (s *Service) Fixtures() *fixture.Manager { return s.fixtures }

// Generator returns the template generation service.
func (s *Service) Generator() *template.Service { return s.templates }

// Git returns the version control initializer.
func (s *Service) Git() *gitrepo.Service { return s.git }

// Make returns the build-tool service.
func (s *Service) Make() *maketool.Service { return s.maketool }

// Verifier returns the rendered-tree verification service.
func (s *Service) Verifier() *verify.Service { return s.verifier }

// Shell returns the underlying shell boundary.
func (s *Service) Shell() *shell.Service { return s.shell }

// Close releases all shell sessions held by the service.
func (s *Service) Close(ctx context.Context) error {
	return s.shell.Close(ctx)
}

// New creates a harness service.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}

// LoadConfig reads a YAML configuration document (with ${env.KEY} expansion)
// overlaid on DefaultConfig and validates the result.
func LoadConfig(ctx context.Context, location string) (*Config, error) {
	config := DefaultConfig()
	if err := meta.New(afs.New(), "").Load(ctx, location, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
