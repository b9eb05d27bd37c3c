// Package gitrepo turns a freshly generated directory into a minimal git
// repository with a single commit, so that downstream tooling which assumes a
// repo context (changelog or versioning tools) behaves correctly.
package gitrepo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/projcut/projcut/service/shell"
)

// Service initializes and inspects git repositories through the shell
// boundary.
type Service struct {
	shell         *shell.Service
	command       string
	branch        string
	commitMessage string
	authorName    string
	authorEmail   string
	timeoutMs     int
}

// Option customises the git service.
type Option func(s *Service)

// WithCommand overrides the git executable.
func WithCommand(command string) Option {
	return func(s *Service) { s.command = command }
}

// WithBranch sets the name the default branch is renamed to.
func WithBranch(branch string) Option {
	return func(s *Service) { s.branch = branch }
}

// WithCommitMessage sets the initial commit message.
func WithCommitMessage(message string) Option {
	return func(s *Service) { s.commitMessage = message }
}

// WithAuthor sets the committer identity used for the initial commit, keeping
// setup independent of the host's global git configuration.
func WithAuthor(name, email string) Option {
	return func(s *Service) {
		s.authorName = name
		s.authorEmail = email
	}
}

// WithTimeoutMs bounds each git invocation; 0 waits indefinitely.
func WithTimeoutMs(timeoutMs int) Option {
	return func(s *Service) { s.timeoutMs = timeoutMs }
}

// New creates a git initializer service.
func New(shellService *shell.Service, options ...Option) *Service {
	ret := &Service{
		shell:         shellService,
		command:       "git",
		branch:        "main",
		commitMessage: "feat: initial commit by harness",
		authorName:    "projcut-harness",
		authorEmail:   "harness@localhost",
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Init runs init, renames the default branch, stages all files and commits
// with a fixed message. Any failing step aborts the sequence; this only runs
// once per session during setup so there is no recovery path.
func (s *Service) Init(ctx context.Context, dir string) error {
	commands := []string{
		fmt.Sprintf("%s init", s.command),
		fmt.Sprintf("%s branch -M %s", s.command, s.branch),
		fmt.Sprintf("%s add --all", s.command),
		fmt.Sprintf("%s -c user.name=%q -c user.email=%q commit -m %q",
			s.command, s.authorName, s.authorEmail, s.commitMessage),
	}
	output := &shell.RunOutput{}
	if err := s.shell.Run(ctx, &shell.RunInput{Workdir: dir, Commands: commands, TimeoutMs: s.timeoutMs}, output); err != nil {
		return err
	}
	if failed := output.Failed(); failed != nil {
		return fmt.Errorf("git setup failed: command %q exited with status %v in %q: %v",
			failed.Input, failed.Status, dir, strings.TrimSpace(failed.Stderr))
	}
	return nil
}

// CurrentBranch returns the branch HEAD points at.
func (s *Service) CurrentBranch(ctx context.Context, dir string) (string, error) {
	result, err := s.shell.RunCommand(ctx, dir, fmt.Sprintf("%s rev-parse --abbrev-ref HEAD", s.command), s.timeoutMs)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Output), nil
}

// CommitCount returns the number of commits reachable from HEAD.
func (s *Service) CommitCount(ctx context.Context, dir string) (int, error) {
	result, err := s.shell.RunCommand(ctx, dir, fmt.Sprintf("%s rev-list --count HEAD", s.command), s.timeoutMs)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(result.Output))
}
