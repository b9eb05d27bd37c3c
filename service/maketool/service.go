// Package maketool runs named build-tool targets against a generated project
// directory. Each target is an opaque external contract observed only through
// its exit code.
package maketool

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/projcut/projcut/service/shell"
)

// Target names a build-tool target.
type Target string

// Targets exercised by the functional harness.
const (
	TargetLintCI    Target = "lint-ci"
	TargetInstall   Target = "install"
	TargetTestWheel Target = "test-wheel-locally"
)

// Service invokes build-tool targets through the shell boundary.
type Service struct {
	shell     *shell.Service
	command   string
	timeoutMs int
}

// New creates a build-tool service; command is the build tool executable
// (e.g. "make").
func New(shellService *shell.Service, command string, timeoutMs int) *Service {
	return &Service{shell: shellService, command: command, timeoutMs: timeoutMs}
}

// RunTarget runs a single target in dir. A non-zero exit is returned as an
// error carrying the command and working directory; the structured result is
// returned either way for callers that tolerate failure.
func (s *Service) RunTarget(ctx context.Context, dir string, target Target) (*shell.Command, error) {
	return s.shell.RunCommand(ctx, dir, fmt.Sprintf("%s %s", s.command, target), s.timeoutMs)
}

// Available reports whether the build tool can be found on PATH. Absence
// otherwise surfaces only as a subprocess-launch failure.
func (s *Service) Available() bool {
	_, err := exec.LookPath(s.command)
	return err == nil
}
