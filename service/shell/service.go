// Package shell provides a typed boundary around local shell command
// execution: a command string goes in, a structured result (exit status,
// captured output, working directory, duration) comes out. Every external
// tool the harness touches – template renderer, git, make – is invoked
// through this package.
package shell

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

// Service executes commands through reusable local shell sessions.
type Service struct {
	sessions map[string]*sessionInfo
	mux      sync.Mutex
}

type sessionInfo struct {
	service *gosh.Service
	workdir string
	mux     sync.Mutex
}

// New creates a new Service instance
func New() *Service {
	return &Service{
		sessions: make(map[string]*sessionInfo),
	}
}

// Run executes the input's commands sequentially in the input's working
// directory. Commands after the first failing one are skipped unless
// AbortOnError is explicitly false. A non-zero status is not an error at this
// level; callers decide via RunOutput whether a failure is fatal.
func (s *Service) Run(ctx context.Context, input *RunInput, output *RunOutput) error {
	session, err := s.getSession(ctx, input.Workdir, input.Env)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	// the whole cd + batch sequence owns the shell: concurrent batches on the
	// same session must never interleave
	session.mux.Lock()
	defer session.mux.Unlock()

	workdir := session.workdir
	if workdir != "" {
		if _, _, err := session.service.Run(ctx, fmt.Sprintf("cd %q", workdir)); err != nil {
			return fmt.Errorf("failed to change directory to %v: %w", workdir, err)
		}
	}

	abortOnError := true
	if input.AbortOnError != nil {
		abortOnError = *input.AbortOnError
	}

	commands := make([]*Command, 0, len(input.Commands))
	var combinedStdout, combinedStderr strings.Builder
	var lastStatus int

	for _, cmd := range input.Commands {
		command := s.executeCommand(ctx, session, cmd, workdir, time.Duration(input.TimeoutMs)*time.Millisecond)
		commands = append(commands, command)

		if command.Output != "" {
			combinedStdout.WriteString(command.Output)
			combinedStdout.WriteString("\n")
		}
		if command.Stderr != "" {
			combinedStderr.WriteString(command.Stderr)
			combinedStderr.WriteString("\n")
		}
		lastStatus = command.Status

		if abortOnError && command.Status != 0 {
			break
		}
	}

	output.Commands = commands
	output.Stdout = strings.TrimSpace(combinedStdout.String())
	output.Stderr = strings.TrimSpace(combinedStderr.String())
	output.Status = lastStatus
	return nil
}

// RunCommand executes a single command and returns an error when it finishes
// with a non-zero status. The error carries the command and working directory
// as the only diagnostic context.
func (s *Service) RunCommand(ctx context.Context, workdir, command string, timeoutMs int) (*Command, error) {
	output := &RunOutput{}
	input := &RunInput{Workdir: workdir, Commands: []string{command}, TimeoutMs: timeoutMs}
	if err := s.Run(ctx, input, output); err != nil {
		return nil, err
	}
	result := output.Commands[0]
	if result.Status != 0 {
		return result, fmt.Errorf("command %q failed with status %v in %q: %v", command, result.Status, workdir, strings.TrimSpace(result.Stderr))
	}
	return result, nil
}

// executeCommand runs a single command and captures its result
func (s *Service) executeCommand(ctx context.Context, session *sessionInfo, command, workdir string, timeout time.Duration) *Command {
	var options []runner.Option
	if timeout > 0 {
		options = append(options, runner.WithTimeout(int(timeout.Milliseconds())))
	}

	started := time.Now()
	stdout, status, err := session.service.Run(ctx, command, options...)
	elapsed := time.Since(started)

	result := &Command{Input: command, Workdir: workdir, Status: status, Duration: elapsed}
	if timeout > 0 && elapsed > timeout && err == nil {
		err = fmt.Errorf("command %v timed out after: %s", command, elapsed)
	}
	if status == 0 && err == nil {
		result.Output = stdout
		return result
	}
	if status == 0 {
		result.Status = -1
	}
	if stdout == "" && err != nil {
		stdout = err.Error()
	}
	result.Stderr = stdout
	return result
}

// getSession retrieves an existing session for the given working directory
// and environment or creates a new one. Keying by workdir keeps concurrent
// test sessions on separate shells, so one session's commands can never run
// inside another session's tree.
func (s *Service) getSession(ctx context.Context, workdir string, env map[string]string) (*sessionInfo, error) {
	sessionID := workdir + "|" + envKey(env)

	s.mux.Lock()
	defer s.mux.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}

	envOptions := []runner.Option{}
	if len(env) > 0 {
		envOptions = append(envOptions, runner.WithEnvironment(env))
	}
	service, err := gosh.New(ctx, local.New(envOptions...))
	if err != nil {
		return nil, err
	}
	session := &sessionInfo{service: service, workdir: workdir}
	if workdir == "" {
		// anchor the bare session to the process working directory so that a
		// command-level cd in one batch cannot drift later batches
		if home, status, err := service.Run(ctx, "pwd"); err == nil && status == 0 {
			session.workdir = strings.TrimSpace(home)
		}
	}
	s.sessions[sessionID] = session
	return session, nil
}

func envKey(env map[string]string) string {
	if len(env) == 0 {
		return "local"
	}
	pairs := make([]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ";")
}

// Close releases all sessions held by this service
func (s *Service) Close(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	var errs []string
	for id, session := range s.sessions {
		if err := session.service.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("failed to close session %s: %v", id, err))
		}
	}
	s.sessions = make(map[string]*sessionInfo)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sessions: %s", strings.Join(errs, "; "))
	}
	return nil
}
