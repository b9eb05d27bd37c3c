// Package fixture provides a scoped, git-initialized, pre-linted project
// directory for the duration of a test session and guarantees its removal on
// release, regardless of how the consuming tests exit.
package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"

	"github.com/projcut/projcut/internal/clock"
	"github.com/projcut/projcut/internal/idgen"
	"github.com/projcut/projcut/service/gitrepo"
	"github.com/projcut/projcut/service/maketool"
	"github.com/projcut/projcut/service/template"
	"github.com/projcut/projcut/tracing"
)

// Fixture is one session's generated project instance. The directory is
// exclusively owned by the session that created it and must not outlive it.
type Fixture struct {
	SessionID  string
	Dir        string
	ConfigPath string
	AcquiredAt time.Time
	// LintStatus is the exit code of the best-effort lint pass run during
	// setup; it is recorded but never treated as a setup failure.
	LintStatus int

	fs       afs.Service
	released bool
}

// Manager acquires and releases fixtures.
type Manager struct {
	fs         afs.Service
	template   *template.Service
	git        *gitrepo.Service
	maketool   *maketool.Service
	lintTarget maketool.Target
	skipLint   bool
}

// Option customises the fixture manager.
type Option func(m *Manager)

// WithLintTarget overrides the target used for the setup lint pass.
func WithLintTarget(target maketool.Target) Option {
	return func(m *Manager) { m.lintTarget = target }
}

// WithoutSetupLint disables the best-effort lint pass during acquisition.
func WithoutSetupLint() Option {
	return func(m *Manager) { m.skipLint = true }
}

// New creates a fixture manager.
func New(templateService *template.Service, gitService *gitrepo.Service, makeService *maketool.Service, options ...Option) *Manager {
	ret := &Manager{
		fs:         afs.New(),
		template:   templateService,
		git:        gitService,
		maketool:   makeService,
		lintTarget: maketool.TargetLintCI,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Acquire generates a fresh session id, renders the project, initializes git
// in it and runs a best-effort lint pass. Teardown responsibility begins the
// moment the generated directory exists: if any later setup step fails the
// directory and the session config file are removed before the error is
// returned, so a partially initialized tree is never leaked.
func (m *Manager) Acquire(ctx context.Context, overrides template.Values) (*Fixture, error) {
	sessionID := idgen.SessionID()
	ctx, span := tracing.StartSpan(ctx, "fixture.acquire", "")
	span.WithAttributes(map[string]string{"session": sessionID})

	generated := &template.GenerateOutput{}
	genCtx, genSpan := tracing.StartSpan(ctx, "fixture.generate", "")
	err := m.template.Generate(genCtx, &template.GenerateInput{SessionID: sessionID, Overrides: overrides}, generated)
	tracing.EndSpan(genSpan, err)
	if err != nil {
		m.removeConfig(ctx, generated.ConfigPath)
		tracing.EndSpan(span, err)
		return nil, err
	}

	fixture := &Fixture{
		SessionID:  sessionID,
		Dir:        generated.Dir,
		ConfigPath: generated.ConfigPath,
		AcquiredAt: clock.Now(),
		fs:         m.fs,
	}

	gitCtx, gitSpan := tracing.StartSpan(ctx, "fixture.git", "")
	err = m.git.Init(gitCtx, fixture.Dir)
	tracing.EndSpan(gitSpan, err)
	if err != nil {
		_ = fixture.Release(ctx)
		tracing.EndSpan(span, err)
		return nil, err
	}

	if !m.skipLint {
		// Best-effort: the formal lint test case carries the real signal,
		// so the exit code is recorded and otherwise ignored.
		lintCtx, lintSpan := tracing.StartSpan(ctx, "fixture.lint", "")
		result, lintErr := m.maketool.RunTarget(lintCtx, fixture.Dir, m.lintTarget)
		tracing.EndSpan(lintSpan, nil)
		if result != nil {
			fixture.LintStatus = result.Status
		} else if lintErr != nil {
			fixture.LintStatus = -1
		}
	}

	tracing.EndSpan(span, nil)
	return fixture, nil
}

// Release recursively deletes the session's project directory and its
// renderer config file. It is idempotent and only ever touches this
// session's subtree.
func (f *Fixture) Release(ctx context.Context) error {
	if f.released {
		return nil
	}
	f.released = true

	_, span := tracing.StartSpan(ctx, "fixture.release", "")
	var errs []string
	for _, path := range []string{f.Dir, f.ConfigPath} {
		if path == "" {
			continue
		}
		exists, err := f.fs.Exists(ctx, path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("failed to check %s: %v", path, err))
			continue
		}
		if !exists {
			continue
		}
		if err := f.fs.Delete(ctx, path); err != nil {
			errs = append(errs, fmt.Sprintf("failed to remove %s: %v", path, err))
		}
	}
	var err error
	if len(errs) > 0 {
		err = fmt.Errorf("fixture release: %s", strings.Join(errs, "; "))
	}
	tracing.EndSpan(span, err)
	return err
}

// Released reports whether Release already ran.
func (f *Fixture) Released() bool { return f.released }

// removeConfig is best-effort cleanup on a failed acquisition; when the
// existence check itself fails the deletion is still attempted.
func (m *Manager) removeConfig(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if exists, err := m.fs.Exists(ctx, path); err != nil || exists {
		_ = m.fs.Delete(ctx, path)
	}
}
