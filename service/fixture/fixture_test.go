package fixture

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/projcut/projcut/internal/testutil"
	"github.com/projcut/projcut/service/gitrepo"
	"github.com/projcut/projcut/service/maketool"
	"github.com/projcut/projcut/service/shell"
	"github.com/projcut/projcut/service/template"
)

type testEnv struct {
	shell     *shell.Service
	outputDir string
	configDir string
	manager   *Manager
}

func newTestEnv(t *testing.T, files map[string]string, options ...Option) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
	baseDir := t.TempDir()
	outputDir := filepath.Join(baseDir, "sample")
	configDir := filepath.Join(baseDir, "configs")
	renderer := testutil.StubRenderer(t, baseDir, files)

	shellService := shell.New()
	t.Cleanup(func() { shellService.Close(context.Background()) })

	templates := template.New(shellService, renderer, baseDir, outputDir, configDir, 0)
	git := gitrepo.New(shellService)
	makeService := maketool.New(shellService, "make", 0)
	return &testEnv{
		shell:     shellService,
		outputDir: outputDir,
		configDir: configDir,
		manager:   New(templates, git, makeService, options...),
	}
}

func TestManager_AcquireRelease(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"Makefile":  testutil.ProjectMakefile,
		"README.md": "hello\n",
	}, WithoutSetupLint())
	ctx := context.Background()

	fixture, err := env.manager.Acquire(ctx, nil)
	assert.Nil(t, err)
	assert.Len(t, fixture.SessionID, 6)
	assert.Equal(t, filepath.Join(env.outputDir, "test-repo-"+fixture.SessionID), fixture.Dir)
	assert.False(t, fixture.AcquiredAt.IsZero())

	// generated directory and per-session config file exist
	_, err = os.Stat(filepath.Join(fixture.Dir, "README.md"))
	assert.Nil(t, err)
	_, err = os.Stat(fixture.ConfigPath)
	assert.Nil(t, err)

	// git repository was initialized with one commit
	_, err = os.Stat(filepath.Join(fixture.Dir, ".git"))
	assert.Nil(t, err)

	assert.Nil(t, fixture.Release(ctx))
	assert.True(t, fixture.Released())

	// teardown removed the project tree and the config file
	_, err = os.Stat(fixture.Dir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fixture.ConfigPath)
	assert.True(t, os.IsNotExist(err))

	// release is idempotent
	assert.Nil(t, fixture.Release(ctx))
}

func TestManager_AcquireUniqueSessions(t *testing.T) {
	env := newTestEnv(t, map[string]string{"README.md": "x\n"}, WithoutSetupLint())
	ctx := context.Background()

	first, err := env.manager.Acquire(ctx, nil)
	assert.Nil(t, err)
	defer first.Release(ctx)

	second, err := env.manager.Acquire(ctx, nil)
	assert.Nil(t, err)
	defer second.Release(ctx)

	// two sessions in immediate succession never collide
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.NotEqual(t, first.Dir, second.Dir)

	// releasing one session leaves the other untouched
	assert.Nil(t, first.Release(ctx))
	_, err = os.Stat(second.Dir)
	assert.Nil(t, err)
}

func TestManager_AcquireRecordsLintStatus(t *testing.T) {
	makeAvailable := func(t *testing.T) {
		if _, err := exec.LookPath("make"); err != nil {
			t.Skip("make not available on PATH")
		}
	}

	t.Run("lint passes", func(t *testing.T) {
		makeAvailable(t)
		env := newTestEnv(t, map[string]string{"Makefile": testutil.ProjectMakefile})
		fixture, err := env.manager.Acquire(context.Background(), nil)
		assert.Nil(t, err)
		defer fixture.Release(context.Background())
		assert.Equal(t, 0, fixture.LintStatus)
	})

	t.Run("lint failure is tolerated", func(t *testing.T) {
		makeAvailable(t)
		env := newTestEnv(t, map[string]string{"Makefile": testutil.FailingLintMakefile})
		fixture, err := env.manager.Acquire(context.Background(), nil)
		assert.Nil(t, err)
		defer fixture.Release(context.Background())
		assert.NotEqual(t, 0, fixture.LintStatus)
	})
}

func TestManager_AcquireCleansUpOnGitFailure(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
	baseDir := t.TempDir()
	outputDir := filepath.Join(baseDir, "sample")
	configDir := filepath.Join(baseDir, "configs")
	renderer := testutil.StubRenderer(t, baseDir, map[string]string{"README.md": "x\n"})

	shellService := shell.New()
	defer shellService.Close(context.Background())

	templates := template.New(shellService, renderer, baseDir, outputDir, configDir, 0)
	git := gitrepo.New(shellService, gitrepo.WithCommand("false"))
	makeService := maketool.New(shellService, "make", 0)
	manager := New(templates, git, makeService, WithoutSetupLint())

	_, err := manager.Acquire(context.Background(), nil)
	assert.NotNil(t, err)

	// a failure between generation and yield must not leak the directory
	entries, readErr := os.ReadDir(outputDir)
	assert.Nil(t, readErr)
	assert.Empty(t, entries)
	configs, readErr := os.ReadDir(configDir)
	assert.Nil(t, readErr)
	assert.Empty(t, configs)
}

// failingExistsFS wraps a real afs service but fails every existence check.
type failingExistsFS struct {
	afs.Service
}

func (f failingExistsFS) Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error) {
	return false, errors.New("stat failed")
}

func TestFixture_ReleaseReportsExistsFailure(t *testing.T) {
	fx := &Fixture{
		SessionID:  "abc123",
		Dir:        filepath.Join(t.TempDir(), "test-repo-abc123"),
		ConfigPath: filepath.Join(t.TempDir(), "cookiecutter-abc123.json"),
		fs:         failingExistsFS{afs.New()},
	}

	// a failed existence check must surface as a release error, not silently
	// skip deletion
	err := fx.Release(context.Background())
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed to check")
	assert.Contains(t, err.Error(), fx.Dir)
	assert.Contains(t, err.Error(), fx.ConfigPath)
	assert.True(t, fx.Released())
}

func TestManager_AcquireOverrides(t *testing.T) {
	env := newTestEnv(t, map[string]string{"README.md": "x\n"}, WithoutSetupLint())
	ctx := context.Background()

	fixture, err := env.manager.Acquire(ctx, template.Values{"repo_name": "test-repo-abc123"})
	assert.Nil(t, err)
	defer fixture.Release(ctx)

	assert.True(t, filepath.IsAbs(fixture.Dir))
	assert.Equal(t, filepath.Join(env.outputDir, "test-repo-abc123"), fixture.Dir)
}
