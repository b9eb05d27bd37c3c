package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projcut/projcut/service/shell"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
}

func TestService_Init(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	shellService := shell.New()
	defer shellService.Close(ctx)

	dir := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("lint-ci:\n\t@true\n"), 0o644))

	srv := New(shellService)
	assert.Nil(t, srv.Init(ctx, dir))

	// single-branch repository named main with exactly one commit
	branch, err := srv.CurrentBranch(ctx, dir)
	assert.Nil(t, err)
	assert.Equal(t, "main", branch)

	count, err := srv.CommitCount(ctx, dir)
	assert.Nil(t, err)
	assert.Equal(t, 1, count)

	// the commit staged all generated files
	result, err := shellService.RunCommand(ctx, dir, "git status --porcelain", 0)
	assert.Nil(t, err)
	assert.Equal(t, "", strings.TrimSpace(result.Output))
}

func TestService_InitCustomBranch(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	shellService := shell.New()
	defer shellService.Close(ctx)

	dir := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o644))

	srv := New(shellService, WithBranch("trunk"), WithCommitMessage("initial import"))
	assert.Nil(t, srv.Init(ctx, dir))

	branch, err := srv.CurrentBranch(ctx, dir)
	assert.Nil(t, err)
	assert.Equal(t, "trunk", branch)
}

func TestService_InitFailure(t *testing.T) {
	ctx := context.Background()
	shellService := shell.New()
	defer shellService.Close(ctx)

	srv := New(shellService, WithCommand("false"))
	err := srv.Init(ctx, t.TempDir())
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "git setup failed")
}
