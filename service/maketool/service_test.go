package maketool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projcut/projcut/service/shell"
)

const testMakefile = `lint-ci:
	@echo linting

install:
	@echo installing

test-wheel-locally:
	@echo testing

broken:
	@exit 2
`

func TestService_RunTarget(t *testing.T) {
	ctx := context.Background()
	shellService := shell.New()
	defer shellService.Close(ctx)

	srv := New(shellService, "make", 0)
	if !srv.Available() {
		t.Skip("make not available on PATH")
	}

	dir := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte(testMakefile), 0o644))

	result, err := srv.RunTarget(ctx, dir, TargetLintCI)
	assert.Nil(t, err)
	assert.Equal(t, 0, result.Status)
	assert.Contains(t, result.Output, "linting")

	for _, target := range []Target{TargetInstall, TargetTestWheel} {
		result, err = srv.RunTarget(ctx, dir, target)
		assert.Nil(t, err, "target %v", target)
		assert.Equal(t, 0, result.Status)
	}

	result, err = srv.RunTarget(ctx, dir, "broken")
	assert.NotNil(t, err)
	assert.NotEqual(t, 0, result.Status)
	assert.Contains(t, err.Error(), "make broken")
}

func TestService_Available(t *testing.T) {
	shellService := shell.New()
	defer shellService.Close(context.Background())

	assert.False(t, New(shellService, "no-such-build-tool-xyz", 0).Available())
}
