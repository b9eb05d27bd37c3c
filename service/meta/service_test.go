package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	document := `renderer:
  command: cookiecutter
  outputDir: ${env.PROJCUT_OUTPUT}
git:
  branch: main
`
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "harness.yaml"), []byte(document), 0o644))
	os.Setenv("PROJCUT_OUTPUT", "sample")
	defer os.Unsetenv("PROJCUT_OUTPUT")

	type rendererConfig struct {
		Command   string `yaml:"command"`
		OutputDir string `yaml:"outputDir"`
	}
	type config struct {
		Renderer rendererConfig `yaml:"renderer"`
		Git      struct {
			Branch string `yaml:"branch"`
		} `yaml:"git"`
	}

	srv := New(afs.New(), dir)
	var cfg config
	assert.Nil(t, srv.Load(ctx, "harness.yaml", &cfg))
	assert.Equal(t, "cookiecutter", cfg.Renderer.Command)
	assert.Equal(t, "sample", cfg.Renderer.OutputDir)
	assert.Equal(t, "main", cfg.Git.Branch)

	assert.NotNil(t, srv.Load(ctx, "absent.yaml", &cfg))
}
