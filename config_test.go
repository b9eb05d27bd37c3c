package projcut

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	assert.Nil(t, DefaultConfig().Validate())

	var nilConfig *Config
	assert.Nil(t, nilConfig.Validate())

	config := DefaultConfig()
	config.Renderer.Command = ""
	assert.NotNil(t, config.Validate())

	config = DefaultConfig()
	config.Git.Branch = ""
	assert.NotNil(t, config.Validate())

	config = DefaultConfig()
	config.TimeoutMs = -1
	assert.NotNil(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	location := filepath.Join(dir, "harness.yaml")

	document := `renderer:
  command: cookiecutter
  template: ./template
  outputDir: ${env.PROJCUT_OUT}
git:
  branch: main
timeoutMs: 30000
`
	assert.Nil(t, os.WriteFile(location, []byte(document), 0o644))
	os.Setenv("PROJCUT_OUT", "rendered")
	defer os.Unsetenv("PROJCUT_OUT")

	config, err := LoadConfig(ctx, location)
	assert.Nil(t, err)
	assert.Equal(t, "rendered", config.Renderer.OutputDir)
	assert.Equal(t, "./template", config.Renderer.Template)
	assert.Equal(t, 30000, config.TimeoutMs)
	// defaults survive when the document does not mention them
	assert.Equal(t, "make", config.Make.Command)
	assert.Equal(t, "feat: initial commit by harness", config.Git.CommitMessage)

	_, err = LoadConfig(ctx, filepath.Join(dir, "absent.yaml"))
	assert.NotNil(t, err)
}
