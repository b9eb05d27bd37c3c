// Package template invokes an external cookiecutter-style renderer to
// materialize a project instance on disk from a template, one instance per
// test session.
package template

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/projcut/projcut/service/shell"
)

// Service generates project instances through an external template renderer.
type Service struct {
	fs        afs.Service
	shell     *shell.Service
	renderer  string
	template  string
	outputDir string
	configDir string
	timeoutMs int
}

// New creates a template generation service. The renderer is the external
// command (e.g. "cookiecutter"), template is the template source location,
// outputDir receives rendered projects and configDir receives per-session
// renderer config files.
func New(shellService *shell.Service, renderer, template, outputDir, configDir string, timeoutMs int) *Service {
	return &Service{
		fs:        afs.New(),
		shell:     shellService,
		renderer:  renderer,
		template:  template,
		outputDir: outputDir,
		configDir: configDir,
		timeoutMs: timeoutMs,
	}
}

// GenerateInput defines one generation request
type GenerateInput struct {
	SessionID string `json:"sessionId,omitempty"` //token namespacing this session's artifacts
	Overrides Values `json:"overrides,omitempty"` //template variable overrides merged over defaults
}

// GenerateOutput describes the rendered project instance
type GenerateOutput struct {
	Dir        string         `json:"dir,omitempty"`        //rendered project directory
	RepoName   string         `json:"repoName,omitempty"`   //value of the repo_name template variable
	ConfigPath string         `json:"configPath,omitempty"` //per-session renderer config file
	Command    *shell.Command `json:"command,omitempty"`    //renderer invocation result
}

// rendererConfig is the JSON document consumed by the renderer's
// --config-file flag.
type rendererConfig struct {
	DefaultContext Values `json:"default_context"`
}

// Generate renders one project instance. Generation is all-or-nothing: a
// non-zero renderer exit aborts with an error, no retry and no partial
// result.
func (s *Service) Generate(ctx context.Context, input *GenerateInput, output *GenerateOutput) error {
	if input.SessionID == "" {
		return fmt.Errorf("sessionId is required")
	}
	values := Values{}.Merge(input.Overrides)
	if values.RepoName() == "" {
		values[RepoNameKey] = "test-repo-" + input.SessionID
	}

	configPath, err := s.writeConfig(ctx, input.SessionID, values)
	if err != nil {
		return err
	}
	output.ConfigPath = configPath
	output.RepoName = values.RepoName()

	if err := s.ensureDir(ctx, s.outputDir); err != nil {
		return err
	}

	command := fmt.Sprintf("%s %q --output-dir %q --no-input --config-file %q --verbose",
		s.renderer, s.template, s.outputDir, configPath)
	result, err := s.shell.RunCommand(ctx, "", command, s.timeoutMs)
	output.Command = result
	if err != nil {
		return fmt.Errorf("template generation failed: %w", err)
	}

	output.Dir = filepath.Join(s.outputDir, values.RepoName())
	exists, err := s.fs.Exists(ctx, output.Dir)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("renderer reported success but %v does not exist", output.Dir)
	}
	return nil
}

// writeConfig persists the per-session renderer configuration file and
// returns its path.
func (s *Service) writeConfig(ctx context.Context, sessionID string, values Values) (string, error) {
	if err := s.ensureDir(ctx, s.configDir); err != nil {
		return "", err
	}
	data, err := json.Marshal(&rendererConfig{DefaultContext: values})
	if err != nil {
		return "", err
	}
	configPath := filepath.Join(s.configDir, fmt.Sprintf("cookiecutter-%s.json", sessionID))
	if err := s.fs.Upload(ctx, configPath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write renderer config %v: %w", configPath, err)
	}
	return configPath, nil
}

func (s *Service) ensureDir(ctx context.Context, dir string) error {
	exists, err := s.fs.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", dir, err)
	}
	if exists {
		return nil
	}
	if err := s.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create %v: %w", dir, err)
	}
	return nil
}

// OutputDir returns the directory rendered projects are written to.
func (s *Service) OutputDir() string { return s.outputDir }
