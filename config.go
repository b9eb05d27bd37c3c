package projcut

import "fmt"

// Config is a serialisable representation of the harness configuration. It
// can be populated from YAML (see LoadConfig) or built in code. The zero
// value is not useful – start from DefaultConfig.
type Config struct {
	Renderer  RendererConfig `json:"renderer" yaml:"renderer"`
	Git       GitConfig      `json:"git" yaml:"git"`
	Make      MakeConfig     `json:"make" yaml:"make"`
	TimeoutMs int            `json:"timeoutMs" yaml:"timeoutMs"` //max wait per external command; 0 waits indefinitely
}

// RendererConfig describes the external template renderer boundary.
type RendererConfig struct {
	Command   string `json:"command" yaml:"command"`     //renderer executable
	Template  string `json:"template" yaml:"template"`   //template source location
	OutputDir string `json:"outputDir" yaml:"outputDir"` //directory receiving rendered projects
	ConfigDir string `json:"configDir" yaml:"configDir"` //directory receiving per-session config files
}

// GitConfig describes the version control initialization step.
type GitConfig struct {
	Branch        string `json:"branch" yaml:"branch"`
	CommitMessage string `json:"commitMessage" yaml:"commitMessage"`
	AuthorName    string `json:"authorName" yaml:"authorName"`
	AuthorEmail   string `json:"authorEmail" yaml:"authorEmail"`
}

// MakeConfig describes the build tool boundary.
type MakeConfig struct {
	Command    string `json:"command" yaml:"command"`
	LintTarget string `json:"lintTarget" yaml:"lintTarget"` //best-effort target run during fixture setup
}

// DefaultConfig returns a Config populated with the constants the harness
// historically used: a cookiecutter renderer writing into "sample", a "main"
// default branch and a fixed initial commit message.
func DefaultConfig() *Config {
	return &Config{
		Renderer: RendererConfig{
			Command:   "cookiecutter",
			Template:  ".",
			OutputDir: "sample",
			ConfigDir: "tests",
		},
		Git: GitConfig{
			Branch:        "main",
			CommitMessage: "feat: initial commit by harness",
			AuthorName:    "projcut-harness",
			AuthorEmail:   "harness@localhost",
		},
		Make: MakeConfig{
			Command:    "make",
			LintTarget: "lint-ci",
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Renderer.Command == "" {
		return fmt.Errorf("renderer.command is required")
	}
	if c.Renderer.Template == "" {
		return fmt.Errorf("renderer.template is required")
	}
	if c.Renderer.OutputDir == "" {
		return fmt.Errorf("renderer.outputDir is required")
	}
	if c.Renderer.ConfigDir == "" {
		return fmt.Errorf("renderer.configDir is required")
	}
	if c.Git.Branch == "" {
		return fmt.Errorf("git.branch is required")
	}
	if c.Make.Command == "" {
		return fmt.Errorf("make.command is required")
	}
	if c.TimeoutMs < 0 {
		return fmt.Errorf("timeoutMs must be >= 0")
	}
	return nil
}
