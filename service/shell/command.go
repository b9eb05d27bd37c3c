package shell

import "time"

// Command represents the result of executing a single command
type Command struct {
	Input    string        `json:"input,omitempty"`    // The command that was executed
	Output   string        `json:"output,omitempty"`   // Standard output from the command
	Stderr   string        `json:"stderr,omitempty"`   // Standard error from the command
	Status   int           `json:"status,omitempty"`   // Exit code of the command
	Workdir  string        `json:"workdir,omitempty"`  // Directory the command ran in
	Duration time.Duration `json:"duration,omitempty"` // Wall-clock execution time
}

// RunInput represents a batch of commands to execute on the local system
type RunInput struct {
	Workdir      string            `json:"workdir,omitempty" yaml:"workdir,omitempty"`           //directory where commands run
	Env          map[string]string `json:"env,omitempty" yaml:"env,omitempty"`                   //environment variables set before commands run
	Commands     []string          `json:"commands,omitempty" yaml:"commands,omitempty"`         //commands to run sequentially
	TimeoutMs    int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`       //max wait per command; 0 waits indefinitely
	AbortOnError *bool             `json:"abortOnError,omitempty" yaml:"abortOnError,omitempty"` //stop the batch at the first non-zero status (default true)
}

// RunOutput represents the results of executing a batch of commands
type RunOutput struct {
	Commands []*Command `json:"commands,omitempty"` // Results of individual commands
	Stdout   string     `json:"stdout,omitempty"`   // Combined standard output from all commands
	Stderr   string     `json:"stderr,omitempty"`   // Combined standard error from all commands
	Status   int        `json:"status,omitempty"`   // Exit code of the last command executed
}

// Failed returns the first command in the batch that finished with a non-zero
// status, or nil when every command succeeded.
func (o *RunOutput) Failed() *Command {
	for _, cmd := range o.Commands {
		if cmd.Status != 0 {
			return cmd
		}
	}
	return nil
}
