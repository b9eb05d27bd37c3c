// Command projcut generates project instances from a cookiecutter-style
// template and checks that a freshly generated project's build targets work.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/projcut/projcut"
	"github.com/projcut/projcut/internal/idgen"
	"github.com/projcut/projcut/service/maketool"
	"github.com/projcut/projcut/service/template"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}
	switch args[0] {
	case "generate":
		return runGenerate(args[1:])
	case "check":
		return runCheck(args[1:])
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: projcut <command> [flags]

Commands:
  generate   render a project instance and initialize git in it
  check      full round-trip: generate, git init, run lint/install/test
             targets, then tear everything down

Flags (both commands):
  -config file      YAML harness configuration (optional)
  -template dir     template source location
  -renderer cmd     renderer executable (default cookiecutter)
  -out dir          output directory for rendered projects (default sample)
  -config-dir dir   directory for per-session renderer config files
  -set key=value    template variable override; repeatable
  -trace file       write OpenTelemetry traces to file
`)
}

// kvFlags collects repeatable key=value flags.
type kvFlags map[string]string

func (f kvFlags) String() string { return fmt.Sprintf("%v", map[string]string(f)) }

func (f kvFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	f[key] = val
	return nil
}

type cliOptions struct {
	service   *projcut.Service
	overrides template.Values
}

func newService(name string, args []string) (*cliOptions, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	configFile := flags.String("config", "", "YAML harness configuration")
	templateDir := flags.String("template", "", "template source location")
	renderer := flags.String("renderer", "", "renderer executable")
	outputDir := flags.String("out", "", "output directory for rendered projects")
	configDir := flags.String("config-dir", "", "directory for renderer config files")
	traceFile := flags.String("trace", "", "write OpenTelemetry traces to file")
	overrides := kvFlags{}
	flags.Var(overrides, "set", "template variable override key=value; repeatable")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	ctx := context.Background()
	config := projcut.DefaultConfig()
	if *configFile != "" {
		loaded, err := projcut.LoadConfig(ctx, *configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if *templateDir != "" {
		config.Renderer.Template = *templateDir
	}
	if *renderer != "" {
		config.Renderer.Command = *renderer
	}
	if *outputDir != "" {
		config.Renderer.OutputDir = *outputDir
	}
	if *configDir != "" {
		config.Renderer.ConfigDir = *configDir
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := []projcut.Option{projcut.WithConfig(config)}
	if *traceFile != "" {
		options = append(options, projcut.WithTracing("projcut", "1.0", *traceFile))
	}
	return &cliOptions{
		service:   projcut.New(options...),
		overrides: template.Values(overrides),
	}, nil
}

func runGenerate(args []string) int {
	opts, err := newService("generate", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	ctx := context.Background()
	defer opts.service.Close(ctx)

	output := &template.GenerateOutput{}
	input := &template.GenerateInput{SessionID: idgen.SessionID(), Overrides: opts.overrides}
	if err := opts.service.Generator().Generate(ctx, input, output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := opts.service.Git().Init(ctx, output.Dir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(output.Dir)
	return 0
}

func runCheck(args []string) int {
	opts, err := newService("check", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	ctx := context.Background()
	defer opts.service.Close(ctx)

	fx, err := opts.service.Fixtures().Acquire(ctx, opts.overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := fx.Release(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	status := 0
	targets := []maketool.Target{maketool.TargetLintCI, maketool.TargetInstall, maketool.TargetTestWheel}
	for _, target := range targets {
		if _, err := opts.service.Make().RunTarget(ctx, fx.Dir, target); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", target, err)
			status = 1
			continue
		}
		fmt.Printf("ok   %s\n", target)
	}
	return status
}
