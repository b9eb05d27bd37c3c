// Package testutil holds helpers shared by tests across packages, chiefly a
// stub template renderer so lifecycle tests do not depend on an external
// renderer being installed.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// stubScript imitates a cookiecutter-style renderer: it reads the repo name
// from the --config-file document and copies a prepared skeleton into
// <output-dir>/<repo_name>.
const stubScript = `#!/bin/sh
set -e
out=""
cfg=""
while [ $# -gt 0 ]; do
	case "$1" in
	--output-dir) out="$2"; shift 2 ;;
	--config-file) cfg="$2"; shift 2 ;;
	*) shift ;;
	esac
done
name=$(sed -n 's/.*"repo_name" *: *"\([^"]*\)".*/\1/p' "$cfg")
if [ -z "$out" ] || [ -z "$name" ]; then
	echo "stub renderer: missing output dir or repo name" >&2
	exit 1
fi
mkdir -p "$out/$name"
cp -R %q/. "$out/$name"/
`

// StubRenderer writes a skeleton project (files keyed by relative path) and a
// renderer stub under dir, returning the renderer command to configure.
func StubRenderer(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	skeleton := filepath.Join(dir, "skeleton")
	if err := os.MkdirAll(skeleton, 0o755); err != nil {
		t.Fatalf("failed to create skeleton dir: %v", err)
	}
	for name, content := range files {
		path := filepath.Join(skeleton, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create skeleton dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write skeleton file %v: %v", name, err)
		}
	}
	script := filepath.Join(dir, "renderer.sh")
	if err := os.WriteFile(script, []byte(fmt.Sprintf(stubScript, skeleton)), 0o755); err != nil {
		t.Fatalf("failed to write stub renderer: %v", err)
	}
	return "sh " + script
}

// ProjectMakefile is a minimal Makefile exposing the targets the harness
// exercises.
const ProjectMakefile = `lint-ci:
	@echo lint ok

install:
	@echo install ok

test-wheel-locally:
	@echo test ok
`

// FailingLintMakefile is like ProjectMakefile but its lint target exits 1.
const FailingLintMakefile = `lint-ci:
	@echo lint broken
	@exit 1

install:
	@echo install ok

test-wheel-locally:
	@echo test ok
`
