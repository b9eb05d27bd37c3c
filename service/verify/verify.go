// Package verify checks rendered project trees: presence of expected
// top-level entries and unified-diff comparison of rendered files against
// golden content.
package verify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/afs"
)

// Service inspects rendered output on disk.
type Service struct {
	fs afs.Service
}

// New creates a verification service.
func New() *Service {
	return &Service{fs: afs.New()}
}

// ExpectEntries asserts that every named entry exists directly under dir and
// returns an error listing the missing ones.
func (s *Service) ExpectEntries(ctx context.Context, dir string, names []string) error {
	var missing []string
	for _, name := range names {
		exists, err := s.fs.Exists(ctx, filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing entries in %v: %s", dir, strings.Join(missing, ", "))
	}
	return nil
}

// DiffStats captures basic statistics about a unified-diff output.
type DiffStats struct {
	Added   int // number of lines starting with '+' (excluding +++)
	Removed int // number of lines starting with '-' (excluding ---)
}

// DiffFile produces a GNU unified diff between the rendered file at path and
// the wanted golden content, along with insertion/deletion statistics. An
// empty diff string means the contents match.
func (s *Service) DiffFile(ctx context.Context, path string, want []byte) (string, DiffStats, error) {
	actual, err := s.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return "", DiffStats{}, fmt.Errorf("failed to read %v: %w", path, err)
	}
	return Diff(want, actual, path, 3)
}

// Diff renders a unified diff between old and new content. If the two inputs
// are identical, an empty diff string is returned.
func Diff(oldContent, newContent []byte, filePath string, contextLines int) (string, DiffStats, error) {
	if contextLines <= 0 {
		contextLines = 3
	}
	if string(oldContent) == string(newContent) {
		return "", DiffStats{}, nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(oldContent)),
		B:        difflib.SplitLines(string(newContent)),
		FromFile: filePath + " (golden)",
		ToFile:   filePath + " (rendered)",
		Context:  contextLines,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", DiffStats{}, err
	}

	var stats DiffStats
	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			stats.Added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			stats.Removed++
		}
	}
	return patch, stats, nil
}
