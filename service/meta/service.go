// Package meta loads harness configuration documents (YAML) with ${env.KEY}
// expansion applied before decoding.
package meta

import (
	"context"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads configuration documents relative to a base URL.
type Service struct {
	fs      afs.Service
	baseURL string
}

// New creates a meta service; baseURL may be empty, in which case URIs are
// used as-is.
func New(fs afs.Service, baseURL string) *Service {
	return &Service{fs: fs, baseURL: baseURL}
}

// Load reads the document at URI (joined with the base URL when relative),
// expands ${env.KEY} expressions and decodes the result into target.
func (s *Service) Load(ctx context.Context, URI string, target interface{}) error {
	location := URI
	if s.baseURL != "" && !strings.Contains(URI, "://") && !strings.HasPrefix(URI, "/") {
		location = url.Join(s.baseURL, URI)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return err
	}
	return yaml.Unmarshal([]byte(ExpandEnv(string(data))), target)
}
