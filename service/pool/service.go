package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the pool location does not exist.
var ErrNotFound = errors.New("pool: not found")

// Document is the mapping form of a pool.
type Document struct {
	IDs []int64 `json:"ids" yaml:"ids"`
}

// Service reads reserved pools.
type Service struct {
	fs afs.Service
}

// Load downloads and decodes the pool stored at URL.
func (s *Service) Load(ctx context.Context, URL string) ([]int64, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check pool %v: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download pool %v: %w", URL, err)
	}
	ids, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pool %v: %w", URL, err)
	}
	return ids, nil
}

// Decode parses a pool document.
func Decode(data []byte) ([]int64, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []int64{}, nil
	}
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var ids []int64
		if err := root.Decode(&ids); err != nil {
			return nil, err
		}
		return ids, nil
	case yaml.MappingNode:
		doc := &Document{}
		if err := root.Decode(doc); err != nil {
			return nil, err
		}
		return doc.IDs, nil
	case yaml.ScalarNode:
		if root.ShortTag() == "!!null" {
			return []int64{}, nil
		}
	}
	return nil, fmt.Errorf("unsupported pool document at line %d: expected list or mapping", root.Line)
}

// New creates a pool service; nil fs selects afs.New().
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
