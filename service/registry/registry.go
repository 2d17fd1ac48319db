package registry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/viant/idprovider/internal/clock"
	"github.com/viant/idprovider/provider"
	"github.com/viant/idprovider/service/dao"
	"github.com/viant/idprovider/service/dao/criteria"
	"github.com/viant/idprovider/service/dao/store"
)

// Scope binds a provider to a name.
type Scope struct {
	Name      string
	Provider  *provider.Provider
	CreatedAt time.Time
}

// Factory builds the provider for a new scope.
type Factory func(ctx context.Context, name string) (*provider.Provider, error)

var _ dao.Service[string, Scope] = (*store.MemoryStore[string, Scope])(nil)

// Service manages scopes.
type Service struct {
	factory Factory
	scopes  *store.MemoryStore[string, Scope]
}

// Get returns the provider of the named scope, creating the scope on first use.
func (s *Service) Get(ctx context.Context, name string) (*provider.Provider, error) {
	if name == "" {
		return nil, dao.ErrInvalidID
	}
	scope, _, err := s.scopes.LoadOrCreate(ctx, name, func() (*Scope, error) {
		p, err := s.factory(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create scope %v: %w", name, err)
		}
		return &Scope{Name: name, Provider: p, CreatedAt: clock.Now()}, nil
	})
	if err != nil {
		return nil, err
	}
	return scope.Provider, nil
}

// Load returns an existing scope or dao.ErrNotFound.
func (s *Service) Load(ctx context.Context, name string) (*Scope, error) {
	if name == "" {
		return nil, dao.ErrInvalidID
	}
	scope, err := s.scopes.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("scope %v: %w", name, err)
	}
	return scope, nil
}

// Delete discards a scope together with its issued identifiers.
func (s *Service) Delete(ctx context.Context, name string) error {
	if name == "" {
		return dao.ErrInvalidID
	}
	return s.scopes.Delete(ctx, name)
}

// List returns scopes sorted by name; pass dao.NewParameter("Name", ...) to
// narrow the result.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*Scope, error) {
	scopes, err := s.scopes.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i].Name < scopes[j].Name })
	return scopes, nil
}

// New creates a registry; factory is called once per scope name.
func New(factory Factory) *Service {
	if factory == nil {
		factory = func(context.Context, string) (*provider.Provider, error) { return provider.New(nil), nil }
	}
	return &Service{
		factory: factory,
		scopes: store.NewMemoryStore[string, Scope](
			func(s *Scope) string { return s.Name },
			store.WithMatcher[string, Scope](func(s *Scope, parameters []*dao.Parameter) bool {
				return criteria.Match("Name", s.Name, parameters)
			}),
		),
	}
}
