// Package providers holds the upstream stream providers and the ordered registry
// the resolution engine iterates over.
package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Resolver turns a raw event link into a directly playable URL.
type Resolver interface {
	Resolve(ctx context.Context, rawLink string) (string, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, rawLink string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, rawLink string) (string, error) {
	return f(ctx, rawLink)
}

// Provider is one registry entry.
type Provider struct {
	ID          string
	DisplayName string
	Resolver    Resolver
}

// Registry keeps providers in registration order.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	index     map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a provider. An empty displayName falls back to the id.
func (r *Registry) Register(id, displayName string, resolver Resolver) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("providers: empty id in Register")
	}
	if resolver == nil {
		return fmt.Errorf("providers: nil resolver for %s", id)
	}
	if displayName == "" {
		displayName = id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[id]; exists {
		return fmt.Errorf("providers: duplicate registration for %s", id)
	}
	r.index[id] = len(r.providers)
	r.providers = append(r.providers, Provider{ID: id, DisplayName: displayName, Resolver: resolver})
	return nil
}

// Providers returns a copy of the entries in registration order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// IDs returns provider ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.providers))
	for i, p := range r.providers {
		out[i] = p.ID
	}
	return out
}

func (r *Registry) Lookup(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return Provider{}, false
	}
	return r.providers[i], true
}

// DisplayName returns the registered name, or the id itself when unknown.
func (r *Registry) DisplayName(id string) string {
	if p, ok := r.Lookup(id); ok {
		return p.DisplayName
	}
	return id
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}
