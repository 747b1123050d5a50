// Package sms holds the outbound message providers. Providers are
// constructed explicitly in main and injected into the dispatcher; there is
// no package-level provider state.
package sms

import (
	"context"
	"fmt"
)

// Provider sends one message to one recipient. Implementations do not retry;
// the dispatcher tallies each outcome independently.
type Provider interface {
	Name() string
	Send(ctx context.Context, phone, message string) error
}

// Registry maps provider names to instances with a configurable default.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

func NewRegistry(defaultName string) *Registry {
	return &Registry{
		providers:   make(map[string]Provider),
		defaultName: defaultName,
	}
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get resolves a provider by name; an empty name selects the default.
func (r *Registry) Get(name string) (Provider, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("SMS provider '%s' not found or not initialized", name)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
