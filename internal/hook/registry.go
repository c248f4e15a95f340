// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hook provides an ordered registry of named providers.
//
// Providers declare ordering constraints against each other by name
// (After/Before); unconstrained providers keep registration order. The
// registry is frozen once at startup; Freeze resolves the constraints into a
// fixed execution order and rejects unknown names and cycles.
package hook

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Registry errors.
var (
	ErrDuplicate = errors.New("provider already registered")
	ErrFrozen    = errors.New("registry is frozen")
	ErrNotFrozen = errors.New("registry is not frozen")
	ErrUnknown   = errors.New("unknown provider dependency")
	ErrCycle     = errors.New("provider dependency cycle")
)

// Option configures a registration.
type Option func(*entry)

// After requires the provider to run after the named providers.
func After(names ...string) Option {
	return func(e *entry) { e.after = append(e.after, names...) }
}

// Before requires the provider to run before the named providers.
func Before(names ...string) Option {
	return func(e *entry) { e.before = append(e.before, names...) }
}

type entry struct {
	name   string
	seq    int
	after  []string
	before []string
}

// Registry holds named providers of type T.
type Registry[T any] struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	entries   map[string]*entry
	providers map[string]T
	seq       int
	order     []string
	frozen    bool
}

// NewRegistry creates an empty registry.
func NewRegistry[T any](logger *slog.Logger) *Registry[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry[T]{
		logger:    logger,
		entries:   make(map[string]*entry),
		providers: make(map[string]T),
	}
}

// Register adds a provider under name.
func (r *Registry[T]) Register(name string, p T, opts ...Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("registering %q: %w", name, ErrFrozen)
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}

	e := &entry{name: name, seq: r.seq}
	for _, opt := range opts {
		opt(e)
	}
	r.seq++
	r.entries[name] = e
	r.providers[name] = p

	r.logger.Debug("provider registered",
		"name", name,
		"after", e.after,
		"before", e.before,
	)
	return nil
}

// Freeze resolves the execution order. It is safe to call more than once.
func (r *Registry[T]) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil
	}

	order, err := r.resolve()
	if err != nil {
		return err
	}
	r.order = order
	r.frozen = true
	r.logger.Debug("provider order resolved", "order", strings.Join(order, ","))
	return nil
}

// resolve runs Kahn's algorithm; among ready nodes it picks the earliest
// registration.
func (r *Registry[T]) resolve() ([]string, error) {
	indegree := make(map[string]int, len(r.entries))
	edges := make(map[string][]string, len(r.entries))
	for name := range r.entries {
		indegree[name] = 0
	}

	addEdge := func(from, to string) {
		edges[from] = append(edges[from], to)
		indegree[to]++
	}

	for name, e := range r.entries {
		for _, dep := range e.after {
			if _, ok := r.entries[dep]; !ok {
				return nil, fmt.Errorf("%q runs after %q: %w", name, dep, ErrUnknown)
			}
			addEdge(dep, name)
		}
		for _, dep := range e.before {
			if _, ok := r.entries[dep]; !ok {
				return nil, fmt.Errorf("%q runs before %q: %w", name, dep, ErrUnknown)
			}
			addEdge(name, dep)
		}
	}

	var ready []*entry
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, r.entries[name])
		}
	}

	order := make([]string, 0, len(r.entries))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i].seq < ready[j].seq })
		next := ready[0]
		ready = ready[1:]
		order = append(order, next.name)

		for _, to := range edges[next.name] {
			indegree[to]--
			if indegree[to] == 0 {
				ready = append(ready, r.entries[to])
			}
		}
	}

	if len(order) != len(r.entries) {
		var stuck []string
		for name, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(stuck, ", "))
	}
	return order, nil
}

// Ordered returns the providers in execution order.
func (r *Registry[T]) Ordered() ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.frozen {
		return nil, ErrNotFrozen
	}
	out := make([]T, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out, nil
}

// Names returns provider names in execution order once frozen,
// otherwise in registration order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.frozen {
		return append([]string(nil), r.order...)
	}
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r.entries[names[i]].seq < r.entries[names[j]].seq
	})
	return names
}
