// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package templates

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry resolves selectors to layouts. Built-ins are always available;
// custom layouts are added with Register. A Registry is safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]string
}

// NewRegistry returns a registry without custom layouts.
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]string)}
}

// Register stores html under name, replacing any previous layout of that
// name. Names are case-sensitive.
func (r *Registry) Register(name, html string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("template name must not be empty")
	}
	if !strings.Contains(html, Placeholder) {
		return fmt.Errorf("template %q: %w", name, ErrMissingPlaceholder)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[name] = html
	return nil
}

// Unregister removes a custom layout. It reports whether one was removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.custom[name]; !ok {
		return false
	}
	delete(r.custom, name)
	return true
}

// Names returns the custom layout names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.custom))
	for name := range r.custom {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the custom layout registered under name.
func (r *Registry) Get(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	html, ok := r.custom[name]
	if !ok {
		return "", &NotFoundError{Name: name, Available: r.namesLocked()}
	}
	return html, nil
}

// Resolve returns the layout sel refers to. Names are matched
// case-insensitively against the built-in aliases first and then,
// case-sensitively, against the custom layouts. The zero Selector is an
// error; callers that want Plain for "nothing selected" check IsZero.
func (r *Registry) Resolve(sel Selector) (string, error) {
	if b, ok := sel.BuiltIn(); ok {
		return b.HTML(), nil
	}
	name, ok := sel.Name()
	if !ok {
		return "", ErrNoSelector
	}
	if b, ok := ParseBuiltIn(name); ok {
		return b.HTML(), nil
	}
	return r.Get(name)
}
