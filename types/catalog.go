/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package types

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	uref "dirpx.dev/adapt/utils/reflect"
)

var (
	// ErrConflictingType indicates an attempt to define a name twice with
	// different descriptors.
	ErrConflictingType = errors.New("adapt(types): conflicting type definition")
	// ErrConflictingBinding indicates an attempt to bind a Go type to two descriptors.
	ErrConflictingBinding = errors.New("adapt(types): conflicting Go type binding")
	// ErrUntyped is returned when a value has no descriptor: it neither
	// implements Typed nor has a bound Go type.
	ErrUntyped = errors.New("adapt(types): value has no type descriptor")
)

// Typed is implemented by values that know their own descriptor.
// It takes precedence over Go type bindings in a Catalog.
type Typed interface {
	// AdaptableType returns the concrete descriptor of the receiver.
	AdaptableType() *Type
}

// Catalog interns descriptors by name and maps Go types onto them.
// A Catalog is safe for concurrent use.
type Catalog struct {
	// mu guards byName and serializes writers of byGo.
	mu sync.RWMutex
	// byName maps a type name to its descriptor.
	byName map[string]*Type
	// byGo maps a normalized reflect.Type to its descriptor.
	byGo sync.Map // map[reflect.Type]*Type
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Type)}
}

// Add interns ts by name. Adding the same descriptor twice is a no-op;
// adding a different descriptor under a known name is an error.
func (c *Catalog) Add(ts ...*Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range ts {
		if err := c.addLocked(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) addLocked(t *Type) error {
	if t == nil {
		return ErrNilType
	}
	if old, ok := c.byName[t.name]; ok {
		if old == t {
			return nil
		}
		return fmt.Errorf("%s: %w", t.name, ErrConflictingType)
	}
	c.byName[t.name] = t
	return nil
}

// Lookup returns the descriptor interned under name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byName[name]
	return t, ok
}

// ResolveType is Lookup under the name used by factories that resolve
// adapter type names in their own namespace.
func (c *Catalog) ResolveType(name string) (*Type, bool) {
	return c.Lookup(name)
}

// Bind associates the nearest named type of goType with t and interns t.
// Binding the same pair twice is idempotent.
func (c *Catalog) Bind(goType reflect.Type, t *Type) error {
	if t == nil {
		return ErrNilType
	}
	base, err := uref.Normalize(goType)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.byGo.Load(base); ok {
		if old.(*Type) == t {
			return nil
		}
		return fmt.Errorf("%s: %w", base, ErrConflictingBinding)
	}
	if err := c.addLocked(t); err != nil {
		return err
	}
	c.byGo.Store(base, t)
	return nil
}

// Of returns the concrete descriptor of v.
func (c *Catalog) Of(v any) (*Type, bool) {
	if v == nil {
		return nil, false
	}
	if tv, ok := v.(Typed); ok {
		if t := tv.AdaptableType(); t != nil {
			return t, true
		}
	}
	base, err := uref.Normalize(reflect.TypeOf(v))
	if err != nil {
		return nil, false
	}
	if t, ok := c.byGo.Load(base); ok {
		return t.(*Type), true
	}
	return nil, false
}

// Types returns every interned descriptor sorted by name.
func (c *Catalog) Types() []*Type {
	c.mu.RLock()
	out := make([]*Type, 0, len(c.byName))
	for _, t := range c.byName {
		out = append(out, t)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Len returns the number of interned descriptors.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}

// Reset drops every descriptor and binding.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = make(map[string]*Type)
	c.byGo.Clear()
}

// DescribeValue returns a printable type for v for diagnostics: the
// descriptor name when c knows v, otherwise the Go type.
func (c *Catalog) DescribeValue(v any) string {
	if t, ok := c.Of(v); ok {
		return t.name
	}
	return fmt.Sprintf("%T", v)
}
