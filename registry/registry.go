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

// Package registry holds the table of factory registrations.
package registry

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/adapt/apis"
)

var (
	// ErrNilFactory is returned when a nil factory is registered.
	ErrNilFactory = errors.New("adapt(registry): nil factory provided")
	// ErrEmptyTypeName is returned when an empty adaptable type name is provided.
	ErrEmptyTypeName = errors.New("adapt(registry): empty adaptable type name provided")
	// ErrIncomparableFactory is returned for factories that cannot be
	// registered by identity.
	ErrIncomparableFactory = errors.New("adapt(registry): factory type is not comparable")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{
		ids:  make(map[apis.Factory]string),
		refs: make(map[apis.Factory]int),
	}
}

// registry is a copy-on-write Registry: readers load immutable slices from
// a sync.Map without locking, writers serialize on mu and replace slices.
type registry struct {
	// mu serializes writers and guards ids, refs and count.
	mu sync.Mutex
	// m maps adaptable type name to its bindings.
	m sync.Map // map[string][]apis.Binding
	// ids holds the id of every registered factory.
	ids map[apis.Factory]string
	// refs counts the registrations of every registered factory.
	refs map[apis.Factory]int
	// count tracks the number of registrations.
	count int
}

// Register appends a registration of f under adaptableTypeName.
func (r *registry) Register(f apis.Factory, adaptableTypeName string) error {
	if isNil(f) {
		return ErrNilFactory
	}
	if adaptableTypeName == "" {
		return ErrEmptyTypeName
	}
	if !reflect.TypeOf(f).Comparable() {
		return ErrIncomparableFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[f]
	if !ok {
		id = uuid.NewString()
		r.ids[f] = id
	}
	r.refs[f]++

	old := r.load(adaptableTypeName)
	next := make([]apis.Binding, len(old), len(old)+1)
	copy(next, old)
	r.m.Store(adaptableTypeName, append(next, apis.Binding{ID: id, Factory: f}))
	r.count++
	return nil
}

// Unregister removes every registration of f.
func (r *registry) Unregister(f apis.Factory) bool {
	if f == nil || !reflect.TypeOf(f).Comparable() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[f]; !ok {
		return false
	}
	removed := false
	r.m.Range(func(key, _ any) bool {
		if r.removeLocked(f, key.(string)) {
			removed = true
		}
		return true
	})
	return removed
}

// UnregisterType removes the registrations of f under adaptableTypeName.
func (r *registry) UnregisterType(f apis.Factory, adaptableTypeName string) bool {
	if f == nil || adaptableTypeName == "" || !reflect.TypeOf(f).Comparable() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[f]; !ok {
		return false
	}
	return r.removeLocked(f, adaptableTypeName)
}

// isNil reports whether f is nil or holds a nil pointer, func, map, chan,
// slice or interface.
func isNil(f apis.Factory) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// removeLocked drops f from the bindings of name. Callers hold mu.
func (r *registry) removeLocked(f apis.Factory, name string) bool {
	old := r.load(name)
	next := make([]apis.Binding, 0, len(old))
	for _, b := range old {
		if b.Factory != f {
			next = append(next, b)
		}
	}
	n := len(old) - len(next)
	if n == 0 {
		return false
	}

	if len(next) == 0 {
		r.m.Delete(name)
	} else {
		r.m.Store(name, next)
	}
	r.count -= n
	if r.refs[f] -= n; r.refs[f] <= 0 {
		delete(r.refs, f)
		delete(r.ids, f)
	}
	return true
}

// Lookup returns the bindings registered under adaptableTypeName.
func (r *registry) Lookup(adaptableTypeName string) []apis.Binding {
	return r.load(adaptableTypeName)
}

func (r *registry) load(name string) []apis.Binding {
	if v, ok := r.m.Load(name); ok {
		return v.([]apis.Binding)
	}
	return nil
}

// ID returns the id assigned to f.
func (r *registry) ID(f apis.Factory) (string, bool) {
	if f == nil || !reflect.TypeOf(f).Comparable() {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.ids[f]
	return id, ok
}

// Entries returns a snapshot sorted by type name, registration order within a name.
func (r *registry) Entries() []apis.Entry {
	var names []string
	r.m.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)

	entries := make([]apis.Entry, 0, len(names))
	for _, name := range names {
		for _, b := range r.load(name) {
			entries = append(entries, apis.Entry{TypeName: name, Binding: b})
		}
	}
	return entries
}

// Count returns the number of registrations.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registrations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.ids = make(map[apis.Factory]string)
	r.refs = make(map[apis.Factory]int)
	r.count = 0
}
