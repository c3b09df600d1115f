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

package apis

// Registrar is the handle lazy providers use to contribute factories.
type Registrar interface {
	// RegisterFactory appends a registration of f under adaptableTypeName.
	// It does not flush caches; the manager flushes after the provider returns.
	RegisterFactory(f Factory, adaptableTypeName string) error
}

// LazyProvider contributes factories just in time, before the first lookup
// table is built after it was queued.
type LazyProvider interface {
	// Contribute registers factories through r and reports whether it
	// added anything. It is called at most once per queued instance.
	Contribute(r Registrar) bool
}

// Registry is the source-of-truth table of registrations: adaptable type
// name to the ordered factories registered under it.
type Registry interface {
	// Register appends a registration of f under adaptableTypeName.
	// Duplicates are kept.
	Register(f Factory, adaptableTypeName string) error
	// Unregister removes every registration of f and reports whether any existed.
	Unregister(f Factory) bool
	// UnregisterType removes the registrations of f under adaptableTypeName
	// and reports whether any existed.
	UnregisterType(f Factory, adaptableTypeName string) bool
	// Lookup returns the bindings registered under adaptableTypeName in
	// registration order. The slice MUST NOT be modified.
	Lookup(adaptableTypeName string) []Binding
	// ID returns the id assigned to f, if f is registered.
	ID(f Factory) (string, bool)
	// Entries returns a snapshot for diagnostics, sorted by type name.
	Entries() []Entry
	// Count returns the number of registrations.
	Count() int
	// Reset clears all registrations.
	Reset()
}

// Entry is a single registration in a Registry snapshot.
type Entry struct {
	// TypeName is the adaptable type name the factory is registered under.
	TypeName string
	// Binding is the registered factory.
	Binding Binding
}
