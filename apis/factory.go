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

// Package apis holds the contracts shared by the adapter engine packages.
package apis

import (
	"dirpx.dev/adapt/types"
)

// Factory produces adapters for the adaptable types it is registered under.
//
// Factories are registered by identity and MUST be comparable; pointer
// receivers are the usual choice. Adapt MUST be safe for concurrent and
// repeated calls.
type Factory interface {
	// AdapterNames returns the names of the adapter types this factory can
	// produce. For a LazyFactory the answer MUST NOT require activation.
	AdapterNames() []string

	// Adapt returns an adapter of target for adaptable, or nil if it cannot.
	// Returning a value that is not an instance of target is a contract
	// violation reported by the manager.
	Adapt(adaptable any, target *types.Type) any
}

// LazyFactory is a Factory whose backing implementation is activated on demand.
type LazyFactory interface {
	Factory

	// Load returns the activated factory. With force false it MUST NOT
	// activate anything and returns nil unless already active; with force
	// true it activates if needed and returns nil only if activation failed.
	Load(force bool) Factory
}

// TypeResolver is optionally implemented by an active factory that resolves
// adapter type names in its own namespace.
type TypeResolver interface {
	// ResolveType maps name to a descriptor, or reports false if the name
	// is not resolvable right now.
	ResolveType(name string) (*types.Type, bool)
}

// Activate dispatches on the factory variant: an eager factory is returned
// as is; a lazy factory is loaded with force.
func Activate(f Factory, force bool) Factory {
	switch v := f.(type) {
	case LazyFactory:
		return v.Load(force)
	default:
		return f
	}
}

// Binding is a registered factory together with the id the registry
// assigned to it.
type Binding struct {
	// ID is stable for as long as the factory stays registered.
	ID string
	// Factory is the registered factory.
	Factory Factory
}
