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

// Package strategy implements the ways of asking one factory for an adapter:
// by adapter type (Typed) and by adapter type name (Named).
package strategy

import (
	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// Reasons reported to a SkipFunc.
const (
	// ReasonInactive means the factory is lazy and not activated.
	ReasonInactive = "inactive"
	// ReasonUnresolved means the adapter type name did not resolve in the
	// factory's namespace.
	ReasonUnresolved = "unresolved"
)

// SkipFunc observes factories a strategy passed over without asking them.
type SkipFunc func(b apis.Binding, reason string)

func (fn SkipFunc) skip(b apis.Binding, reason string) {
	if fn != nil {
		fn(b, reason)
	}
}

// OrderFunc returns the search order of a type, typically from a cache.
// The result must not be modified.
type OrderFunc func(t *types.Type) []*types.Type
