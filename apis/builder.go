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

import (
	"dirpx.dev/adapt/types"
)

// Table is an immutable lookup table of one concrete type: adapter type
// name to the factories that may produce it, in preference order.
type Table interface {
	// Get returns the bindings for adapterName. The slice MUST NOT be modified.
	Get(adapterName string) []Binding
	// Names returns the adapter type names present, sorted.
	Names() []string
	// Len returns the number of adapter type names.
	Len() int
}

// Builder composes the lookup Table of a type from its search order and
// the registrations of each type in it.
type Builder interface {
	BuildTable(order []*types.Type, reg Registry) Table
}
