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

// Package builder composes lookup tables from a search order and a registry.
package builder

import (
	"sort"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildTable walks order and files every binding registered under each type
// of the order under every adapter name the factory reports. The bindings of
// a name keep search-order first, registration order second.
func (b *builder) BuildTable(order []*types.Type, reg apis.Registry) apis.Table {
	m := make(map[string][]apis.Binding)
	if reg != nil {
		for _, t := range order {
			for _, bnd := range reg.Lookup(t.Name()) {
				for _, name := range bnd.Factory.AdapterNames() {
					m[name] = append(m[name], bnd)
				}
			}
		}
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return &table{m: m, names: names}
}

// table is the immutable apis.Table produced by BuildTable.
type table struct {
	m     map[string][]apis.Binding
	names []string
}

func (t *table) Get(adapterName string) []apis.Binding { return t.m[adapterName] }

func (t *table) Names() []string { return append([]string(nil), t.names...) }

func (t *table) Len() int { return len(t.names) }
