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

// Package factory provides ready-made adapter factories.
package factory

import (
	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// AdaptFunc produces an adapter of target for adaptable, or nil.
type AdaptFunc func(adaptable any, target *types.Type) any

// Func is an eager factory backed by a function.
type Func struct {
	names []string
	fn    AdaptFunc
}

// Ensure Func implements apis.Factory.
var _ apis.Factory = (*Func)(nil)

// NewFunc returns a factory producing the adapter types named names with fn.
func NewFunc(names []string, fn AdaptFunc) *Func {
	return &Func{names: append([]string(nil), names...), fn: fn}
}

// AdapterNames returns the adapter type names given to NewFunc.
func (f *Func) AdapterNames() []string { return append([]string(nil), f.names...) }

// Adapt calls the backing function.
func (f *Func) Adapt(adaptable any, target *types.Type) any {
	if f.fn == nil {
		return nil
	}
	return f.fn(adaptable, target)
}
