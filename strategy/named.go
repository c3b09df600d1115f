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

package strategy

import (
	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// ResolveFunc resolves name to a descriptor on behalf of the active factory
// of b.
type ResolveFunc func(b apis.Binding, active apis.Factory, name string) (*types.Type, bool)

// NewNamed creates an apis.Strategy that asks factories for an adapter named
// name. With force, lazy factories are activated; otherwise inactive ones
// are skipped. Results are not checked against the resolved type.
func NewNamed(name string, force bool, resolve ResolveFunc, skip SkipFunc) apis.Strategy {
	return &namedStrategy{name: name, force: force, resolve: resolve, skip: skip}
}

// namedStrategy resolves the adapter type per factory, since factories may
// see different types under the same name.
type namedStrategy struct {
	name    string
	force   bool
	resolve ResolveFunc
	skip    SkipFunc
}

// Ensure namedStrategy implements apis.Strategy.
var _ apis.Strategy = (*namedStrategy)(nil)

// TryAdapt resolves s.name for b and asks its active factory for an adapter.
func (s *namedStrategy) TryAdapt(b apis.Binding, adaptable any) (any, *apis.Mismatch) {
	f := apis.Activate(b.Factory, s.force)
	if f == nil {
		s.skip.skip(b, ReasonInactive)
		return nil, nil
	}

	t, ok := s.resolve(b, f, s.name)
	if !ok || t == nil {
		s.skip.skip(b, ReasonUnresolved)
		return nil, nil
	}
	return f.Adapt(adaptable, t), nil
}

// ResolveName resolves name in the namespace of active: through its own
// apis.TypeResolver if it implements one, otherwise through fallback.
func ResolveName(active apis.Factory, name string, fallback apis.TypeResolver) (*types.Type, bool) {
	if r, ok := active.(apis.TypeResolver); ok {
		return r.ResolveType(name)
	}
	if fallback == nil {
		return nil, false
	}
	return fallback.ResolveType(name)
}
