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
	"dirpx.dev/adapt/hierarchy"
	"dirpx.dev/adapt/types"
)

// NewTyped creates an apis.Strategy that asks factories for an adapter of
// target and validates the result against cat. Lazy factories are only
// asked once activated; NewTyped never activates them. order supplies the
// search orders used for the assignability check; nil computes them with
// hierarchy.Order.
func NewTyped(target *types.Type, cat *types.Catalog, order OrderFunc, skip SkipFunc) apis.Strategy {
	if cat == nil {
		cat = types.NewCatalog()
	}
	if order == nil {
		order = hierarchy.Order
	}
	return &typedStrategy{target: target, cat: cat, order: order, skip: skip}
}

// typedStrategy checks every non-nil adapter for assignability to target.
type typedStrategy struct {
	target *types.Type
	cat    *types.Catalog
	order  OrderFunc
	skip   SkipFunc
}

// Ensure typedStrategy implements apis.Strategy.
var _ apis.Strategy = (*typedStrategy)(nil)

// TryAdapt asks the active factory of b for an adapter of s.target.
func (s *typedStrategy) TryAdapt(b apis.Binding, adaptable any) (any, *apis.Mismatch) {
	f := apis.Activate(b.Factory, false)
	if f == nil {
		s.skip.skip(b, ReasonInactive)
		return nil, nil
	}

	adapter := f.Adapt(adaptable, s.target)
	if adapter == nil {
		return nil, nil
	}
	if t, ok := s.cat.Of(adapter); ok && (t == s.target || hierarchy.AssignableIn(s.order(t), s.target)) {
		return adapter, nil
	}
	return nil, &apis.Mismatch{Binding: b, Got: s.cat.DescribeValue(adapter)}
}
