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

package manager

import (
	"fmt"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/hierarchy"
	"dirpx.dev/adapt/metrics"
	"dirpx.dev/adapt/resolver"
	"dirpx.dev/adapt/strategy"
	"dirpx.dev/adapt/types"
)

// prepare drains pending lazy providers and returns the generation the
// query reads from.
func (m *Manager) prepare() *generation {
	m.drain()
	return m.gen.Load()
}

// GetAdapter returns an adapter of adapterType for adaptable.
//
// Factories are asked in lookup table order and the first result that is an
// instance of adapterType wins. Results of another type are skipped; if no
// factory produced a valid adapter and some produced invalid ones, a
// *resolver.MismatchError naming them is returned. Otherwise adaptable is
// returned if it already is an adapterType, else nil. Lazy factories that
// are not active are not asked.
func (m *Manager) GetAdapter(adaptable any, adapterType *types.Type) (any, error) {
	if adaptable == nil {
		return nil, ErrNilAdaptable
	}
	if adapterType == nil {
		return nil, ErrNilType
	}
	gen := m.prepare()

	t, ok := m.cat.Of(adaptable)
	if !ok {
		return nil, fmt.Errorf("%T: %w", adaptable, types.ErrUntyped)
	}

	orders := func(typ *types.Type) []*types.Type { return m.order(gen, typ) }
	bindings := m.table(gen, t).Get(adapterType.Name())
	s := strategy.NewTyped(adapterType, m.cat, orders, m.skipped(adapterType.Name()))
	adapter, mismatches := resolver.Resolve(bindings, s, adaptable)
	switch {
	case adapter != nil:
		m.rec.Request(metrics.OutcomeAdapter)
		return adapter, nil
	case len(mismatches) > 0:
		err := &resolver.MismatchError{Target: adapterType, Mismatches: mismatches}
		m.rec.Request(metrics.OutcomeMismatch)
		m.log.Error(err, "adapter factories broke their contract",
			"adaptableType", t.Name(),
			"adapterType", adapterType.Name(),
		)
		return nil, err
	case t == adapterType || hierarchy.AssignableIn(orders(t), adapterType):
		m.rec.Request(metrics.OutcomeIdentity)
		return adaptable, nil
	default:
		m.rec.Request(metrics.OutcomeNone)
		return nil, nil
	}
}

// GetAdapterByName returns an adapter named adapterTypeName for adaptable.
//
// The name is resolved per factory, in the factory's own namespace when it
// has one. Factories that cannot resolve it are skipped. With force, lazy
// factories are activated before they are asked; without it inactive ones
// are skipped. If no factory answers and adapterTypeName is the name of
// adaptable's own type, adaptable is returned.
func (m *Manager) GetAdapterByName(adaptable any, adapterTypeName string, force bool) any {
	if adaptable == nil || adapterTypeName == "" {
		return nil
	}
	gen := m.prepare()

	t, ok := m.cat.Of(adaptable)
	if !ok {
		m.log.V(2).Info("adaptable has no type descriptor", "adaptable", fmt.Sprintf("%T", adaptable))
		m.rec.Request(metrics.OutcomeNone)
		return nil
	}

	bindings := m.table(gen, t).Get(adapterTypeName)
	s := strategy.NewNamed(adapterTypeName, force, m.resolver(gen), m.skipped(adapterTypeName))
	if adapter, _ := resolver.Resolve(bindings, s, adaptable); adapter != nil {
		m.rec.Request(metrics.OutcomeAdapter)
		return adapter
	}
	if t.Name() == adapterTypeName {
		m.rec.Request(metrics.OutcomeIdentity)
		return adaptable
	}
	m.rec.Request(metrics.OutcomeNone)
	return nil
}

// LoadAdapter is GetAdapterByName with force.
func (m *Manager) LoadAdapter(adaptable any, adapterTypeName string) any {
	return m.GetAdapterByName(adaptable, adapterTypeName, true)
}

// HasAdapter reports whether any factory is registered for adapterTypeName
// along the search order of adaptable's type. It activates nothing.
func (m *Manager) HasAdapter(adaptable any, adapterTypeName string) bool {
	return len(m.bindings(adaptable, adapterTypeName)) > 0
}

// QueryAdapter reports whether factories for adapterTypeName exist and
// whether any of them is active. It activates nothing.
func (m *Manager) QueryAdapter(adaptable any, adapterTypeName string) apis.Status {
	bindings := m.bindings(adaptable, adapterTypeName)
	if len(bindings) == 0 {
		return apis.None
	}
	for _, b := range bindings {
		if apis.Activate(b.Factory, false) != nil {
			return apis.Loaded
		}
	}
	return apis.NotLoaded
}

func (m *Manager) bindings(adaptable any, adapterTypeName string) []apis.Binding {
	if adaptable == nil {
		return nil
	}
	gen := m.prepare()
	t, ok := m.cat.Of(adaptable)
	if !ok {
		return nil
	}
	return m.table(gen, t).Get(adapterTypeName)
}

// ComputeAdapterTypes returns the sorted adapter type names that factories
// registered along the search order of t can produce.
func (m *Manager) ComputeAdapterTypes(t *types.Type) []string {
	if t == nil {
		return nil
	}
	return m.table(m.prepare(), t).Names()
}

// ComputeClassOrder returns the search order of t. The result is owned by
// the caller.
func (m *Manager) ComputeClassOrder(t *types.Type) []*types.Type {
	if t == nil {
		return nil
	}
	return append([]*types.Type(nil), m.order(m.gen.Load(), t)...)
}

// skipped logs factories passed over while looking for adapterTypeName.
func (m *Manager) skipped(adapterTypeName string) strategy.SkipFunc {
	log := m.log.V(2)
	if !log.Enabled() {
		return nil
	}
	return func(b apis.Binding, reason string) {
		log.Info("skipped adapter factory", "factory", b.ID, "adapterType", adapterTypeName, "reason", reason)
	}
}
