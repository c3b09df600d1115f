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
	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// RegisterFactory appends a registration of f under adaptableTypeName
// without flushing caches. Callers registering in bulk flush once with
// FlushLookup afterwards.
func (m *Manager) RegisterFactory(f apis.Factory, adaptableTypeName string) error {
	if err := m.reg.Register(f, adaptableTypeName); err != nil {
		return err
	}
	m.rec.SetRegistrations(m.reg.Count())
	if log := m.log.V(1); log.Enabled() {
		id, _ := m.reg.ID(f)
		log.Info("registered adapter factory",
			"factory", id,
			"adaptableType", adaptableTypeName,
			"adapterTypes", f.AdapterNames(),
		)
	}
	return nil
}

// RegisterAdapters registers f under adaptableType and flushes caches.
func (m *Manager) RegisterAdapters(f apis.Factory, adaptableType *types.Type) error {
	if adaptableType == nil {
		return ErrNilType
	}
	if err := m.RegisterFactory(f, adaptableType.Name()); err != nil {
		return err
	}
	m.flush("register")
	return nil
}

// UnregisterAdapters removes every registration of f. Caches are flushed
// only if something was removed.
func (m *Manager) UnregisterAdapters(f apis.Factory) bool {
	id, _ := m.reg.ID(f)
	if !m.reg.Unregister(f) {
		return false
	}
	m.unregistered(id, "")
	return true
}

// UnregisterAdaptersFor removes the registrations of f under adaptableType.
// Caches are flushed only if something was removed.
func (m *Manager) UnregisterAdaptersFor(f apis.Factory, adaptableType *types.Type) bool {
	if adaptableType == nil {
		return false
	}
	id, _ := m.reg.ID(f)
	if !m.reg.UnregisterType(f, adaptableType.Name()) {
		return false
	}
	m.unregistered(id, adaptableType.Name())
	return true
}

func (m *Manager) unregistered(id, adaptableTypeName string) {
	m.rec.SetRegistrations(m.reg.Count())
	m.log.V(1).Info("unregistered adapter factory", "factory", id, "adaptableType", adaptableTypeName)
	m.flush("unregister")
}

// UnregisterAll clears every registration and cache. Pending lazy providers
// stay queued.
func (m *Manager) UnregisterAll() {
	m.reg.Reset()
	m.rec.SetRegistrations(0)
	m.log.V(1).Info("unregistered all adapter factories")
	m.flush("unregister all")
}
