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

package adapt

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/manager"
	"dirpx.dev/adapt/types"
)

// init installs the default manager.
func init() {
	m, err := manager.New()
	if err != nil {
		panic(err)
	}
	st.Store(m)
}

// ErrNilManager is the panic value of SetDefault(nil).
var ErrNilManager = errors.New("adapt: nil manager")

var (
	// st holds the process-wide manager.
	st atomic.Pointer[manager.Manager]
	// buildMu serializes replacements of st.
	buildMu sync.Mutex
)

// Default returns the process-wide manager.
func Default() *manager.Manager {
	return st.Load()
}

// SetDefault replaces the process-wide manager with m and returns the
// previous one. The previous manager is left intact; callers that own it
// shut it down.
func SetDefault(m *manager.Manager) *manager.Manager {
	if m == nil {
		panic(ErrNilManager)
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	return st.Swap(m)
}

// Configure replaces the process-wide manager with a new one built from
// opts. The previous manager is shut down.
func Configure(opts ...manager.Option) error {
	m, err := manager.New(opts...)
	if err != nil {
		return err
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Swap(m).Shutdown()
	return nil
}

// Shutdown clears every registration, pending lazy provider and cache of
// the process-wide manager. The manager stays usable.
func Shutdown() {
	st.Load().Shutdown()
}

// As is GetAdapter with the result converted to T. It reports false when
// no adapter was found or the adapter is not a T. A nil m means Default().
func As[T any](m *manager.Manager, adaptable any, adapterType *types.Type) (T, bool, error) {
	var zero T
	if m == nil {
		m = Default()
	}
	v, err := m.GetAdapter(adaptable, adapterType)
	if err != nil || v == nil {
		return zero, false, err
	}
	t, ok := v.(T)
	return t, ok, nil
}

// Catalog returns the catalog of the process-wide manager.
func Catalog() *types.Catalog { return st.Load().Catalog() }

// RegisterFactory registers f under adaptableTypeName without flushing caches.
func RegisterFactory(f apis.Factory, adaptableTypeName string) error {
	return st.Load().RegisterFactory(f, adaptableTypeName)
}

// RegisterAdapters registers f under adaptableType and flushes caches.
func RegisterAdapters(f apis.Factory, adaptableType *types.Type) error {
	return st.Load().RegisterAdapters(f, adaptableType)
}

// UnregisterAdapters removes every registration of f.
func UnregisterAdapters(f apis.Factory) bool {
	return st.Load().UnregisterAdapters(f)
}

// UnregisterAdaptersFor removes the registrations of f under adaptableType.
func UnregisterAdaptersFor(f apis.Factory, adaptableType *types.Type) bool {
	return st.Load().UnregisterAdaptersFor(f, adaptableType)
}

// UnregisterAll clears every registration and cache.
func UnregisterAll() {
	st.Load().UnregisterAll()
}

// RegisterLazyProvider queues p on the process-wide manager.
func RegisterLazyProvider(p apis.LazyProvider) error {
	return st.Load().RegisterLazyProvider(p)
}

// UnregisterLazyProvider removes p from the queue.
func UnregisterLazyProvider(p apis.LazyProvider) bool {
	return st.Load().UnregisterLazyProvider(p)
}

// GetAdapter returns an adapter of adapterType for adaptable.
func GetAdapter(adaptable any, adapterType *types.Type) (any, error) {
	return st.Load().GetAdapter(adaptable, adapterType)
}

// GetAdapterByName returns an adapter named adapterTypeName for adaptable.
func GetAdapterByName(adaptable any, adapterTypeName string, force bool) any {
	return st.Load().GetAdapterByName(adaptable, adapterTypeName, force)
}

// LoadAdapter is GetAdapterByName with force.
func LoadAdapter(adaptable any, adapterTypeName string) any {
	return st.Load().LoadAdapter(adaptable, adapterTypeName)
}

// HasAdapter reports whether adaptable has factories for adapterTypeName.
func HasAdapter(adaptable any, adapterTypeName string) bool {
	return st.Load().HasAdapter(adaptable, adapterTypeName)
}

// QueryAdapter reports the activation status of factories for adapterTypeName.
func QueryAdapter(adaptable any, adapterTypeName string) apis.Status {
	return st.Load().QueryAdapter(adaptable, adapterTypeName)
}

// ComputeAdapterTypes returns the sorted adapter type names available to t.
func ComputeAdapterTypes(t *types.Type) []string {
	return st.Load().ComputeAdapterTypes(t)
}

// ComputeClassOrder returns the search order of t.
func ComputeClassOrder(t *types.Type) []*types.Type {
	return st.Load().ComputeClassOrder(t)
}

// FlushLookup invalidates every cache of the process-wide manager.
func FlushLookup() {
	st.Load().FlushLookup()
}
