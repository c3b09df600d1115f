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

// Package adapt provides a process-wide adapter manager.
//
// An adapter is an alternate view of an object: a "Resource" may be viewed
// as a "Persistable" or a "Labeled" without the Resource type knowing
// either. Factories that produce such views are registered against the
// types they can adapt, and callers ask for a view by type or by name:
//
//	v, err := adapt.GetAdapter(res, persistableType)
//
// # Types
//
// Adaptable and adapter types are described by explicit descriptors (see
// package types): a class has at most one super class and declares
// interfaces; an interface extends other interfaces. A value is typed by
// implementing types.Typed or by binding its Go type in the manager's
// Catalog. Catalogs can also be loaded from YAML (see package loader).
//
// # Resolution
//
// For a value of type T, the factories considered are those registered
// under T, then under each super class of T up to the root, then under the
// interfaces of that chain in breadth-first order (see package hierarchy).
// Within one type, earlier registrations win. The first factory that
// returns an instance of the requested type wins; factories returning
// something else are reported in a *resolver.MismatchError when nobody
// returned a valid adapter. If no factory answers, the value itself is
// returned when it already is an instance of the requested type.
//
// Lazy factories (apis.LazyFactory) report their adapter type names
// without activation. Typed queries, HasAdapter and QueryAdapter never
// activate them; GetAdapterByName with force and LoadAdapter do. Lazy
// providers (apis.LazyProvider) contribute factories just before the next
// query.
//
// # Global API
//
// The package holds one *manager.Manager behind an atomic pointer:
//
//	Default() *manager.Manager
//	SetDefault(m *manager.Manager) *manager.Manager
//	Configure(opts ...manager.Option) error
//	Shutdown()
//
// and convenience wrappers for every manager operation. Readers never
// lock; replacing the manager is serialized. Libraries that need isolation
// construct their own manager with manager.New.
//
// # Caching
//
// Search orders, lookup tables and adapter type name resolutions are
// cached. Any registration change that alters the table replaces the whole
// cache generation at once, so a query sees either the old or the new
// caches. Caches can be disabled through apis.Config without changing any
// result.
package adapt
