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
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/hierarchy"
	"dirpx.dev/adapt/strategy"
	"dirpx.dev/adapt/types"
)

// Span and attribute names of table builds.
const (
	spanTableBuild = "adapt.table.build"
	attrType       = "adapt.type"
	attrNames      = "adapt.names"
)

// generation is one consistent set of caches. It is never cleared; a flush
// replaces it, and builds started against it publish into it only.
type generation struct {
	// orders maps a type id to its search order.
	orders sync.Map // map[uint64][]*types.Type
	// tables maps a type id to its lookup table.
	tables sync.Map // map[uint64]apis.Table
	// classes maps factory id and adapter type name to the resolved type.
	// Only successful resolutions are stored.
	classes *gocache.Cache
	// builds coalesces concurrent table builds of the same type.
	builds singleflight.Group
}

func newGeneration() *generation {
	// No expiration and no janitor: entries live as long as the generation.
	return &generation{classes: gocache.New(gocache.NoExpiration, 0)}
}

// flush swaps in an empty generation.
func (m *Manager) flush(reason string) {
	m.gen.Store(newGeneration())
	m.rec.Flush()
	m.log.V(2).Info("flushed adapter caches", "reason", reason)
}

// order returns the cached search order of t. Callers must not modify it.
func (m *Manager) order(gen *generation, t *types.Type) []*types.Type {
	if !m.cfg.CacheLookups {
		return hierarchy.Order(t)
	}
	if v, ok := gen.orders.Load(t.ID()); ok {
		return v.([]*types.Type)
	}
	v, _ := gen.orders.LoadOrStore(t.ID(), hierarchy.Order(t))
	return v.([]*types.Type)
}

// table returns the lookup table of t from gen, building it on a miss.
func (m *Manager) table(gen *generation, t *types.Type) apis.Table {
	if !m.cfg.CacheLookups {
		m.rec.Lookup(false)
		return m.build(gen, t)
	}
	if v, ok := gen.tables.Load(t.ID()); ok {
		m.rec.Lookup(true)
		return v.(apis.Table)
	}
	m.rec.Lookup(false)

	publish := func() apis.Table {
		v, _ := gen.tables.LoadOrStore(t.ID(), m.build(gen, t))
		return v.(apis.Table)
	}
	if !m.cfg.CoalesceBuilds {
		return publish()
	}
	v, _, _ := gen.builds.Do(strconv.FormatUint(t.ID(), 10), func() (any, error) {
		return publish(), nil
	})
	return v.(apis.Table)
}

// build composes the lookup table of t from the current registrations.
func (m *Manager) build(gen *generation, t *types.Type) apis.Table {
	_, span := m.tracer.Start(context.Background(), spanTableBuild,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	start := time.Now()
	tbl := m.bld.BuildTable(m.order(gen, t), m.reg)
	m.rec.ObserveBuild(time.Since(start))

	span.SetAttributes(
		attribute.String(attrType, t.Name()),
		attribute.Int(attrNames, tbl.Len()),
	)
	m.log.V(2).Info("built lookup table", "adaptableType", t.Name(), "entries", tbl.Len())
	return tbl
}

// resolver returns the name resolution of the named strategy, memoized in
// gen per factory id and name.
func (m *Manager) resolver(gen *generation) strategy.ResolveFunc {
	return func(b apis.Binding, active apis.Factory, name string) (*types.Type, bool) {
		if !m.cfg.CacheClassNames {
			return strategy.ResolveName(active, name, m.cat)
		}
		key := b.ID + "\x00" + name
		if v, ok := gen.classes.Get(key); ok {
			return v.(*types.Type), true
		}
		t, ok := strategy.ResolveName(active, name, m.cat)
		if ok && t != nil {
			gen.classes.SetDefault(key, t)
		}
		return t, ok
	}
}
