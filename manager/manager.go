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

// Package manager implements the adapter manager: the registry of adapter
// factories, the caches derived from it and the adapter queries.
//
// A Manager answers "give me an X view of this object" by walking the
// search order of the object's concrete type (see package hierarchy) and
// asking the factories registered under each type in that order. Lookup
// tables, search orders and adapter type name resolutions are cached in a
// generation that is replaced wholesale on every change of the registry, so
// a query observes either the old or the new caches, never a mix.
//
// All operations run on the calling goroutine; there are no background
// workers.
package manager

import (
	"errors"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/builder"
	"dirpx.dev/adapt/config"
	"dirpx.dev/adapt/metrics"
	"dirpx.dev/adapt/registry"
	"dirpx.dev/adapt/types"
)

const tracerName = "dirpx.dev/adapt/manager"

var (
	// ErrNilAdaptable is returned when a query is made for a nil adaptable.
	ErrNilAdaptable = errors.New("adapt(manager): nil adaptable provided")
	// ErrNilType is returned when a nil type descriptor is provided.
	ErrNilType = errors.New("adapt(manager): nil type provided")
	// ErrNilProvider is returned when a nil lazy provider is registered.
	ErrNilProvider = errors.New("adapt(manager): nil lazy provider provided")
	// ErrIncomparableProvider is returned for lazy providers that cannot be
	// unregistered by identity.
	ErrIncomparableProvider = errors.New("adapt(manager): lazy provider type is not comparable")
)

// Manager is the adapter manager. It is safe for concurrent use.
type Manager struct {
	cfg    apis.Config
	log    logr.Logger
	tracer trace.Tracer
	rec    *metrics.Recorder
	cat    *types.Catalog
	reg    apis.Registry
	bld    apis.Builder

	// gen holds the current cache generation; a flush stores a new one.
	gen atomic.Pointer[generation]

	lazy lazyQueue
}

// Ensure Manager can be handed to lazy providers.
var _ apis.Registrar = (*Manager)(nil)

type options struct {
	cfg        apis.Config
	log        logr.Logger
	registerer prometheus.Registerer
	tp         trace.TracerProvider
	cat        *types.Catalog
	reg        apis.Registry
	bld        apis.Builder
}

// Option configures a Manager.
type Option func(*options)

// WithConfig sets the manager configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRegisterer registers the manager metrics with reg. Without it the
// metrics are kept but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithTracerProvider sets the provider of the tracer used for table builds.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// WithCatalog sets the catalog used to type adaptables and adapters and to
// resolve adapter type names.
func WithCatalog(cat *types.Catalog) Option {
	return func(o *options) { o.cat = cat }
}

// WithRegistry replaces the registration table.
func WithRegistry(reg apis.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithBuilder replaces the lookup table builder.
func WithBuilder(bld apis.Builder) Option {
	return func(o *options) { o.bld = bld }
}

// New constructs a Manager.
func New(opts ...Option) (*Manager, error) {
	o := options{
		cfg: config.DefaultConfig(),
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tp == nil {
		o.tp = noop.NewTracerProvider()
	}
	if o.cat == nil {
		o.cat = types.NewCatalog()
	}
	if o.reg == nil {
		o.reg = registry.New()
	}
	if o.bld == nil {
		o.bld = builder.New()
	}
	o.cfg = config.NewConfig(func(c *apis.Config) { *c = o.cfg })

	rec, err := metrics.New(o.registerer, o.cfg.MetricsNamespace)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:    o.cfg,
		log:    o.log.WithName("adapt"),
		tracer: o.tp.Tracer(tracerName),
		rec:    rec,
		cat:    o.cat,
		reg:    o.reg,
		bld:    o.bld,
	}
	m.gen.Store(newGeneration())
	rec.SetRegistrations(o.reg.Count())
	return m, nil
}

// Catalog returns the catalog the manager types values with.
func (m *Manager) Catalog() *types.Catalog { return m.cat }

// Config returns the manager configuration.
func (m *Manager) Config() apis.Config { return m.cfg }

// Entries returns a snapshot of the registrations.
func (m *Manager) Entries() []apis.Entry { return m.reg.Entries() }

// FlushLookup invalidates every cache.
func (m *Manager) FlushLookup() {
	m.flush("explicit")
}

// Shutdown drops every registration, pending lazy provider and cache.
func (m *Manager) Shutdown() {
	m.lazy.reset()
	m.reg.Reset()
	m.rec.SetRegistrations(0)
	m.flush("shutdown")
	m.log.V(1).Info("adapter manager shut down")
}
