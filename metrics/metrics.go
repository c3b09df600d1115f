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

// Package metrics instruments the adapter manager with Prometheus collectors.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels the result of an adapter request.
type Outcome string

const (
	// OutcomeAdapter means a factory produced the adapter.
	OutcomeAdapter Outcome = "adapter"
	// OutcomeIdentity means the adaptable itself satisfied the request.
	OutcomeIdentity Outcome = "identity"
	// OutcomeNone means nothing satisfied the request.
	OutcomeNone Outcome = "none"
	// OutcomeMismatch means only factories that broke their contract answered.
	OutcomeMismatch Outcome = "mismatch"
)

const subsystem = "manager"

// buildBuckets covers table builds from microseconds to tens of milliseconds.
var buildBuckets = prometheus.ExponentialBuckets(0.000005, 4, 10)

// Recorder records manager activity. All methods are safe for concurrent use.
type Recorder struct {
	lookups       *prometheus.CounterVec
	flushes       prometheus.Counter
	requests      *prometheus.CounterVec
	contributions prometheus.Counter
	registrations prometheus.Gauge
	buildSeconds  prometheus.Histogram
}

// New creates a Recorder under namespace and registers it with reg. A nil
// reg leaves the collectors unregistered. Collectors already registered
// under the same names are reused, so several managers may share reg.
func New(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	r := &Recorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lookups_total",
			Help:      "Lookup table requests by cache result.",
		}, []string{"result"}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "flushes_total",
			Help:      "Number of cache flushes.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "adapter_requests_total",
			Help:      "Adapter requests by outcome.",
		}, []string{"outcome"}),
		contributions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_contributions_total",
			Help:      "Lazy providers that contributed factories.",
		}),
		registrations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "registrations",
			Help:      "Current number of factory registrations.",
		}),
		buildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "table_build_seconds",
			Help:      "Duration of lookup table builds in seconds.",
			Buckets:   buildBuckets,
		}),
	}
	if reg == nil {
		return r, nil
	}

	var err error
	if r.lookups, err = register(reg, r.lookups); err != nil {
		return nil, err
	}
	if r.flushes, err = register(reg, r.flushes); err != nil {
		return nil, err
	}
	if r.requests, err = register(reg, r.requests); err != nil {
		return nil, err
	}
	if r.contributions, err = register(reg, r.contributions); err != nil {
		return nil, err
	}
	if r.registrations, err = register(reg, r.registrations); err != nil {
		return nil, err
	}
	if r.buildSeconds, err = register(reg, r.buildSeconds); err != nil {
		return nil, err
	}
	return r, nil
}

// register registers c, or returns the collector already registered in its place.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("adapt(metrics): register: %w", err)
}

// Lookup counts a lookup table request.
func (r *Recorder) Lookup(hit bool) {
	if hit {
		r.lookups.WithLabelValues("hit").Inc()
		return
	}
	r.lookups.WithLabelValues("miss").Inc()
}

// Flush counts a cache flush.
func (r *Recorder) Flush() { r.flushes.Inc() }

// Request counts an adapter request with its outcome.
func (r *Recorder) Request(o Outcome) { r.requests.WithLabelValues(string(o)).Inc() }

// Contribution counts a lazy provider that added factories.
func (r *Recorder) Contribution() { r.contributions.Inc() }

// SetRegistrations sets the current registration count.
func (r *Recorder) SetRegistrations(n int) { r.registrations.Set(float64(n)) }

// ObserveBuild records the duration of a table build.
func (r *Recorder) ObserveBuild(d time.Duration) { r.buildSeconds.Observe(d.Seconds()) }
