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
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/adapt/apis"
)

// lazyQueue holds lazy providers waiting to contribute factories.
type lazyQueue struct {
	// mu guards items.
	mu    sync.Mutex
	items []apis.LazyProvider
	// pending counts providers queued or still contributing. Queries skip
	// draining while it is zero.
	pending atomic.Int64
	// drainMu is held for a whole drain so that no query builds a table
	// while a provider is contributing.
	drainMu sync.Mutex
}

func (q *lazyQueue) push(p apis.LazyProvider) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, p)
	q.pending.Add(1)
}

func (q *lazyQueue) pop() (apis.LazyProvider, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return p, true
}

// remove drops every queued instance of p.
func (q *lazyQueue) remove(p apis.LazyProvider) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, it := range q.items {
		if it != p {
			kept = append(kept, it)
		}
	}
	n := len(q.items) - len(kept)
	clear(q.items[len(kept):])
	q.items = kept
	q.pending.Add(-int64(n))
	return n > 0
}

func (q *lazyQueue) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending.Add(-int64(len(q.items)))
	q.items = nil
}

// RegisterLazyProvider queues p. It contributes before the next query
// consults the caches.
func (m *Manager) RegisterLazyProvider(p apis.LazyProvider) error {
	if p == nil {
		return ErrNilProvider
	}
	if !reflect.TypeOf(p).Comparable() {
		return ErrIncomparableProvider
	}
	m.lazy.push(p)
	m.log.V(1).Info("queued lazy provider", "provider", reflect.TypeOf(p).String())
	return nil
}

// UnregisterLazyProvider removes p from the queue if it has not contributed yet.
func (m *Manager) UnregisterLazyProvider(p apis.LazyProvider) bool {
	if p == nil || !reflect.TypeOf(p).Comparable() {
		return false
	}
	return m.lazy.remove(p)
}

// drain lets every queued provider contribute, flushing after each one that
// added factories. Providers must not query m from Contribute.
func (m *Manager) drain() {
	if m.lazy.pending.Load() == 0 {
		return
	}
	m.lazy.drainMu.Lock()
	defer m.lazy.drainMu.Unlock()

	for {
		p, ok := m.lazy.pop()
		if !ok {
			return
		}
		m.contribute(p)
	}
}

// contribute runs one provider. pending drops even if Contribute panics.
func (m *Manager) contribute(p apis.LazyProvider) {
	defer m.lazy.pending.Add(-1)
	if p.Contribute(m) {
		m.rec.Contribution()
		m.flush("lazy provider")
	}
}
