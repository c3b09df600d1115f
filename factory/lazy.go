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

package factory

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// ErrNilDelegate is reported when a loader returns neither a factory nor an error.
var ErrNilDelegate = errors.New("adapt(factory): loader returned a nil factory")

// Loader activates the factory behind a Lazy.
type Loader func() (apis.Factory, error)

// Lazy is a factory that knows its adapter type names up front and
// activates its backing factory only when loaded with force. Activation runs
// at most once; a failed activation is not retried.
type Lazy struct {
	names  []string
	loader Loader

	once     sync.Once
	delegate atomic.Pointer[apis.Factory]
	err      atomic.Pointer[error]
}

// Ensure Lazy implements apis.LazyFactory.
var _ apis.LazyFactory = (*Lazy)(nil)

// NewLazy returns an inactive factory producing the adapter types named
// names once loader has run.
func NewLazy(names []string, loader Loader) *Lazy {
	return &Lazy{names: append([]string(nil), names...), loader: loader}
}

// AdapterNames returns the adapter type names given to NewLazy. It never activates.
func (l *Lazy) AdapterNames() []string { return append([]string(nil), l.names...) }

// Adapt delegates to the backing factory, or returns nil while inactive.
func (l *Lazy) Adapt(adaptable any, target *types.Type) any {
	f := l.Load(false)
	if f == nil {
		return nil
	}
	return f.Adapt(adaptable, target)
}

// Load returns the backing factory. Without force it returns nil unless
// already active.
func (l *Lazy) Load(force bool) apis.Factory {
	if force {
		l.once.Do(l.activate)
	}
	if p := l.delegate.Load(); p != nil {
		return *p
	}
	return nil
}

func (l *Lazy) activate() {
	if l.loader == nil {
		l.fail(ErrNilDelegate)
		return
	}
	f, err := l.loader()
	if err == nil && f == nil {
		err = ErrNilDelegate
	}
	if err != nil {
		l.fail(err)
		return
	}
	l.delegate.Store(&f)
}

// Active reports whether the backing factory has been activated.
func (l *Lazy) Active() bool { return l.delegate.Load() != nil }

func (l *Lazy) fail(err error) { l.err.Store(&err) }

// Err returns the activation error, if activation was attempted and failed.
func (l *Lazy) Err() error {
	if p := l.err.Load(); p != nil {
		return *p
	}
	return nil
}
