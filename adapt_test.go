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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/config"
	"dirpx.dev/adapt/factory"
	"dirpx.dev/adapt/manager"
	"dirpx.dev/adapt/types"
)

var (
	labeled  = types.MustInterface("demo.Labeled")
	resource = types.MustClass("demo.Resource", nil)
	file     = types.MustClass("demo.File", resource)
)

type node struct {
	t    *types.Type
	name string
}

func (n *node) AdaptableType() *types.Type { return n.t }

type label struct{ text string }

func (l *label) AdaptableType() *types.Type { return labeledImpl }

var labeledImpl = types.MustClass("demo.Label", nil, labeled)

// isolate installs a fresh default manager for the duration of the test.
func isolate(tb testing.TB) *manager.Manager {
	tb.Helper()
	m, err := manager.New()
	require.NoError(tb, err)
	prev := SetDefault(m)
	tb.Cleanup(func() { SetDefault(prev) })
	return m
}

func labels() *factory.Func {
	return factory.NewFunc([]string{labeled.Name()}, func(a any, _ *types.Type) any {
		return &label{text: a.(*node).name}
	})
}

func TestDefaultIsUsable(t *testing.T) {
	require.NotNil(t, Default())
}

func TestWrappers(t *testing.T) {
	m := isolate(t)
	f := labels()
	require.NoError(t, RegisterAdapters(f, resource))
	n := &node{t: file, name: "readme"}

	v, err := GetAdapter(n, labeled)
	require.NoError(t, err)
	require.Equal(t, "readme", v.(*label).text)

	require.True(t, HasAdapter(n, labeled.Name()))
	require.Equal(t, apis.Loaded, QueryAdapter(n, labeled.Name()))
	require.Equal(t, []string{labeled.Name()}, ComputeAdapterTypes(file))
	require.Equal(t, []*types.Type{file, resource}, ComputeClassOrder(file))
	require.Same(t, m.Catalog(), Catalog())

	require.NoError(t, Catalog().Add(labeled))
	require.NotNil(t, GetAdapterByName(n, labeled.Name(), false))
	require.NotNil(t, LoadAdapter(n, labeled.Name()))

	require.True(t, UnregisterAdaptersFor(f, resource))
	require.False(t, HasAdapter(n, labeled.Name()))

	require.NoError(t, RegisterFactory(f, file.Name()))
	FlushLookup()
	require.True(t, HasAdapter(n, labeled.Name()))
	require.True(t, UnregisterAdapters(f))

	require.NoError(t, RegisterAdapters(f, file))
	UnregisterAll()
	require.False(t, HasAdapter(n, labeled.Name()))
}

type oneShot struct{ f apis.Factory }

func (p *oneShot) Contribute(r apis.Registrar) bool {
	return r.RegisterFactory(p.f, resource.Name()) == nil
}

func TestLazyProviderWrappers(t *testing.T) {
	isolate(t)
	p := &oneShot{f: labels()}
	require.NoError(t, RegisterLazyProvider(p))
	require.True(t, UnregisterLazyProvider(p))
	require.NoError(t, RegisterLazyProvider(p))

	require.True(t, HasAdapter(&node{t: file}, labeled.Name()))
}

func TestAs(t *testing.T) {
	m := isolate(t)
	require.NoError(t, m.RegisterAdapters(labels(), resource))
	n := &node{t: file, name: "readme"}

	l, ok, err := As[*label](nil, n, labeled)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "readme", l.text)

	_, ok, err = As[*node](m, n, labeled)
	require.NoError(t, err)
	require.False(t, ok)

	self, ok, err := As[*node](m, n, resource)
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, n, self)

	_, ok, err = As[*label](m, nil, labeled)
	require.ErrorIs(t, err, manager.ErrNilAdaptable)
	require.False(t, ok)
}

func TestSetDefault(t *testing.T) {
	m := isolate(t)
	other, err := manager.New()
	require.NoError(t, err)

	require.Same(t, m, SetDefault(other))
	require.Same(t, other, Default())
	require.PanicsWithValue(t, ErrNilManager, func() { SetDefault(nil) })
	require.Same(t, other, Default())
}

func TestConfigure(t *testing.T) {
	old := isolate(t)
	require.NoError(t, old.RegisterAdapters(labels(), resource))

	cfg := config.NewConfig(config.WithCacheLookups(false))
	require.NoError(t, Configure(manager.WithConfig(cfg)))

	require.NotSame(t, old, Default())
	require.False(t, Default().Config().CacheLookups)
	require.Empty(t, old.Entries(), "previous manager is shut down")
}

func TestShutdown(t *testing.T) {
	isolate(t)
	require.NoError(t, RegisterAdapters(labels(), resource))
	Shutdown()
	require.False(t, HasAdapter(&node{t: file}, labeled.Name()))
}

func TestConcurrentDefaultSwap(t *testing.T) {
	isolate(t)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m, err := manager.New()
			if err != nil {
				t.Errorf("new manager: %v", err)
				return
			}
			SetDefault(m)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = HasAdapter(&node{t: file}, labeled.Name())
		}
	}()
	wg.Wait()
}
