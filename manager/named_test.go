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

package manager_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/config"
	"dirpx.dev/adapt/factory"
	"dirpx.dev/adapt/manager"
	"dirpx.dev/adapt/types"
)

func TestGetAdapterByName_ResolvesThroughCatalog(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.RegisterAdapters(echoing("f", "test.X"), tBase))

	got := m.GetAdapterByName(newObj(tSub, "o"), "test.X", false)
	require.NotNil(t, got)
	require.Same(t, tX, got.(*obj).t)
	require.Equal(t, "f", got.(*obj).tag)
}

func TestGetAdapterByName_UnresolvedIsSkipped(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.RegisterAdapters(echoing("f", "test.Missing"), tBase))

	require.True(t, m.HasAdapter(newObj(tBase, "o"), "test.Missing"))
	require.Nil(t, m.GetAdapterByName(newObj(tBase, "o"), "test.Missing", true))
}

func TestGetAdapterByName_NoTypeCheck(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.RegisterAdapters(returning(42, "test.X"), tBase))

	require.Equal(t, 42, m.GetAdapterByName(newObj(tBase, "o"), "test.X", false))
}

func TestGetAdapterByName_TextualFallback(t *testing.T) {
	m := newManager(t)
	o := newObj(tSub, "o")

	require.Same(t, o, m.GetAdapterByName(o, "test.Sub", false))
	// Only the concrete type name matches, not its ancestors.
	require.Nil(t, m.GetAdapterByName(o, "test.Base", false))
	require.Nil(t, m.GetAdapterByName(o, "", false))
	require.Nil(t, m.GetAdapterByName(nil, "test.Sub", false))
	require.Nil(t, m.GetAdapterByName(struct{}{}, "test.Sub", false))
}

func TestGetAdapterByName_ForceActivation(t *testing.T) {
	m := newManager(t)
	l := factory.NewLazy([]string{"test.X"}, func() (apis.Factory, error) {
		return echoing("lazy", "test.X"), nil
	})
	require.NoError(t, m.RegisterAdapters(l, tBase))
	o := newObj(tBase, "o")

	require.Nil(t, m.GetAdapterByName(o, "test.X", false))
	require.False(t, l.Active())

	got := m.LoadAdapter(o, "test.X")
	require.NotNil(t, got)
	require.Equal(t, "lazy", got.(*obj).tag)
	require.True(t, l.Active())

	require.NotNil(t, m.GetAdapterByName(o, "test.X", false))
}

func TestGetAdapterByName_FactoryNamespace(t *testing.T) {
	m := newManager(t)
	own := types.MustInterface("test.X")
	c := &counting{ns: map[string]*types.Type{"test.X": own}}
	require.NoError(t, m.RegisterAdapters(c, tBase))

	got := m.GetAdapterByName(newObj(tBase, "o"), "test.X", false)
	require.NotNil(t, got)
	require.Same(t, own, got.(*obj).t)
	require.NotSame(t, tX, got.(*obj).t)
}

func TestClassResolutionCache(t *testing.T) {
	m := newManager(t)
	c := &counting{ns: map[string]*types.Type{"test.X": tX, "test.Gone": nil}}
	require.NoError(t, m.RegisterAdapters(c, tBase))
	o := newObj(tBase, "o")

	require.NotNil(t, m.GetAdapterByName(o, "test.X", false))
	require.NotNil(t, m.GetAdapterByName(o, "test.X", false))
	require.EqualValues(t, 1, c.calls.Load(), "successful resolutions are cached")

	require.Nil(t, m.GetAdapterByName(o, "test.Gone", false))
	require.Nil(t, m.GetAdapterByName(o, "test.Gone", false))
	require.EqualValues(t, 3, c.calls.Load(), "failed resolutions are retried")

	m.FlushLookup()
	require.NotNil(t, m.GetAdapterByName(o, "test.X", false))
	require.EqualValues(t, 4, c.calls.Load(), "flush drops cached resolutions")
}

func TestClassResolutionCache_Disabled(t *testing.T) {
	m := newManager(t, manager.WithConfig(config.NewConfig(config.WithCacheClassNames(false))))
	c := &counting{ns: map[string]*types.Type{"test.X": tX}}
	require.NoError(t, m.RegisterAdapters(c, tBase))
	o := newObj(tBase, "o")

	require.NotNil(t, m.GetAdapterByName(o, "test.X", false))
	require.NotNil(t, m.GetAdapterByName(o, "test.X", false))
	require.EqualValues(t, 2, c.calls.Load())
}
