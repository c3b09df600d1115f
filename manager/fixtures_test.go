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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/factory"
	"dirpx.dev/adapt/manager"
	"dirpx.dev/adapt/types"
)

// A small type graph:
//
//	Base  <- Sub          (classes)
//	XImpl implements X
//	YImpl implements Y
var (
	tX     = types.MustInterface("test.X")
	tY     = types.MustInterface("test.Y")
	tZ     = types.MustInterface("test.Z")
	tBase  = types.MustClass("test.Base", nil)
	tSub   = types.MustClass("test.Sub", tBase)
	tXImpl = types.MustClass("test.XImpl", nil, tX)
	tYImpl = types.MustClass("test.YImpl", nil, tY)
)

// obj is a typed test value; tag tells adapters apart.
type obj struct {
	t   *types.Type
	tag string
}

func (o *obj) AdaptableType() *types.Type { return o.t }

func newObj(t *types.Type, tag string) *obj { return &obj{t: t, tag: tag} }

// returning is a factory that always returns out for its names.
func returning(out any, names ...string) *factory.Func {
	return factory.NewFunc(names, func(any, *types.Type) any { return out })
}

// echoing is a factory that returns a fresh value of the requested type.
func echoing(tag string, names ...string) *factory.Func {
	return factory.NewFunc(names, func(_ any, t *types.Type) any { return newObj(t, tag) })
}

// counting resolves names from its own namespace and counts resolutions.
type counting struct {
	ns    map[string]*types.Type
	calls atomic.Int32
}

func (c *counting) AdapterNames() []string {
	names := make([]string, 0, len(c.ns))
	for name := range c.ns {
		names = append(names, name)
	}
	return names
}

func (c *counting) Adapt(_ any, t *types.Type) any { return newObj(t, "counting") }

func (c *counting) ResolveType(name string) (*types.Type, bool) {
	c.calls.Add(1)
	t, ok := c.ns[name]
	return t, ok
}

// provider contributes its registrations once.
type provider struct {
	regs  []registration
	calls atomic.Int32
}

type registration struct {
	f    apis.Factory
	name string
}

func (p *provider) Contribute(r apis.Registrar) bool {
	p.calls.Add(1)
	added := false
	for _, reg := range p.regs {
		if r.RegisterFactory(reg.f, reg.name) == nil {
			added = true
		}
	}
	return added
}

func newManager(t *testing.T, opts ...manager.Option) *manager.Manager {
	t.Helper()
	cat := types.NewCatalog()
	require.NoError(t, cat.Add(tX, tY, tZ, tBase, tSub, tXImpl, tYImpl))
	m, err := manager.New(append([]manager.Option{manager.WithCatalog(cat)}, opts...)...)
	require.NoError(t, err)
	return m
}

func factoryID(t *testing.T, m *manager.Manager, f apis.Factory) string {
	t.Helper()
	for _, e := range m.Entries() {
		if e.Binding.Factory == f {
			return e.Binding.ID
		}
	}
	t.Fatalf("factory %v is not registered", f)
	return ""
}
