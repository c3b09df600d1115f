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

package types_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/adapt/types"
)

func TestNewClass(t *testing.T) {
	i := types.MustInterface("I")
	base := types.MustClass("Base", nil)

	c, err := types.NewClass("C", base, i)
	require.NoError(t, err)
	require.Equal(t, "C", c.Name())
	require.Equal(t, types.Class, c.Kind())
	require.False(t, c.IsInterface())
	require.Same(t, base, c.Super())
	require.Equal(t, []*types.Type{i}, c.Interfaces())
	require.Equal(t, 1, c.NumInterfaces())
	require.Same(t, i, c.Interface(0))
	require.NotZero(t, c.ID())
	require.NotEqual(t, base.ID(), c.ID())
	require.Equal(t, "C", c.String())

	// Interfaces returns a copy.
	c.Interfaces()[0] = nil
	require.Same(t, i, c.Interface(0))
}

func TestNewClass_Errors(t *testing.T) {
	i := types.MustInterface("I")
	c := types.MustClass("C", nil)

	_, err := types.NewClass("", nil)
	require.ErrorIs(t, err, types.ErrEmptyName)
	_, err = types.NewClass("X", i)
	require.ErrorIs(t, err, types.ErrSuperNotClass)
	_, err = types.NewClass("X", nil, c)
	require.ErrorIs(t, err, types.ErrNotInterface)
	_, err = types.NewClass("X", nil, nil)
	require.ErrorIs(t, err, types.ErrNilType)
	_, err = types.NewInterface("J", c)
	require.ErrorIs(t, err, types.ErrNotInterface)
	_, err = types.NewInterface("")
	require.ErrorIs(t, err, types.ErrEmptyName)

	require.Panics(t, func() { types.MustClass("", nil) })
	require.Panics(t, func() { types.MustInterface("J", c) })
}

func TestKindString(t *testing.T) {
	require.Equal(t, "class", types.Class.String())
	require.Equal(t, "interface", types.Interface.String())
	require.Equal(t, "Unknown(7)", types.Kind(7).String())

	var nilType *types.Type
	require.Equal(t, "<nil>", nilType.String())
}

type typed struct{ t *types.Type }

func (v typed) AdaptableType() *types.Type { return v.t }

type plain struct{}

func TestCatalog_AddLookup(t *testing.T) {
	cat := types.NewCatalog()
	a := types.MustClass("pkg.A", nil)
	b := types.MustInterface("pkg.B")

	require.NoError(t, cat.Add(b, a))
	require.NoError(t, cat.Add(a))
	require.Equal(t, 2, cat.Len())
	require.Equal(t, []*types.Type{a, b}, cat.Types())

	got, ok := cat.Lookup("pkg.A")
	require.True(t, ok)
	require.Same(t, a, got)
	got, ok = cat.ResolveType("pkg.B")
	require.True(t, ok)
	require.Same(t, b, got)
	_, ok = cat.Lookup("pkg.C")
	require.False(t, ok)

	err := cat.Add(types.MustClass("pkg.A", nil))
	require.ErrorIs(t, err, types.ErrConflictingType)
	require.ErrorIs(t, cat.Add(nil), types.ErrNilType)

	cat.Reset()
	require.Zero(t, cat.Len())
}

func TestCatalog_Of(t *testing.T) {
	cat := types.NewCatalog()
	a := types.MustClass("pkg.A", nil)
	b := types.MustClass("pkg.B", nil)
	plainType := reflect.TypeOf(plain{})

	require.NoError(t, cat.Bind(plainType, a))
	require.NoError(t, cat.Bind(reflect.TypeOf(&plain{}), a))
	require.ErrorIs(t, cat.Bind(plainType, b), types.ErrConflictingBinding)
	require.ErrorIs(t, cat.Bind(plainType, nil), types.ErrNilType)
	require.Error(t, cat.Bind(reflect.TypeOf([]plain{}), a))

	got, ok := cat.Of(plain{})
	require.True(t, ok)
	require.Same(t, a, got)
	got, ok = cat.Of(&plain{})
	require.True(t, ok)
	require.Same(t, a, got)

	// Typed wins over bindings.
	got, ok = cat.Of(typed{b})
	require.True(t, ok)
	require.Same(t, b, got)

	_, ok = cat.Of(typed{nil})
	require.False(t, ok)
	_, ok = cat.Of(nil)
	require.False(t, ok)
	_, ok = cat.Of(42)
	require.False(t, ok)

	require.Equal(t, "pkg.A", cat.DescribeValue(plain{}))
	require.Equal(t, "int", cat.DescribeValue(42))

	// Bind interns the descriptor.
	_, ok = cat.Lookup("pkg.A")
	require.True(t, ok)

	cat.Reset()
	_, ok = cat.Of(plain{})
	require.False(t, ok)
}

func TestErrUntypedIsDistinct(t *testing.T) {
	require.False(t, errors.Is(types.ErrUntyped, types.ErrNilType))
}
