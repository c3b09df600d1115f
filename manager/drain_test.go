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
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/adapt/apis"
)

// panicking fails inside Contribute.
type panicking struct{}

func (*panicking) Contribute(apis.Registrar) bool { panic("contribute failed") }

func TestDrain_PanickingProviderReleasesPending(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	require.NoError(t, m.RegisterLazyProvider(&panicking{}))
	require.Equal(t, int64(1), m.lazy.pending.Load())

	require.PanicsWithValue(t, "contribute failed", func() { m.drain() })
	require.Zero(t, m.lazy.pending.Load())

	// The drain lock was released and later queries skip draining.
	require.True(t, m.lazy.drainMu.TryLock())
	m.lazy.drainMu.Unlock()
	require.Equal(t, apis.None, m.QueryAdapter(struct{}{}, "test.X"))
}
