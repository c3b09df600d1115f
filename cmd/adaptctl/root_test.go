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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const catalog = `
types:
  - name: fs.File
    super: fs.Handle
    implements: [io.ReadCloser]
  - name: fs.Handle
    implements: [io.Closer]
  - name: io.ReadCloser
    interface: true
    extends: [io.Reader, io.Closer]
  - name: io.Reader
    interface: true
  - name: io.Closer
    interface: true
adapters:
  - on: fs.Handle
    provides: [io.Closer, fs.Stat]
  - on: io.Reader
    provides: [io.Seeker]
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestOrder(t *testing.T) {
	out, err := run(t, "order", "fs.File", "--catalog", writeCatalog(t))
	require.NoError(t, err)
	require.Equal(t, "0\tfs.File\tclass\n1\tfs.Handle\tclass\n2\tio.ReadCloser\tinterface\n3\tio.Closer\tinterface\n4\tio.Reader\tinterface\n", out)
}

func TestAssignable(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "assignable", "fs.File", "io.Reader", "-f", path)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = run(t, "assignable", "fs.Handle", "io.Reader", "-f", path)
	require.NoError(t, err)
	require.Equal(t, "false\n", out)

	_, err = run(t, "assignable", "fs.Handle", "io.Missing", "-f", path)
	require.Error(t, err)
}

func TestTypes(t *testing.T) {
	out, err := run(t, "types", "--catalog", writeCatalog(t))
	require.NoError(t, err)
	require.Contains(t, out, "fs.File")
	require.Contains(t, out, "fs.Handle")
	require.Contains(t, out, "interface")
}

func TestAdapters(t *testing.T) {
	out, err := run(t, "adapters", "fs.File", "--catalog", writeCatalog(t))
	require.NoError(t, err)
	require.Equal(t, "fs.Stat\tNOT_LOADED\nio.Closer\tNOT_LOADED\nio.Seeker\tNOT_LOADED\n", out)
}

func TestAdapters_ConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "adapt.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("cache_lookups: false\n"), 0o600))

	out, err := run(t, "adapters", "fs.Handle", "--catalog", writeCatalog(t), "--config", cfg)
	require.NoError(t, err)
	require.Equal(t, "fs.Stat\tNOT_LOADED\nio.Closer\tNOT_LOADED\n", out)
}

func TestCatalogFromEnv(t *testing.T) {
	t.Setenv("ADAPT_CATALOG", writeCatalog(t))

	out, err := run(t, "assignable", "fs.File", "io.Closer")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestMissingCatalog(t *testing.T) {
	t.Setenv("ADAPT_CATALOG", "")
	_, err := run(t, "types")
	require.ErrorIs(t, err, errNoCatalog)
}
