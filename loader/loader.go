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

// Package loader reads type catalogs from YAML.
//
// A catalog file lists type declarations in any order:
//
//	types:
//	  - name: io.Closer
//	    interface: true
//	  - name: io.ReadCloser
//	    interface: true
//	    extends: [io.Reader, io.Closer]
//	  - name: os.File
//	    super: os.Handle
//	    implements: [io.ReadCloser]
//	adapters:
//	  - on: os.Handle
//	    provides: [io.Closer]
//
// References to undeclared types and inheritance cycles are errors. The
// optional adapters section declares which adapter types are registered
// on which adaptable types, for tooling that inspects lookup tables
// without the factories themselves.
package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"dirpx.dev/adapt/types"
)

var (
	// ErrUnknownType is returned when a declaration references an undeclared type.
	ErrUnknownType = errors.New("adapt(loader): reference to undeclared type")
	// ErrDuplicateType is returned when a name is declared twice.
	ErrDuplicateType = errors.New("adapt(loader): type declared twice")
	// ErrCycle is returned when declarations inherit from themselves.
	ErrCycle = errors.New("adapt(loader): inheritance cycle")
	// ErrInvalidDecl is returned for declarations that mix class and interface fields.
	ErrInvalidDecl = errors.New("adapt(loader): invalid declaration")
)

// File is the root structure of a catalog file.
type File struct {
	Types    []TypeDef    `yaml:"types"`
	Adapters []AdapterDef `yaml:"adapters"`
}

// AdapterDef declares the adapter types available on an adaptable type.
type AdapterDef struct {
	On       string   `yaml:"on"`       // Adaptable type name
	Provides []string `yaml:"provides"` // Adapter type names
}

// TypeDef declares a single type.
type TypeDef struct {
	Name       string   `yaml:"name"`       // Fully qualified type name
	Interface  bool     `yaml:"interface"`  // Declares an interface instead of a class
	Super      string   `yaml:"super"`      // Super class name (classes only)
	Implements []string `yaml:"implements"` // Directly implemented interfaces (classes only)
	Extends    []string `yaml:"extends"`    // Direct super-interfaces (interfaces only)
}

// ReadFile reads and decodes the catalog file at path in fsys without
// building its types.
func ReadFile(fsys fs.FS, path string) (File, error) {
	var file File
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return file, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// LoadCatalog reads and parses the catalog file at path in fsys.
func LoadCatalog(fsys fs.FS, path string) (*types.Catalog, error) {
	file, err := ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	cat, err := file.Catalog()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

// Catalog builds the declared types into a new Catalog.
func (f File) Catalog() (*types.Catalog, error) {
	ts, err := Build(f.Types)
	if err != nil {
		return nil, err
	}
	cat := types.NewCatalog()
	if err := cat.Add(ts...); err != nil {
		return nil, err
	}
	return cat, nil
}

// ParseCatalog parses a catalog document into a new Catalog.
func ParseCatalog(content []byte) (*types.Catalog, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return file.Catalog()
}

// Parse parses a catalog document and returns its types in declaration order.
func Parse(content []byte) ([]*types.Type, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return Build(file.Types)
}

// Build declares defs, resolving references regardless of their order.
func Build(defs []TypeDef) ([]*types.Type, error) {
	b := &build{
		defs:  make(map[string]*TypeDef, len(defs)),
		done:  make(map[string]*types.Type, len(defs)),
		state: make(map[string]bool, len(defs)),
	}
	for i := range defs {
		d := &defs[i]
		if d.Name == "" {
			return nil, fmt.Errorf("declaration %d: %w", i, types.ErrEmptyName)
		}
		if _, dup := b.defs[d.Name]; dup {
			return nil, fmt.Errorf("%s: %w", d.Name, ErrDuplicateType)
		}
		if d.Interface && (d.Super != "" || len(d.Implements) > 0) {
			return nil, fmt.Errorf("%s: interfaces use extends: %w", d.Name, ErrInvalidDecl)
		}
		if !d.Interface && len(d.Extends) > 0 {
			return nil, fmt.Errorf("%s: classes use super and implements: %w", d.Name, ErrInvalidDecl)
		}
		b.defs[d.Name] = d
	}

	out := make([]*types.Type, 0, len(defs))
	for i := range defs {
		t, err := b.resolve(defs[i].Name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// build resolves declarations depth first; state marks names in progress.
type build struct {
	defs  map[string]*TypeDef
	done  map[string]*types.Type
	state map[string]bool
}

func (b *build) resolve(name string) (*types.Type, error) {
	if t, ok := b.done[name]; ok {
		return t, nil
	}
	d, ok := b.defs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownType)
	}
	if b.state[name] {
		return nil, fmt.Errorf("%s: %w", name, ErrCycle)
	}
	b.state[name] = true
	defer delete(b.state, name)

	var (
		t   *types.Type
		err error
	)
	if d.Interface {
		var supers []*types.Type
		if supers, err = b.resolveAll(d.Name, d.Extends); err != nil {
			return nil, err
		}
		t, err = types.NewInterface(d.Name, supers...)
	} else {
		var super *types.Type
		if d.Super != "" {
			if super, err = b.resolve(d.Super); err != nil {
				return nil, fmt.Errorf("%s super: %w", d.Name, err)
			}
		}
		var ifaces []*types.Type
		if ifaces, err = b.resolveAll(d.Name, d.Implements); err != nil {
			return nil, err
		}
		t, err = types.NewClass(d.Name, super, ifaces...)
	}
	if err != nil {
		return nil, err
	}
	b.done[name] = t
	return t, nil
}

func (b *build) resolveAll(owner string, names []string) ([]*types.Type, error) {
	out := make([]*types.Type, 0, len(names))
	for _, n := range names {
		t, err := b.resolve(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", owner, err)
		}
		out = append(out, t)
	}
	return out, nil
}
