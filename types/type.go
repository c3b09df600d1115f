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

// Package types describes adaptable types as an explicit graph.
//
// Go has no class hierarchy to reflect over, so every adaptable type is
// declared up front as a Type descriptor carrying its direct super class
// and its directly declared interfaces. Descriptors are immutable once
// constructed and carry a process-unique id which the manager uses as a
// cache key.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
)

var (
	// ErrEmptyName is returned when a descriptor is declared without a name.
	ErrEmptyName = errors.New("adapt(types): empty type name")
	// ErrSuperNotClass is returned when a class declares an interface as its super class.
	ErrSuperNotClass = errors.New("adapt(types): super type is not a class")
	// ErrNotInterface is returned when a non-interface is listed as an implemented interface.
	ErrNotInterface = errors.New("adapt(types): declared type is not an interface")
	// ErrNilType is returned when a nil descriptor is listed in a declaration.
	ErrNilType = errors.New("adapt(types): nil type in declaration")
)

// Kind distinguishes classes from interfaces.
type Kind uint8

const (
	// Class is a concrete or abstract type with at most one super class.
	Class Kind = iota
	// Interface is a capability that classes and other interfaces declare.
	Interface
)

// String returns "class" or "interface".
func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Interface:
		return "interface"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// nextID hands out descriptor ids; zero is never used.
var nextID atomic.Uint64

// Type is an immutable descriptor of an adaptable type.
type Type struct {
	id     uint64
	name   string
	kind   Kind
	super  *Type
	ifaces []*Type
}

// NewClass declares a class named name with an optional super class and the
// interfaces it implements directly.
func NewClass(name string, super *Type, ifaces ...*Type) (*Type, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if super != nil && super.kind != Class {
		return nil, fmt.Errorf("class %s extends %s: %w", name, super.name, ErrSuperNotClass)
	}
	if err := checkInterfaces(name, ifaces); err != nil {
		return nil, err
	}
	return newType(name, Class, super, ifaces), nil
}

// NewInterface declares an interface named name extending supers.
func NewInterface(name string, supers ...*Type) (*Type, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := checkInterfaces(name, supers); err != nil {
		return nil, err
	}
	return newType(name, Interface, nil, supers), nil
}

// MustClass is like NewClass but panics on an invalid declaration.
// It is meant for package-level descriptor variables.
func MustClass(name string, super *Type, ifaces ...*Type) *Type {
	t, err := NewClass(name, super, ifaces...)
	if err != nil {
		panic(err)
	}
	return t
}

// MustInterface is like NewInterface but panics on an invalid declaration.
func MustInterface(name string, supers ...*Type) *Type {
	t, err := NewInterface(name, supers...)
	if err != nil {
		panic(err)
	}
	return t
}

func checkInterfaces(owner string, ifaces []*Type) error {
	for _, it := range ifaces {
		if it == nil {
			return fmt.Errorf("type %s: %w", owner, ErrNilType)
		}
		if it.kind != Interface {
			return fmt.Errorf("type %s implements %s: %w", owner, it.name, ErrNotInterface)
		}
	}
	return nil
}

func newType(name string, kind Kind, super *Type, ifaces []*Type) *Type {
	return &Type{
		id:     nextID.Add(1),
		name:   name,
		kind:   kind,
		super:  super,
		ifaces: append([]*Type(nil), ifaces...),
	}
}

// ID returns the process-unique id assigned at declaration time.
func (t *Type) ID() uint64 { return t.id }

// Name returns the fully qualified type name.
func (t *Type) Name() string { return t.name }

// Kind returns whether t is a class or an interface.
func (t *Type) Kind() Kind { return t.kind }

// IsInterface reports whether t is an interface.
func (t *Type) IsInterface() bool { return t.kind == Interface }

// Super returns the direct super class, or nil for roots and interfaces.
func (t *Type) Super() *Type { return t.super }

// Interfaces returns the directly declared interfaces in declaration order.
// For an interface these are its direct super-interfaces.
func (t *Type) Interfaces() []*Type {
	return append([]*Type(nil), t.ifaces...)
}

// NumInterfaces returns the number of directly declared interfaces.
func (t *Type) NumInterfaces() int { return len(t.ifaces) }

// Interface returns the i'th directly declared interface.
func (t *Type) Interface(i int) *Type { return t.ifaces[i] }

// String implements fmt.Stringer.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}
