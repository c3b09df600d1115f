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

package reflect

import (
	"errors"
	"reflect"
)

// MaxUnwrap bounds how many pointer indirections Normalize strips.
const MaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type (e.g., anonymous struct, slice, func).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not named")
)

// Normalize strips pointer indirections from t and returns the nearest named
// type, so that T, *T and **T bind to the same descriptor.
//
// Unlike pointers, slices, maps and channels are distinct values and are not
// unwrapped: a []T is not an adaptable T.
func Normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for i := 0; t.Kind() == reflect.Pointer && t.Name() == "" && i < MaxUnwrap; i++ {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}
