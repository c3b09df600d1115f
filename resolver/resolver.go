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

// Package resolver walks an ordered factory list with a strategy.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/types"
)

// ErrTypeMismatch is matched by every *MismatchError.
var ErrTypeMismatch = errors.New("adapt(resolver): factory returned an adapter of the wrong type")

// MismatchError reports the factories that returned adapters that are not
// instances of the requested type, when no factory returned a valid one.
type MismatchError struct {
	// Target is the requested adapter type.
	Target *types.Type
	// Mismatches lists offending factories in list order.
	Mismatches []apis.Mismatch
}

// Error implements error.
func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "adapt(resolver): adapters requested as %s have the wrong type:", e.Target)
	for i, m := range e.Mismatches {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " factory %s returned %s", m.Binding.ID, m.Got)
	}
	return b.String()
}

// Unwrap returns ErrTypeMismatch.
func (e *MismatchError) Unwrap() error { return ErrTypeMismatch }

// Resolve runs s over bindings in order and returns the first adapter
// produced. Mismatches seen on the way are collected; they are meaningful
// to the caller only when no adapter was found.
func Resolve(bindings []apis.Binding, s apis.Strategy, adaptable any) (any, []apis.Mismatch) {
	var mismatches []apis.Mismatch
	for _, b := range bindings {
		adapter, mm := s.TryAdapt(b, adaptable)
		if adapter != nil {
			return adapter, nil
		}
		if mm != nil {
			mismatches = append(mismatches, *mm)
		}
	}
	return nil, mismatches
}
