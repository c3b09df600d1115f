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

// Package hierarchy computes the search order of an adaptable type.
//
// The search order of a type is the type itself, then its super class chain
// up to the root, then the breadth-first closure of the interfaces declared
// by those classes. Every descriptor appears once, at its first discovery.
// The same order is the preference order for assignability checks.
package hierarchy

import (
	"dirpx.dev/adapt/types"
)

// Order returns the deterministic search order of t, or nil for a nil t.
// The result is freshly allocated and owned by the caller.
func Order(t *types.Type) []*types.Type {
	if t == nil {
		return nil
	}

	var out []*types.Type
	seen := make(map[uint64]struct{})

	// Class chain, self first.
	for c := t; c != nil; c = c.Super() {
		if _, dup := seen[c.ID()]; dup {
			break
		}
		seen[c.ID()] = struct{}{}
		out = append(out, c)
	}
	classes := len(out)

	// Interfaces declared directly by the chain seed the worklist; each
	// level is listed in full before the next one is expanded.
	queue := make([]*types.Type, 0, classes)
	for _, c := range out[:classes] {
		queue = appendNew(queue, c, seen)
	}
	for head := 0; head < len(queue); head++ {
		queue = appendNew(queue, queue[head], seen)
	}

	return append(out, queue...)
}

// appendNew appends the unseen interfaces declared directly by t.
func appendNew(dst []*types.Type, t *types.Type, seen map[uint64]struct{}) []*types.Type {
	for i := 0; i < t.NumInterfaces(); i++ {
		it := t.Interface(i)
		if _, dup := seen[it.ID()]; dup {
			continue
		}
		seen[it.ID()] = struct{}{}
		dst = append(dst, it)
	}
	return dst
}

// Assignable reports whether a value of type t is an instance of target:
// target is t itself, one of its super classes, or an interface reachable
// from them.
func Assignable(t, target *types.Type) bool {
	if t == nil || target == nil {
		return false
	}
	if t == target {
		return true
	}
	if !target.IsInterface() {
		for c := t.Super(); c != nil; c = c.Super() {
			if c == target {
				return true
			}
		}
		return false
	}
	return AssignableIn(Order(t), target)
}

// AssignableIn is Assignable for a type whose search order is already
// known. order must be the result of Order for that type.
func AssignableIn(order []*types.Type, target *types.Type) bool {
	if target == nil {
		return false
	}
	for _, o := range order {
		if o == target {
			return true
		}
	}
	return false
}
