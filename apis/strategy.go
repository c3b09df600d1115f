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

package apis

// Mismatch records a factory that returned an adapter of the wrong type.
type Mismatch struct {
	// Binding is the offending factory.
	Binding Binding
	// Got names the type of the value it returned.
	Got string
}

// Strategy is one way of asking a single factory for an adapter. A resolver
// runs a Strategy over a factory list in order.
type Strategy interface {
	// TryAdapt asks b for an adapter of adaptable. It returns a non-nil
	// adapter on success, a non-nil Mismatch if the factory broke its
	// contract, or neither to fall through to the next factory.
	TryAdapt(b Binding, adaptable any) (adapter any, mismatch *Mismatch)
}
