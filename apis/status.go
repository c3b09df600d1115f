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

import (
	"fmt"
	"strings"
)

// Status answers whether adapters of a type name are available for an
// adaptable without activating anything.
type Status int

const (
	// None means no factory is registered for the name.
	None Status = iota
	// NotLoaded means factories are registered but none is active yet.
	NotLoaded
	// Loaded means at least one registered factory is already active.
	Loaded
)

// String returns "NONE", "NOT_LOADED" or "LOADED", and "Unknown(<n>)"
// for out-of-range values.
func (s Status) String() string {
	switch s {
	case None:
		return "NONE"
	case NotLoaded:
		return "NOT_LOADED"
	case Loaded:
		return "LOADED"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseStatus parses the tokens produced by String, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return None, nil
	case "NOT_LOADED":
		return NotLoaded, nil
	case "LOADED":
		return Loaded, nil
	case "":
		return None, fmt.Errorf("adapt: empty status")
	default:
		return None, fmt.Errorf("adapt: unknown status %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an error.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case None, NotLoaded, Loaded:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("adapt: cannot marshal unknown status %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On error s is unchanged.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
