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

// Config carries the manager's tuning knobs. It is passed by value and
// treated as immutable. None of the knobs changes lookup results; they only
// trade memory for latency.
type Config struct {
	// CacheLookups memoizes search orders and lookup tables per type.
	CacheLookups bool `yaml:"cache_lookups" mapstructure:"cache_lookups"`

	// CacheClassNames memoizes (factory, name) -> descriptor resolutions.
	CacheClassNames bool `yaml:"cache_class_names" mapstructure:"cache_class_names"`

	// CoalesceBuilds lets concurrent misses on the same type share one
	// table build instead of racing.
	CoalesceBuilds bool `yaml:"coalesce_builds" mapstructure:"coalesce_builds"`

	// MetricsNamespace prefixes the Prometheus metric names.
	MetricsNamespace string `yaml:"metrics_namespace" mapstructure:"metrics_namespace"`
}
