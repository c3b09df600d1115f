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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dirpx.dev/adapt/apis"
)

const (
	// DefaultCacheLookups represents the default for CacheLookups.
	DefaultCacheLookups = true
	// DefaultCacheClassNames represents the default for CacheClassNames.
	DefaultCacheClassNames = true
	// DefaultCoalesceBuilds represents the default for CoalesceBuilds.
	DefaultCoalesceBuilds = true
	// DefaultMetricsNamespace represents the default for MetricsNamespace.
	DefaultMetricsNamespace = "adapt"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MetricsNamespace is valid.
	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = DefaultMetricsNamespace
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		CacheLookups:     DefaultCacheLookups,
		CacheClassNames:  DefaultCacheClassNames,
		CoalesceBuilds:   DefaultCoalesceBuilds,
		MetricsNamespace: DefaultMetricsNamespace,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithCacheLookups sets the CacheLookups option.
func WithCacheLookups(enabled bool) Option {
	return func(c *apis.Config) {
		c.CacheLookups = enabled
	}
}

// WithCacheClassNames sets the CacheClassNames option.
func WithCacheClassNames(enabled bool) Option {
	return func(c *apis.Config) {
		c.CacheClassNames = enabled
	}
}

// WithCoalesceBuilds sets the CoalesceBuilds option.
func WithCoalesceBuilds(enabled bool) Option {
	return func(c *apis.Config) {
		c.CoalesceBuilds = enabled
	}
}

// WithMetricsNamespace sets the MetricsNamespace option.
// An empty value resets to the default.
func WithMetricsNamespace(ns string) Option {
	return func(c *apis.Config) {
		if ns == "" {
			ns = DefaultMetricsNamespace
		}
		c.MetricsNamespace = ns
	}
}

// FromYAML decodes a YAML document over DefaultConfig. Keys that are absent
// keep their defaults; unknown keys are an error.
func FromYAML(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("adapt(config): decode: %w", err)
	}
	return NewConfig(func(c *apis.Config) { *c = cfg }), nil
}
