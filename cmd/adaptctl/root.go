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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/adapt/apis"
	"dirpx.dev/adapt/config"
	"dirpx.dev/adapt/factory"
	"dirpx.dev/adapt/loader"
	"dirpx.dev/adapt/manager"
	"dirpx.dev/adapt/types"
)

var version = "dev"

var errNoCatalog = errors.New("no catalog file given (use --catalog or ADAPT_CATALOG)")

// app carries the settings shared by all commands.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ADAPT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := config.DefaultConfig()
	v.SetDefault("cache_lookups", defaults.CacheLookups)
	v.SetDefault("cache_class_names", defaults.CacheClassNames)
	v.SetDefault("coalesce_builds", defaults.CoalesceBuilds)
	v.SetDefault("metrics_namespace", defaults.MetricsNamespace)

	root := &cobra.Command{
		Use:          "adaptctl",
		Short:        "Inspect adapter resolution over a type catalog",
		Long:         `adaptctl loads a YAML type catalog and answers questions about search orders, assignability and the adapter types available to a type.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("catalog", "f", "", "type catalog file")
	root.PersistentFlags().String("config", "", "manager config file (YAML)")
	root.PersistentFlags().IntP("verbosity", "v", 0, "log verbosity written to stderr")
	_ = v.BindPFlag("catalog", root.PersistentFlags().Lookup("catalog"))
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("verbosity", root.PersistentFlags().Lookup("verbosity"))

	a := &app{v: v}
	root.AddCommand(
		a.orderCmd(),
		a.assignableCmd(),
		a.typesCmd(),
		a.adaptersCmd(),
	)
	return root
}

// file reads the catalog file named by the catalog setting.
func (a *app) file() (loader.File, *types.Catalog, error) {
	path := a.v.GetString("catalog")
	if path == "" {
		return loader.File{}, nil, errNoCatalog
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return loader.File{}, nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	file, err := loader.ReadFile(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return loader.File{}, nil, err
	}
	cat, err := file.Catalog()
	if err != nil {
		return loader.File{}, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return file, cat, nil
}

func (a *app) lookup(cat *types.Catalog, name string) (*types.Type, error) {
	t, ok := cat.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("type %q is not in the catalog", name)
	}
	return t, nil
}

// manager builds a manager over cat with the adapters declared in file.
func (a *app) manager(cmd *cobra.Command, file loader.File, cat *types.Catalog) (*manager.Manager, error) {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg apis.Config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	m, err := manager.New(
		manager.WithConfig(cfg),
		manager.WithCatalog(cat),
		manager.WithLogger(a.logger(cmd)),
	)
	if err != nil {
		return nil, err
	}
	for _, def := range file.Adapters {
		if _, ok := cat.Lookup(def.On); !ok {
			return nil, fmt.Errorf("adapters on %q: %w", def.On, loader.ErrUnknownType)
		}
		// Declarations only: the factory is never activated.
		if err := m.RegisterFactory(factory.NewLazy(def.Provides, nil), def.On); err != nil {
			return nil, err
		}
	}
	m.FlushLookup()
	return m, nil
}

func (a *app) logger(cmd *cobra.Command) logr.Logger {
	verbosity := a.v.GetInt("verbosity")
	if verbosity <= 0 {
		return logr.Discard()
	}
	w := cmd.ErrOrStderr()
	return funcr.New(func(prefix, args string) {
		fmt.Fprintln(w, prefix, args)
	}, funcr.Options{Verbosity: verbosity})
}
