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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/adapt/hierarchy"
	"dirpx.dev/adapt/types"
)

// instance is a stand-in value of a catalog type.
type instance struct{ t *types.Type }

func (i instance) AdaptableType() *types.Type { return i.t }

func (a *app) orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order TYPE",
		Short: "Print the search order of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := a.file()
			if err != nil {
				return err
			}
			t, err := a.lookup(cat, args[0])
			if err != nil {
				return err
			}
			for i, o := range hierarchy.Order(t) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i, o.Name(), o.Kind())
			}
			return nil
		},
	}
}

func (a *app) assignableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assignable TYPE TARGET",
		Short: "Report whether values of TYPE are instances of TARGET",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := a.file()
			if err != nil {
				return err
			}
			t, err := a.lookup(cat, args[0])
			if err != nil {
				return err
			}
			target, err := a.lookup(cat, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hierarchy.Assignable(t, target))
			return nil
		},
	}
}

func (a *app) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the types of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cat, err := a.file()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range cat.Types() {
				super := "-"
				if t.Super() != nil {
					super = t.Super().Name()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", t.Name(), t.Kind(), super, t.NumInterfaces())
			}
			return w.Flush()
		},
	}
}

func (a *app) adaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adapters TYPE",
		Short: "List the adapter types declared along the search order of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, cat, err := a.file()
			if err != nil {
				return err
			}
			t, err := a.lookup(cat, args[0])
			if err != nil {
				return err
			}
			m, err := a.manager(cmd, file, cat)
			if err != nil {
				return err
			}
			defer m.Shutdown()

			v := instance{t}
			for _, name := range m.ComputeAdapterTypes(t) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, m.QueryAdapter(v, name))
			}
			return nil
		},
	}
}
