package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/syssam/indexschema/compiler"
	"github.com/syssam/indexschema/compiler/gen"
)

func (c *cli) inspectCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "inspect schema.graphql",
		Short: "Print the resolved model of a schema",
		Long: `Print every entity field with its storage type, application type
and default value, followed by the resolved relationships.

With --dump, the full graph is printed with go-spew.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := compiler.LoadGraph(args[0], c.cfg.GenOptions()...)
			if err != nil {
				return err
			}
			if dump {
				cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				cs.Fdump(cmd.OutOrStdout(), g.Nodes, g.Enums)
				return nil
			}
			printGraph(cmd, g)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the graph with go-spew")
	return cmd
}

func printGraph(cmd *cobra.Command, g *gen.Graph) {
	out := cmd.OutOrStdout()
	for _, e := range g.Enums {
		fmt.Fprintf(out, "enum %s (default %s): %s\n", e.Name, e.Default, strings.Join(e.Values, ", "))
	}
	for _, n := range g.Nodes {
		fmt.Fprintf(out, "entity %s\n", n.Name)
		for _, f := range n.Fields {
			storage := f.StorageType
			if f.Derived {
				storage = "-"
			}
			fmt.Fprintf(out, "  %-16s %-32s %-20s %-24s %s\n", f.Name, f.Display, storage, f.AppType, f.Default)
		}
	}
	for _, r := range g.Relations() {
		for _, e := range r.Forward {
			fmt.Fprintf(out, "%s.%s -> %s (%s)\n", r.Entity, e.Name, e.Target, e.Key)
		}
		for _, e := range r.Derived {
			fmt.Fprintf(out, "%s.%s <- %s.%s\n", r.Entity, e.Name, e.Target, e.Field)
		}
	}
}
