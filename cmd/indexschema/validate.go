package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/compiler"
)

func (c *cli) validateCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "validate [schema.graphql...]",
		Short: "Validate entity schemas",
		Long: `Parse, build and validate entity schemas.

Every error found by a validation pass is reported with its stable code.

Examples:
  indexschema validate schema.graphql
  indexschema validate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := c.schemas(args)
			if err != nil {
				return err
			}
			run := func() error { return c.runValidate(cmd, paths) }
			if watch {
				return c.watch(cmd.Context(), paths, run)
			}
			return run()
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "validate again on file changes")
	return cmd
}

func (c *cli) runValidate(cmd *cobra.Command, paths []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		g, err := compiler.LoadGraph(path, c.cfg.GenOptions()...)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  %s %s\n", crossMark, path)
			for _, code := range indexschema.Codes(err) {
				c.logger.Debug().Str("file", path).Str("code", string(code)).Msg("validation error")
			}
			fmt.Fprintf(out, "      %v\n", err)
			continue
		}
		fmt.Fprintf(out, "  %s %s (%d entities, %d enums)\n", checkMark, path, len(g.Nodes), len(g.Enums))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d schemas invalid", failed, len(paths))
	}
	return nil
}
