package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/indexschema/compiler"
	"github.com/syssam/indexschema/compiler/gen"
)

func (c *cli) compileCmd() *cobra.Command {
	var (
		watch  bool
		outDir string
		format string
	)
	cmd := &cobra.Command{
		Use:   "compile [schema.graphql...]",
		Short: "Compile entity schemas into graph documents",
		Long: `Compile entity schemas in parallel. For every schema, the graph
document handed to the templating step is written to the output directory,
along with the SQL storage schema and, if enabled, Go bindings.

Examples:
  indexschema compile schema.graphql --out generated --format msgpack
  indexschema compile --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := c.schemas(args)
			if err != nil {
				return err
			}
			run := func() error {
				if outDir != "" {
					c.cfg.Output.Dir = outDir
				}
				if format != "" {
					c.cfg.Output.Format = format
				}
				return c.runCompile(cmd, paths)
			}
			if watch {
				return c.watch(cmd.Context(), paths, run)
			}
			return run()
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "compile again on file changes")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "graph encoding: json or msgpack (default from config)")
	return cmd
}

func (c *cli) runCompile(cmd *cobra.Command, paths []string) error {
	format, err := gen.ParseFormat(c.cfg.Output.Format)
	if err != nil {
		return err
	}
	graphs, err := compiler.LoadAll(cmd.Context(), paths, c.cfg.GenOptions()...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, g := range graphs {
		base := filepath.Join(c.cfg.Output.Dir, strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i])))
		files := []string{base + format.Ext(), base + ".sql"}
		if err := g.WriteFile(files[0], format); err != nil {
			return fmt.Errorf("write graph of %s: %w", paths[i], err)
		}
		s, err := storage(g)
		if err != nil {
			return fmt.Errorf("storage schema of %s: %w", paths[i], err)
		}
		ddl, err := s.DDL(cmd.Context())
		if err != nil {
			return fmt.Errorf("storage schema of %s: %w", paths[i], err)
		}
		if err := os.WriteFile(files[1], []byte(ddl), 0o644); err != nil {
			return fmt.Errorf("write storage schema of %s: %w", paths[i], err)
		}
		if c.cfg.Output.Bindings {
			files = append(files, base+".go")
			if err := g.WriteGo(files[2]); err != nil {
				return fmt.Errorf("write bindings of %s: %w", paths[i], err)
			}
		}
		for _, f := range files {
			fmt.Fprintf(out, "  %s %s\n", checkMark, f)
		}
		c.logger.Info().Str("schema", paths[i]).Int("entities", len(g.Nodes)).Int("enums", len(g.Enums)).Msg("schema compiled")
	}
	return nil
}
