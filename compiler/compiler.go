// Package compiler is the entry point of the schema compiler. It reads,
// parses, builds and validates schema files and returns the graphs used by
// the generation targets.
package compiler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/indexschema/compiler/gen"
	"github.com/syssam/indexschema/compiler/load"
)

// LoadGraph compiles the schema file at path into a graph.
func LoadGraph(path string, opts ...gen.Option) (*gen.Graph, error) {
	s, err := load.Load(path)
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGraph(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return g, nil
}

// LoadAll compiles independent schema files in parallel. Graphs are returned
// in the order of paths. The first error cancels the remaining work.
func LoadAll(ctx context.Context, paths []string, opts ...gen.Option) ([]*gen.Graph, error) {
	graphs := make([]*gen.Graph, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			g, err := LoadGraph(path, opts...)
			if err != nil {
				return err
			}
			graphs[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}
