// Command indexschema compiles indexer entity schemas into storage schemas,
// graph documents and Go bindings.
package main

import (
	"fmt"
	"os"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
