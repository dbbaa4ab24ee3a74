// Package main provides the CLI entrypoint for field-mapper.
//
// field-mapper inspects how the runtime mapper sees struct types:
//   - lists the sample types it knows about
//   - prints the mappable fields of a type
//   - prints the field plan between two types under a set of behavior flags
package main

import (
	"fmt"
	"os"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
