// Command rpg builds and maintains a Repository Planning Graph for a
// source repository: a structural graph of entities and their
// dependencies, enriched with an LLM-produced semantic layer, persisted
// under the project's .rpg/ directory.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
