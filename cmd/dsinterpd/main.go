// Command dsinterpd hosts the configuration interpreter and atomic
// transaction core as a standalone process: an interactive REPL or a
// one-shot config-file load, either way staying up until signalled.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "dsinterpd:", err)
		os.Exit(1)
	}
}
