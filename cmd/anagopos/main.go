// Command anagopos explores reduction graphs of λ-terms and first-order
// term rewriting systems.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "anagopos:", err)
		os.Exit(1)
	}
}
