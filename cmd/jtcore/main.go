// Command jtcore parses extended-DIMACS/WBO formulas and exposes the
// join-tree elimination-order scaffolding around them through three
// subcommands: parse, order, and jointree.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
