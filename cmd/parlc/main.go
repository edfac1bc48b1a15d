// Command parlc is the PArL compiler front end.
package main

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/cmd/parlc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
