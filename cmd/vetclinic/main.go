// ABOUTME: Entry point for the vetclinic CLI.
// ABOUTME: Runs the root Cobra command and releases the store on every exit path.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := Execute()
	if cerr := closeResources(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
