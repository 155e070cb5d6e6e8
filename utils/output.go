package utils

import (
	"fmt"
	"io"
	"os"
)

// Verbose controls whether progress and timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where progress and timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// Printf writes to Output when Verbose is set.
func Printf(format string, a ...any) {
	if !Verbose {
		return
	}
	fmt.Fprintf(Output, format, a...)
}
