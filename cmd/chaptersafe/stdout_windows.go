//go:build windows

package main

import (
	"os"
)

// redirectStdout swaps the std* streams for the logfile, Dup2 is not available here.
//
// Warning: this hides panic() output.
func redirectStdout(logf *os.File) {
	_ = os.Stderr.Close()
	os.Stdout = logf
	os.Stderr = logf
}
