//go:build !windows

package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// redirectStdout points stdout/stderr at the logfile so panics and stray output land beside the
// log, per https://github.com/golang/go/issues/325
func redirectStdout(logf *os.File) {
	if err := os.Stdin.Close(); err != nil {
		log.Warn().Str("phase", "startup").Err(err).Msg("Failed to close stdin")
	}
	if err := unix.Dup2(int(logf.Fd()), 1); err != nil {
		log.Warn().Str("phase", "startup").Err(err).Msg("Failed to reassign stdout to logfile")
	}
	if err := unix.Dup2(int(logf.Fd()), 2); err != nil {
		log.Warn().Str("phase", "startup").Err(err).Msg("Failed to reassign stderr to logfile")
	}
}
