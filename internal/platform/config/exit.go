package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// ErrUsage marks errors caused by bad command-line input.
var ErrUsage = errors.New("usage")

// ExitCode maps a command error to a process exit status: 0 for success or
// -help, 2 for usage errors, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

// Exit reports err on stderr, prefixed with the program name, and exits with
// ExitCode(err). It returns normally only when err is nil.
func Exit(program string, err error) {
	if err == nil {
		return
	}
	os.Exit(report(os.Stderr, program, err))
}

func report(w io.Writer, program string, err error) int {
	code := ExitCode(err)
	if code != 0 {
		fmt.Fprintf(w, "%s: %v\n", program, err)
	}
	return code
}
