package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/semih007/gradecalc/internal/scoring"
)

const (
	ExitError   = 1
	ExitInvalid = 2 // rejected input
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if errors.Is(err, scoring.ErrInvalidScore) {
			os.Exit(ExitInvalid)
		}
		os.Exit(ExitError)
	}
}
