package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shipwright/internal/services"
)

// Exit codes let watchers distinguish fatal validation failures from
// transient ones.
const (
	exitFailure   = 1
	exitDowngrade = 2
	exitCollision = 3
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, services.ErrDowngrade):
		return exitDowngrade
	case errors.Is(err, services.ErrCollision):
		return exitCollision
	default:
		return exitFailure
	}
}
