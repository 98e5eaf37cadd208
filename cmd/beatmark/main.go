package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"beatmark/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if !services.UserActionable(err) {
				fmt.Fprintln(os.Stderr, `re-run with logging.level = "debug" for details`)
			}
		}
		os.Exit(1)
	}
}
