// Package main provides the guidesheets command, which renders blank
// practice worksheets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benoitkugler/guidesheets/internal/config"
	"github.com/benoitkugler/guidesheets/internal/worksheet"
)

func main() {
	cfg, err := worksheet.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		if errors.Is(err, worksheet.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := worksheet.Run(ctx, cfg, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
