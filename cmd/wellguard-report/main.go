package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/wellguard/internal/report"
	"github.com/okian/wellguard/pkg/logger"
)

func main() {
	var (
		file    = flag.String("f", "", "YAML selections file")
		verbose = flag.Bool("v", false, "Log values that are not on the menu")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp(os.Stdout)
		return
	}

	// Logs go to stderr so stdout carries only the report.
	if err := logger.InitWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := report.Config{File: *file, Verbose: *verbose}
	if err := report.Run(context.Background(), cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		if cfg.File == "" {
			report.ShowHelp(os.Stderr)
		}
		os.Exit(1)
	}
}
