package report

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/pkg/logger"
)

// Config holds the command line settings of the report tool.
type Config struct {
	File    string // YAML selections file
	Verbose bool   // log values that were not on the menu
}

// Run loads cfg.File, prints the report to out and returns any error. A
// sheet that is not ready is not an error.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.File == "" {
		return ErrNoInput
	}
	cat := catalog.New()
	if err := cat.Validate(); err != nil {
		return err
	}

	sheet, rejected, err := LoadFile(cfg.File, cat)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		for _, r := range rejected {
			logger.Get().Warn(ctx, "ignoring selection", logger.String("key", r.Key), logger.String("value", r.Value))
		}
	}

	if _, err := io.WriteString(out, New().Render(sheet)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFail, err)
	}
	return nil
}

// ShowHelp prints usage information for the report tool.
func ShowHelp(out io.Writer) {
	_, _ = io.WriteString(out, `WellGuard+ Report
=================

Prints the selection table and, once every slot is filled in, the
integrity analysis for a YAML selections file.

Usage:
  wellguard-report -f selections.yaml [-v]

Options:
  -f string
        YAML selections file (required)
  -v    Log values that are not on the menu
  -help Show this help

File format:
  slots:
    "00:00": {pressure: 1200, temperature: 68, material: Steel}
    "01:00": {pressure: 1180, temperature: 69, material: Composite}
`)
}
