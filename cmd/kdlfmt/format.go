package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kdl-go/kdl"
	"github.com/kdl-go/kdl/internal/clilog"
)

func runFormat(cfg *config, path string) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	logger.Info("parsing", "path", path, "bytes", len(data))

	doc, err := kdl.Parse(string(data))
	if err != nil {
		return err
	}

	out := doc.Stringify(cfg.indent)
	if len(doc.Nodes) == 0 {
		// an empty document is written as a single blank line
		out = "\n"
	}

	if cfg.check {
		if out != string(data) {
			return ErrNotCanonical
		}
		return nil
	}

	if _, err := os.Stdout.WriteString(out); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func newLogger(cfg *config) (*slog.Logger, error) {
	level := cfg.logLevel
	if !cfg.verbose {
		level = "warn"
	}
	logger, err := clilog.New(os.Stderr, level, cfg.logFormat)
	if err != nil {
		return nil, err
	}
	return logger, nil
}
