// Package main provides the kdlfmt CLI: a canonicalizing formatter and
// interactive inspector for KDL documents.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ErrReadInput and ErrWriteOutput wrap I/O failures so callers can tell
// a read failure from a write failure without string-matching.
var (
	ErrReadInput   = errors.New("read input")
	ErrWriteOutput = errors.New("write output")
	ErrNotCanonical = errors.New("input is not in canonical form")
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if errors.Is(err, ErrNotCanonical) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:   "kdlfmt <file.kdl>",
		Short: "Format and inspect KDL documents",
		Long: `kdlfmt parses a KDL document and writes it back out in canonical form:
arguments in source order, properties sorted by key, 4-space indentation.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("usage: kdlfmt <file.kdl>")
			}
			return runFormat(cfg, args[0])
		},
	}

	root.Flags().IntVar(&cfg.indent, "indent", 0, "base indentation, in spaces, for the top level")
	root.Flags().BoolVar(&cfg.check, "check", false, "exit 2 without writing output if input isn't already canonical")
	root.PersistentFlags().BoolVar(&cfg.plain, "plain", false, "force non-interactive output from subcommands")
	root.Flags().StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().StringVar(&cfg.logFormat, "log-format", "logfmt", "log format: logfmt, json")
	root.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "print diagnostic logging to stderr")

	root.AddCommand(newTreeCmd(cfg))

	return root
}

type config struct {
	indent    int
	check     bool
	plain     bool
	verbose   bool
	logLevel  string
	logFormat string
}
