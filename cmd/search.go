package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vexyart/vexyglob/vexyglob"
)

var searchCmd = &cobra.Command{
	Use:   "search <file-pattern> <content-pattern>",
	Short: "Search file contents with a regex",
	Long: `Search the contents of files matching a glob pattern.

Each match prints as path:line:text. Smart case applies to both patterns
unless --case-sensitive is given.

Examples:
  vexyglob search "**/*.py" "import asyncio"
  vexyglob search "src/**/*.rs" "fn\s+main"
  vexyglob search "**/*.go" TODO --no-color`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addFilterFlags(searchCmd, "search")
	searchCmd.Flags().Bool("no-color", false, "Disable colored output")
	_ = viper.BindPFlag("search.no-color", searchCmd.Flags().Lookup("no-color"))
}

func runSearch(pattern, contentPattern string) error {
	opts, err := filterOptions("search")
	if err != nil {
		return err
	}
	opts.Pattern = pattern

	color := !viper.GetBool("search.no-color") && term.IsTerminal(int(os.Stdout.Fd()))

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()

	stream, err := vexyglob.Search(ctx, contentPattern, opts)
	if err != nil {
		return err
	}
	for res := range stream.Results() {
		printLine(formatMatch(res, color))
	}
	if err := stream.Err(); err != nil {
		return err
	}

	if ctx.Err() != nil {
		os.Exit(130)
	}
	return nil
}

// ANSI styles for match output.
const (
	colorMagenta = "\x1b[35m"
	colorGreen   = "\x1b[32m"
	colorRed     = "\x1b[31m"
	colorReset   = "\x1b[0m"
)

// formatMatch renders one content match as path:line:text, highlighting the
// matched substrings when color is on.
func formatMatch(res vexyglob.Result, color bool) string {
	text := strings.TrimRight(res.LineText, "\r\n")
	if !color {
		return fmt.Sprintf("%s:%d:%s", res.Path, res.LineNumber, text)
	}

	seen := map[string]bool{}
	for _, m := range res.Matches {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		text = strings.ReplaceAll(text, m, colorRed+m+colorReset)
	}
	return fmt.Sprintf("%s%s%s:%s%d%s:%s",
		colorMagenta, res.Path, colorReset,
		colorGreen, res.LineNumber, colorReset,
		text)
}
