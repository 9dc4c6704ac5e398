package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vexyart/vexyglob/vexyglob"
)

var findCmd = &cobra.Command{
	Use:   "find [pattern]",
	Short: "Find files matching a glob pattern",
	Long: `Find files matching a glob pattern, respecting ignore files.

Patterns without a separator match base names; use "**/" to match at any
depth. Results stream unsorted unless --sort is given.

Examples:
  vexyglob find "**/*.py"
  vexyglob find "**/*.md" --min-size 10k
  vexyglob find "*.log" --mtime-after -2d
  vexyglob find "**/*.go" --sort path`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}
		return runFind(pattern)
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	addFilterFlags(findCmd, "find")
	findCmd.Flags().StringP("sort", "s", "", "Sort results: name, path, size or mtime (implies collecting)")
	findCmd.Flags().BoolP("watch", "w", false, "Keep watching for new or changed matches after the initial walk")
	_ = viper.BindPFlag("find.sort", findCmd.Flags().Lookup("sort"))
	_ = viper.BindPFlag("find.watch", findCmd.Flags().Lookup("watch"))
}

func runFind(pattern string) error {
	opts, err := filterOptions("find")
	if err != nil {
		return err
	}
	opts.Pattern = pattern
	opts.Sort = vexyglob.SortKey(viper.GetString("find.sort"))

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()

	if opts.Sort != vexyglob.SortNone {
		results, err := vexyglob.FindAll(ctx, opts)
		if err != nil {
			return err
		}
		for _, res := range results {
			printLine(res.Path)
		}
	} else {
		stream, err := vexyglob.Find(ctx, opts)
		if err != nil {
			return err
		}
		for res := range stream.Results() {
			printLine(res.Path)
		}
		if err := stream.Err(); err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		os.Exit(130)
	}

	if viper.GetBool("find.watch") {
		err := vexyglob.WatchChanges(ctx, opts, func(_ context.Context, res vexyglob.Result) error {
			printLine(res.Path)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		return err
	}
	return nil
}
