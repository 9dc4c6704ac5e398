package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vexyart/vexyglob/vexyglob"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vexyglob",
	Short: "Fast gitignore-aware file finding and content search",
	Long: `vexyglob finds files and searches file contents with a parallel,
gitignore-aware directory walker. Results stream as they are discovered.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Without this the runtime re-raises EPIPE on stdout as a fatal
	// SIGPIPE, so the write error never reaches printLine.
	signal.Ignore(syscall.SIGPIPE)

	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.vexyglob.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vexyglob")
	}

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// addFilterFlags registers the filter flags shared by find and search,
// bound to viper under the given prefix.
func addFilterFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().String("root", ".", "Root directory to search from")
	cmd.Flags().String("min-size", "", "Minimum file size (e.g. 10k, 1.5M, 2G)")
	cmd.Flags().String("max-size", "", "Maximum file size")
	cmd.Flags().String("mtime-after", "", "Only files modified after (unix ts, ISO date, or -1d/-2h/-30m/-45s)")
	cmd.Flags().String("mtime-before", "", "Only files modified before")
	cmd.Flags().Bool("no-gitignore", false, "Don't respect .gitignore/.ignore/.fdignore files")
	cmd.Flags().Bool("hidden", false, "Include hidden files and directories")
	cmd.Flags().String("case-sensitive", "", "Force case sensitivity (true|false; default smart case)")
	cmd.Flags().StringP("type", "t", "", "Filter by type: f (file), d (directory), l (symlink)")
	cmd.Flags().StringSliceP("extension", "e", nil, "Filter by file extension (repeatable)")
	cmd.Flags().StringSlice("exclude", nil, "Glob pattern(s) to exclude (repeatable)")
	cmd.Flags().IntP("depth", "d", 0, "Maximum directory depth (0 = unlimited)")
	cmd.Flags().Bool("follow-symlinks", false, "Follow symbolic links")
	cmd.Flags().Bool("same-file-system", false, "Don't cross filesystem boundaries")
	cmd.Flags().IntP("threads", "j", 0, "Number of worker threads (0 = auto)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	for _, name := range []string{
		"root", "min-size", "max-size", "mtime-after", "mtime-before",
		"no-gitignore", "hidden", "case-sensitive", "type", "extension",
		"exclude", "depth", "follow-symlinks", "same-file-system",
		"threads", "verbose",
	} {
		_ = viper.BindPFlag(prefix+"."+name, cmd.Flags().Lookup(name))
	}
}

// filterOptions translates the bound flags into engine options. Size and
// time expressions are resolved here so bad values fail before any walk.
func filterOptions(prefix string) (vexyglob.Options, error) {
	key := func(name string) string { return prefix + "." + name }

	opts := vexyglob.Options{
		Root:           viper.GetString(key("root")),
		FileType:       viper.GetString(key("type")),
		Extensions:     viper.GetStringSlice(key("extension")),
		Exclude:        viper.GetStringSlice(key("exclude")),
		MaxDepth:       viper.GetInt(key("depth")),
		Hidden:         viper.GetBool(key("hidden")),
		IgnoreGit:      viper.GetBool(key("no-gitignore")),
		FollowSymlinks: viper.GetBool(key("follow-symlinks")),
		SameFileSystem: viper.GetBool(key("same-file-system")),
		Threads:        viper.GetInt(key("threads")),
	}

	if viper.GetBool(key("verbose")) {
		opts.LogLevel = vexyglob.LogLevelDebug
	}

	if v := viper.GetString(key("case-sensitive")); v != "" {
		switch strings.ToLower(v) {
		case "true", "yes", "1":
			t := true
			opts.CaseSensitive = &t
		case "false", "no", "0":
			f := false
			opts.CaseSensitive = &f
		default:
			return opts, fmt.Errorf("invalid case-sensitive value %q (use true or false)", v)
		}
	}

	if v := viper.GetString(key("min-size")); v != "" {
		n, err := vexyglob.ParseSize(v)
		if err != nil {
			return opts, err
		}
		opts.MinSize = n
	}
	if v := viper.GetString(key("max-size")); v != "" {
		n, err := vexyglob.ParseSize(v)
		if err != nil {
			return opts, err
		}
		opts.MaxSize = n
	}

	if v := viper.GetString(key("mtime-after")); v != "" {
		t, err := vexyglob.ParseTime(v)
		if err != nil {
			return opts, err
		}
		opts.MTimeAfter = t
	}
	if v := viper.GetString(key("mtime-before")); v != "" {
		t, err := vexyglob.ParseTime(v)
		if err != nil {
			return opts, err
		}
		opts.MTimeBefore = t
	}

	return opts, nil
}

// printLine writes one output line, exiting cleanly when the downstream end
// of a pipe has gone away.
func printLine(s string) {
	if _, err := fmt.Fprintln(os.Stdout, s); err != nil && errors.Is(err, syscall.EPIPE) {
		os.Exit(0)
	}
}
