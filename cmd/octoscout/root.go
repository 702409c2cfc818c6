package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/octoscout/internal/app"
	"github.com/five82/octoscout/internal/config"
	"github.com/five82/octoscout/internal/prefs"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type runFunc func(ctx context.Context, opts app.Options) error

// newRootCmd builds the octoscout command. runner receives the parsed
// options and is app.Run outside of tests.
func newRootCmd(runner runFunc) *cobra.Command {
	var (
		opts    app.Options
		baseURL string
		logFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:          "octoscout [query]",
		Short:        "Search GitHub users and browse their repositories",
		Long:         `octoscout is a terminal UI for finding GitHub users by name and expanding each one to see their public repositories, most recently updated first.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Version = version
			if len(args) == 1 {
				opts.InitialQuery = args[0]
			}
			opts.Overrides = config.Overrides{
				APIBaseURL: baseURL,
				LogFile:    logFile,
				Verbose:    verbose,
			}
			return runner(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("octoscout %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default "+prefs.DefaultPath()+")")
	flags.StringVar(&baseURL, "base-url", "", "GitHub API base URL")
	flags.StringVar(&logFile, "log-file", "", "log file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return root
}
