package main

import (
	"errors"
	"fmt"
	"os"

	"jobmatch/internal/config"
	"jobmatch/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "jobmatch"

// Actual version can be specified in build command.
var version = "unknown"

type rootOptions struct {
	debug    bool
	jsonLogs bool
	profile  string
	mock     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "jobmatch scores job offers from France Travail and Adzuna against a candidate profile",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&opts.jsonLogs, "json", "j", false, "json format for logging")
	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "candidate profile file (yaml or json), overrides PROFILE_FILE")
	cmd.PersistentFlags().BoolVar(&opts.mock, "mock", false, "use the built-in mock postings instead of real sources")

	cmd.AddCommand(newMatchCmd(opts), newSkillsCmd(opts), newCacheCmd(opts), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appName, version)
		},
	}
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.mock {
		cfg.App.UseMockData = true
	}
	if o.profile != "" {
		cfg.Profile.File = o.profile
	}
	return cfg, nil
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return logger.NewStderr(o.jsonLogs, o.debug)
}
