// Command texsrc fetches and inspects document source archives.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/texsrc"
)

// endpointEnv overrides the default endpoint when set.
const endpointEnv = "TEXSRC_ENDPOINT"

var errNoEntry = errors.New("no such entry")

type rootOptions struct {
	endpoint  string
	userAgent string
	verbose   bool
	logger    *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "texsrc",
		Short:         "Fetch and inspect document source archives",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	endpoint := texsrc.DefaultEndpoint
	if v := os.Getenv(endpointEnv); v != "" {
		endpoint = v
	}
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", endpoint, "Base URL document identifiers are appended to (env "+endpointEnv+")")
	cmd.PersistentFlags().StringVar(&opts.userAgent, "user-agent", texsrc.DefaultUserAgent, "User-Agent header for downloads")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newFetchCmd(opts),
		newLsCmd(opts),
		newCatCmd(opts),
		newSniffCmd(opts),
	)
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) client() (*texsrc.Client, error) {
	client, err := texsrc.NewClient(
		texsrc.WithEndpoint(o.endpoint),
		texsrc.WithUserAgent(o.userAgent),
		texsrc.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (o *rootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}
