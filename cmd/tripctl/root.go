package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appLogger "github.com/FACorreiaa/go-trip-planner/app/logger"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type rootOptions struct {
	output  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tripctl",
		Short: "Offline tools for the trip planner",
		Long: `tripctl runs the trip planner's pure core without a server:

  plan       allocate a day-by-day plan from a YAML destination catalog
  normalize  coerce an itinerary JSON payload into the canonical shape
  token      sign a development access token`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("unsupported output format %q (want json or yaml)", opts.output)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "Output format: json or yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log planner warnings to stderr")

	cmd.AddCommand(newPlanCmd(opts), newNormalizeCmd(opts), newTokenCmd(opts))
	return cmd
}

// Execute runs the command tree with signal handling.
func Execute(ctx context.Context, args []string) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// logger discards everything unless --verbose is set.
func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return appLogger.New(cmd.ErrOrStderr(), "development")
}

func (o *rootOptions) write(w io.Writer, v any) error {
	if o.output == outputYAML {
		// round trip through JSON so the yaml keys match the API's json tags
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		var generic any
		if err = yaml.Unmarshal(b, &generic); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(generic)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
