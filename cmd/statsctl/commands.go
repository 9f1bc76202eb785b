package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/config"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/source"
)

type aggregateArgs struct {
	kind         string
	records      string
	satisfaction string
	name         string
	format       string
	timeout      time.Duration
	verbose      bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statsctl",
		Short:         "Aggregate volunteer project exports from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAggregateCmd(), newKindsCmd(), newCatalogueCmd())
	return root
}

func newAggregateCmd() *cobra.Command {
	var args aggregateArgs
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate one project's export (JSON or xlsx, local path or URL)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAggregate(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&args.kind, "kind", "", "project kind, see 'statsctl kinds'")
	f.StringVar(&args.records, "records", "", "activity log export")
	f.StringVar(&args.satisfaction, "satisfaction", "", "satisfaction survey export")
	f.StringVar(&args.name, "name", "", "display name override")
	f.StringVarP(&args.format, "format", "o", "json", "output format: json or yaml")
	f.DurationVar(&args.timeout, "timeout", 30*time.Second, "fetch timeout")
	f.BoolVarP(&args.verbose, "verbose", "v", false, "log fetches to stderr")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the supported project kinds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range aggregate.Kinds() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, k.DefaultName())
			}
			return nil
		},
	}
}

func newCatalogueCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Validate and print the project catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.LoadCatalogue(file)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), "yaml", c)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalogue file; the built-in one when empty")
	return cmd
}

func runAggregate(ctx context.Context, out io.Writer, args aggregateArgs) error {
	kind := aggregate.Kind(strings.TrimSpace(args.kind))
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", aggregate.ErrUnknownKind, args.kind)
	}
	format := strings.ToLower(args.format)
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q", args.format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := zap.NewNop()
	if args.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		defer logger.Sync()
	}

	loader := source.NewRouter(source.NewHTTPSource(args.timeout, logger), source.NewFileSource())

	ctx, cancel := context.WithTimeout(ctx, args.timeout)
	defer cancel()

	ds, err := loader.Load(ctx, args.records)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	var survey []aggregate.Record
	if args.satisfaction != "" {
		sds, err := loader.Load(ctx, args.satisfaction)
		if err != nil {
			return fmt.Errorf("load satisfaction: %w", err)
		}
		survey = sds.Records()
	}

	stats, err := aggregate.Aggregate(kind, ds.Input(survey))
	if err != nil {
		return err
	}
	if args.name != "" {
		stats.Name = args.name
	}
	return writeOutput(out, format, stats)
}

func writeOutput(out io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
