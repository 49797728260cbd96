// Package main provides the docfill CLI: a web server and a one-shot fill.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/aerissecure/docfill"
	"github.com/aerissecure/docfill/config"
	"github.com/aerissecure/docfill/output"
	"github.com/aerissecure/docfill/web"
	"github.com/aerissecure/docfill/xlsx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		slog.Error("docfill failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, args []string) error {
	root := newRootCmd(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// options are the flags shared by both subcommands.
type options struct {
	configFile string
	addr       string

	spreadsheet string
	template    string
	sheet       string
	column      string
	outDir      string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "docfill",
		Short:         "Fill <fN> placeholders in a Word template from an Excel column",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to YAML configuration file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, out, opts)
		},
	}
	serve.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config, :8080)")

	fill := &cobra.Command{
		Use:   "fill",
		Short: "Fill a template once and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFill(cmd, out, opts)
		},
	}
	fill.Flags().StringVar(&opts.spreadsheet, "spreadsheet", "", "Path to the .xlsx file")
	fill.Flags().StringVar(&opts.template, "template", "", "Path to the .docx template")
	fill.Flags().StringVar(&opts.sheet, "sheet", "", "Sheet name (default from config)")
	fill.Flags().StringVar(&opts.column, "column", "", "Column letter (default from config)")
	fill.Flags().StringVar(&opts.outDir, "out-dir", "", "Output directory (default from config)")

	root.AddCommand(serve, fill)
	return root
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command, out io.Writer, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = v
		}
	}
	override("addr", &cfg.Listen, opts.addr)
	override("sheet", &cfg.Sheet, opts.sheet)
	override("column", &cfg.Column, opts.column)
	override("out-dir", &cfg.OutputDir, opts.outDir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, nil
}

// newFiller builds the reader and the sink chain: the output directory
// first, then S3 when a bucket is configured.
func newFiller(ctx context.Context, cfg *config.Config) (*docfill.Filler, *output.LocalDir, error) {
	reader, err := xlsx.NewReader(cfg.Reader)
	if err != nil {
		return nil, nil, err
	}

	local := output.NewLocalDir(cfg.OutputDir)
	var sink output.Sink = local
	if cfg.S3.Bucket != "" {
		slog.Info("Enabling S3 upload", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
		}
		sink = output.Chain{local, output.NewS3Uploader(awsCfg, cfg.S3.Bucket, cfg.S3.Prefix)}
	}
	return docfill.New(reader, sink), local, nil
}

func runServe(cmd *cobra.Command, out io.Writer, opts *options) error {
	cfg, err := loadConfig(cmd, out, opts)
	if err != nil {
		return err
	}
	filler, local, err := newFiller(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return web.New(cfg, filler, local).ListenAndServe(cmd.Context(), cfg.Listen)
}

func runFill(cmd *cobra.Command, out io.Writer, opts *options) error {
	cfg, err := loadConfig(cmd, out, opts)
	if err != nil {
		return err
	}
	filler, _, err := newFiller(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	req, err := docfill.RequestFromFiles(opts.spreadsheet, opts.template, cfg.Sheet, cfg.Column)
	if err != nil {
		return err
	}
	res, err := filler.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Document saved successfully as %s\n", res.Path)
	fmt.Fprintf(out, "Time taken: %.2f seconds\n", res.Elapsed.Seconds())
	return nil
}
