// Command cpc-etl runs the CPC bulk data pipeline: download the archives,
// parse the title list into a dataset and validate every symbol against
// the reference sources.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gocpc/cpc"
	"github.com/gocpc/cpc/config"
	"github.com/gocpc/cpc/dataset"
	"github.com/gocpc/cpc/engine"
	"github.com/gocpc/cpc/fetch"
	"github.com/gocpc/cpc/titles"
	"github.com/gocpc/cpc/worker"
)

// maxReportedInvalid caps the invalid symbols detailed in the log.
const maxReportedInvalid = 10

type app struct {
	configPath string
	dataDir    string
	workers    int
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cpc-etl",
		Short:         "ETL pipeline for the CPC classification scheme",
		Version:       cpc.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default cpc-etl.yaml if present)")
	root.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", "", "base data directory (overrides config)")
	root.PersistentFlags().IntVarP(&a.workers, "workers", "w", 0, "validation parallelism (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newVersionsCmd(a))
	return root
}

func (a *app) setup() error {
	logger, err := newLogger(a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	cfg, err := config.NewLoader(logger).Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	if a.workers > 0 {
		cfg.Validation.Workers = a.workers
	}
	a.cfg = cfg
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func (a *app) newFetcher() *fetch.Fetcher {
	opts := []fetch.Option{fetch.WithLogger(a.logger)}
	if a.cfg.Fetch.BaseURL != "" {
		opts = append(opts, fetch.WithBaseURL(a.cfg.Fetch.BaseURL))
	}
	return fetch.New(a.cfg.Data.RawDir(), opts...)
}

// resolveVersion returns the pinned release or asks the fetcher for the
// newest one.
func (a *app) resolveVersion(ctx context.Context) (string, error) {
	if v := a.cfg.Fetch.Version; v != "" {
		if !cpc.ValidRelease(v) {
			return "", fmt.Errorf("invalid release token %q", v)
		}
		return v, nil
	}
	return a.newFetcher().LatestVersion(ctx)
}

func (a *app) newValidator(version string) *engine.Validator {
	return engine.New(
		cpc.WithDataDir(a.cfg.Data.RawDir()),
		cpc.WithVersion(version),
		cpc.WithWorkerCount(a.cfg.Validation.Workers),
		cpc.WithParallelLoad(a.cfg.Validation.ParallelLoad),
		cpc.WithLogger(a.logger),
	)
}

func newRunCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the complete pipeline: fetch, parse, validate, write",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			version, err := a.resolveVersion(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("running pipeline", zap.String("version", version))

			fetcher := a.newFetcher()
			files, err := fetcher.Download(ctx, version, force || a.cfg.Fetch.Force)
			if err != nil {
				return err
			}
			a.logger.Info("archives ready", zap.Int("count", len(files)))

			parser := titles.NewParser()
			records, err := parser.ParseArchive(titles.ArchiveFor(a.cfg.Data.RawDir(), version))
			if err != nil {
				return err
			}
			a.logger.Info("title list parsed", zap.Int("records", len(records)))

			validator := a.newValidator(version)
			if err := validator.Initialize(ctx); err != nil {
				return err
			}

			symbols := make([]string, len(records))
			for i, r := range records {
				symbols[i] = r.Symbol
			}
			batch := worker.NewBatchValidator(validator, a.cfg.Validation.Workers).
				ValidateBatch(ctx, symbols)

			verdicts := make([]dataset.Verdict, 0, len(batch.Results))
			for _, jr := range batch.Results {
				if jr == nil {
					continue
				}
				verdicts = append(verdicts, dataset.Verdict{Symbol: jr.Symbol, Result: jr.Result})
			}
			reportInvalid(a.logger, batch)

			return a.writeOutputs(version, records, verdicts)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force re-download of archives")
	return cmd
}

func reportInvalid(logger *zap.Logger, batch *worker.BatchResult) {
	invalid := batch.InvalidSymbols()
	if len(invalid) == 0 {
		logger.Info("all symbols valid", zap.Int("total", batch.TotalJobs))
		return
	}

	logger.Warn("invalid symbols found",
		zap.Int("invalid", len(invalid)),
		zap.Int("total", batch.TotalJobs))
	for i, jr := range invalid {
		if i >= maxReportedInvalid {
			logger.Warn("more invalid symbols omitted", zap.Int("omitted", len(invalid)-maxReportedInvalid))
			break
		}
		if jr.Result != nil {
			logger.Warn("invalid symbol",
				zap.String("symbol", jr.Symbol),
				zap.Strings("warnings", jr.Result.Warnings))
		}
	}
}

func (a *app) writeOutputs(version string, records []titles.TitleRecord, verdicts []dataset.Verdict) error {
	if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
		return err
	}

	ext := a.cfg.Output.Format
	titlesPath := filepath.Join(a.cfg.Output.Dir, "cpc_titles_"+version+"."+ext)
	reportPath := filepath.Join(a.cfg.Output.Dir, "cpc_validation_"+version+"."+ext)

	if err := writeTitlesFile(titlesPath, ext, records); err != nil {
		return err
	}
	if err := writeReportFile(reportPath, ext, verdicts); err != nil {
		return err
	}

	a.logger.Info("outputs written",
		zap.String("titles", titlesPath),
		zap.String("report", reportPath))
	return nil
}

func writeTitlesFile(path, format string, records []titles.TitleRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w dataset.Writer
	if format == "jsonl" {
		w = dataset.NewJSONLWriter(f)
	} else {
		w = dataset.NewCSVWriter(f)
	}
	return w.WriteTitles(records)
}

func writeReportFile(path, format string, verdicts []dataset.Verdict) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w dataset.ReportWriter
	if format == "jsonl" {
		w = dataset.NewJSONLWriter(f)
	} else {
		w = dataset.NewReportCSVWriter(f)
	}
	return w.WriteReport(verdicts)
}

func newParseCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "parse <title-archive.zip>",
		Short: "Parse a title list archive into a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := titles.NewParser().ParseArchive(args[0])
			if err != nil {
				return err
			}
			a.logger.Info("title list parsed", zap.Int("records", len(records)))

			if out == "" {
				return dataset.NewCSVWriter(cmd.OutOrStdout()).WriteTitles(records)
			}
			return writeTitlesFile(out, a.cfg.Output.Format, records)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout as CSV)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "validate <symbol>...",
		Short: "Validate classification symbols against the reference data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if version == "" {
				v, err := a.resolveVersion(ctx)
				if err != nil {
					return err
				}
				version = v
			}

			validator := a.newValidator(version)
			results, err := validator.ValidateAll(ctx, args)
			if err != nil {
				return err
			}

			verdicts := make([]dataset.Verdict, len(results))
			for i, r := range results {
				verdicts[i] = dataset.Verdict{Symbol: args[i], Result: r}
			}
			if a.cfg.Output.Format == "jsonl" {
				return dataset.NewJSONLWriter(cmd.OutOrStdout()).WriteReport(verdicts)
			}
			return dataset.NewReportCSVWriter(cmd.OutOrStdout()).WriteReport(verdicts)
		},
	}

	cmd.Flags().StringVar(&version, "release", "", "release token (default: resolve latest)")
	return cmd
}

func newVersionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List release tokens published on the bulk download page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			versions, err := a.newFetcher().AvailableVersions(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
