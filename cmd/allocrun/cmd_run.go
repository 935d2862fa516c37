package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/allocrun/allocrun/internal/artifacts"
	"github.com/allocrun/allocrun/internal/config"
	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/levelrel"
	"github.com/allocrun/allocrun/internal/metrics"
	"github.com/allocrun/allocrun/internal/rules"
)

// runCmd applies a rule to one or more input CSV files
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply an allocation rule to input CSV files",
	Long: `Apply an allocation rule to one or more CSV time series and write the
allocation column plus a JSON run summary into the output directory.

Examples:
  allocrun run --rule level_relationship --input prices.csv
  allocrun run --rule sma_crossover --input a.csv --input b.csv --output out
  allocrun run --config allocrun.yaml --input prices.csv --metrics-addr :9090`,
	RunE: runRun,
}

var (
	runRule        string
	runInputs      []string
	runOutputDir   string
	runConfigFile  string
	runConcurrency int
	runMetricsAddr string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runRule, "rule", "", "Allocation rule to apply (default from config)")
	runCmd.Flags().StringSliceVar(&runInputs, "input", nil, "Input CSV file (repeatable)")
	runCmd.Flags().StringVar(&runOutputDir, "output", "", "Output directory for results")
	runCmd.Flags().StringVar(&runConfigFile, "config", "", "YAML configuration file")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "Max input files processed in parallel")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address while running")

	runCmd.MarkFlagRequired("input")
}

// runSummary is the JSON record written next to each allocation CSV.
type runSummary struct {
	Rule          string           `json:"rule"`
	Input         string           `json:"input"`
	Rows          int              `json:"rows"`
	ElapsedMs     float64          `json:"elapsed_ms"`
	AllocationCSV string           `json:"allocation_csv"`
	WalkForward   *levelrel.Result `json:"walk_forward,omitempty"`
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigFile)
	if err != nil {
		return err
	}
	applyRunFlags(cfg)

	def, ok := rules.Get(cfg.Run.Rule)
	if !ok {
		return fmt.Errorf("unknown rule %q, see 'allocrun rules'", cfg.Run.Rule)
	}
	params, err := rules.DecodeParams(def, &cfg.Run.Params)
	if err != nil {
		return err
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.New(prometheus.DefaultRegisterer)
		srv := metrics.Serve(cfg.Metrics.Addr)
		defer srv.Close()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listener started")
	}

	writer := artifacts.NewWriter(cfg.Run.OutputDir)

	log.Info().
		Str("command", "run").
		Str("rule", def.Name).
		Int("inputs", len(runInputs)).
		Int("concurrency", cfg.Run.Concurrency).
		Msg("starting rule run")

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Run.Concurrency)
	for _, input := range runInputs {
		input := input
		g.Go(func() error {
			return processInput(def, params, input, writer, recorder)
		})
	}
	return g.Wait()
}

func processInput(def rules.Definition, params any, input string, writer *artifacts.Writer, recorder *metrics.Recorder) error {
	started := time.Now()

	f, err := frame.FromCSV(input)
	if err != nil {
		recordRun(recorder, def.Name, "error")
		return err
	}
	if err := f.Require(def.Series...); err != nil {
		recordRun(recorder, def.Name, "error")
		return fmt.Errorf("input %s: %w", input, err)
	}

	report, err := def.Apply(f, params)
	if err != nil {
		recordRun(recorder, def.Name, "error")
		return fmt.Errorf("apply rule %q to %s: %w", def.Name, input, err)
	}
	elapsed := time.Since(started)

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	csvPath, err := writer.WriteFrameCSV(name+"-"+def.Name, f)
	if err != nil {
		return err
	}

	summary := runSummary{
		Rule:          def.Name,
		Input:         input,
		Rows:          f.Len(),
		ElapsedMs:     float64(elapsed.Microseconds()) / 1000.0,
		AllocationCSV: csvPath,
	}
	if res, ok := report.(*levelrel.Result); ok {
		summary.WalkForward = res
		if recorder != nil {
			recorder.RecordWindows(res.Fitted, res.Degenerate)
		}
	}
	summaryPath, err := writer.WriteJSON(name+"-"+def.Name+"-summary", summary)
	if err != nil {
		return err
	}

	recordRun(recorder, def.Name, "ok")
	if recorder != nil {
		recorder.RecordRunDuration(def.Name, elapsed)
	}

	log.Info().
		Str("rule", def.Name).
		Str("input", input).
		Int("rows", f.Len()).
		Dur("elapsed", elapsed).
		Str("allocation_csv", csvPath).
		Str("summary", summaryPath).
		Msg("rule run complete")
	return nil
}

func recordRun(recorder *metrics.Recorder, rule, status string) {
	if recorder != nil {
		recorder.RecordRuleRun(rule, status)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// applyRunFlags lets command-line flags override the loaded config.
func applyRunFlags(cfg *config.Config) {
	if runRule != "" {
		cfg.Run.Rule = runRule
	}
	if runOutputDir != "" {
		cfg.Run.OutputDir = runOutputDir
	}
	if runConcurrency > 0 {
		cfg.Run.Concurrency = runConcurrency
	}
	if runMetricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = runMetricsAddr
	}
}
