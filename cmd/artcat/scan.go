package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"artcat/internal/catalog"
	"artcat/internal/config"
	"artcat/internal/history"
	"artcat/internal/logger"
	"artcat/internal/reconcile"
	"artcat/internal/scan"
	"artcat/internal/tabfile"
	"artcat/internal/validate"
)

var (
	scanOut      string
	scanValidate bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan all roots and update the inventory table",
	Long: `Scan walks every configured root, extracts candidate records,
reconciles them against the existing table and rewrites it in place.
Fields the extractors cannot fill keep their prior values.

A missing table means a fresh inventory; an unreadable one aborts the
run so curated data is never clobbered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tablePath := cfg.TablePath
		if scanOut != "" {
			tablePath = scanOut
		}

		summary, err := runPipeline(cmd.Context(), cfg, tablePath)
		if err != nil {
			return err
		}

		printSummary(summary)

		if scanValidate {
			violations := validate.CheckTable(summary.Result.Table, summary.PriorRows, cfg.TolerancePct)
			for _, v := range violations {
				fmt.Println(v)
			}
			if len(validate.Errors(violations)) > 0 {
				return errors.New("validation failed")
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanOut, "out", "", "write the table to this path instead of the configured one")
	scanCmd.Flags().BoolVar(&scanValidate, "validate", false, "validate the resulting table and fail on errors")
}

// pipelineSummary bundles everything one pass produced, for the run
// report and the history store.
type pipelineSummary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	TablePath string
	PriorRows int
	Scan      catalog.ScanResult
	Result    reconcile.Result
}

// runPipeline is the one full pass: scan, reconcile against the prior
// table, write, record. Both the scan and watch commands go through it.
func runPipeline(ctx context.Context, cfg *config.Config, tablePath string) (*pipelineSummary, error) {
	summary := &pipelineSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		TablePath: tablePath,
	}

	scanResult := scan.New(cfg).Scan(ctx)
	summary.Scan = scanResult

	var prior []catalog.Record
	var priorWarnings []string
	table, err := loadPriorTable(tablePath)
	if err != nil {
		return nil, err
	}
	if table != nil {
		prior = table.Records
		summary.PriorRows = len(table.Records)
		priorWarnings = table.Warnings
	}

	result := reconcile.Reconcile(prior, scanResult.Records, cfg.LocalOrigin)
	result.Warnings = append(priorWarnings, result.Warnings...)
	summary.Result = result

	if err := tabfile.Write(tablePath, result.Table); err != nil {
		return nil, catalog.Fatal("write table", err)
	}

	summary.Duration = time.Since(summary.StartedAt)
	recordRun(cfg, summary)

	return summary, nil
}

// loadPriorTable distinguishes "no table yet" from "table unreadable".
// The first is a fresh run; the second must abort before anything is
// overwritten.
func loadPriorTable(path string) (*tabfile.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, catalog.Fatal("stat table", err)
	}

	table, err := tabfile.Read(path)
	if err != nil {
		return nil, catalog.Fatal("read prior table", err)
	}
	return table, nil
}

func recordRun(cfg *config.Config, summary *pipelineSummary) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		logger.Warn("history store unavailable", "error", err)
		return
	}
	defer store.Close()

	counts := make(map[catalog.Kind]int)
	for _, rec := range summary.Result.Table {
		counts[rec.Kind]++
	}

	run := history.Run{
		ID:               summary.RunID,
		StartedAt:        summary.StartedAt,
		Duration:         summary.Duration,
		TotalRecords:     len(summary.Result.Table),
		ExtractionErrors: len(summary.Scan.Errors),
		MergeWarnings:    len(summary.Result.Warnings),
		OutputPath:       summary.TablePath,
		CountsByKind:     counts,
	}
	if err := store.RecordRun(run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

func printSummary(summary *pipelineSummary) {
	stats := summary.Result.Stats
	fmt.Printf("Wrote %d records to %s (%d inserted, %d merged, %d aliased, %d deduped) in %s\n",
		len(summary.Result.Table), summary.TablePath,
		stats.Inserted, stats.Merged, stats.Aliased, stats.Deduped,
		summary.Duration.Round(time.Millisecond))

	counts := make(map[catalog.Kind]int)
	for _, rec := range summary.Result.Table {
		counts[rec.Kind]++
	}
	for _, kind := range catalog.Kinds {
		if counts[kind] > 0 {
			fmt.Printf("  %-14s %d\n", kind, counts[kind])
		}
	}

	for _, e := range summary.Scan.Errors {
		fmt.Printf("extraction error: %s\n", e)
	}
	for _, w := range summary.Result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}
