package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"artcat/internal/catalog"
	"artcat/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.History.DBPath)
		if err != nil {
			return catalog.Fatal("open history store", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("%s  %s  %d records  %d errors  %d warnings  %s\n",
				run.StartedAt.Local().Format(time.RFC3339),
				run.Duration.Round(time.Millisecond),
				run.TotalRecords, run.ExtractionErrors, run.MergeWarnings,
				run.OutputPath)
			for _, kind := range catalog.Kinds {
				if run.CountsByKind[kind] > 0 {
					fmt.Printf("    %-14s %d\n", kind, run.CountsByKind[kind])
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
}
