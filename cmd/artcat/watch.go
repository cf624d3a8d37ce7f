package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"artcat/internal/config"
	"artcat/internal/logger"
	"artcat/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan whenever artifact files change",
	Long: `Watch runs one full scan, then keeps the table current by rerunning
the pipeline whenever files under the configured roots change. Bursts
of changes collapse into a single rescan. Ctrl+C stops it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\nstopping")
			cancel()
		}()

		summary, err := runPipeline(ctx, cfg, cfg.TablePath)
		if err != nil {
			return err
		}
		printSummary(summary)

		rescan := func(paths []string) {
			logger.Info("changes detected, rescanning", "files", len(paths))
			summary, err := runPipeline(ctx, cfg, cfg.TablePath)
			if err != nil {
				logger.Error("rescan failed", "error", err)
				return
			}
			printSummary(summary)
		}

		watcher, err := watch.New(cfg.Watch, rescan)
		if err != nil {
			return err
		}
		defer watcher.Stop()

		for _, root := range allRoots(cfg) {
			if err := watcher.AddRoot(root.Path); err != nil {
				return err
			}
		}

		watcher.Start(ctx)
		<-ctx.Done()
		return nil
	},
}

func allRoots(cfg *config.Config) []config.Root {
	var roots []config.Root
	roots = append(roots, cfg.Roots.Tools...)
	roots = append(roots, cfg.Roots.Commands...)
	roots = append(roots, cfg.Roots.Scripts...)
	roots = append(roots, cfg.Roots.Validators...)
	roots = append(roots, cfg.Roots.Schemas...)
	roots = append(roots, cfg.Roots.Sheets...)
	return roots
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
