package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"artcat/internal/catalog"
	"artcat/internal/reconcile"
	"artcat/internal/tabfile"
)

var mergeOut string

var mergeCmd = &cobra.Command{
	Use:   "merge <base> <incoming>",
	Short: "Merge two inventory tables into one",
	Long: `Merge reconciles the incoming table into the base table. Incoming
non-empty fields win; base-only records are retained; duplicates are
resolved last-wins with a warning.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := tabfile.Read(args[0])
		if err != nil {
			return catalog.Fatal("read base table", err)
		}
		incoming, err := tabfile.Read(args[1])
		if err != nil {
			return catalog.Fatal("read incoming table", err)
		}

		result := reconcile.Reconcile(base.Records, incoming.Records, cfg.LocalOrigin)

		out := mergeOut
		if out == "" {
			out = args[0]
		}
		if err := tabfile.Write(out, result.Table); err != nil {
			return catalog.Fatal("write merged table", err)
		}

		fmt.Printf("Merged %d + %d rows into %d at %s\n",
			len(base.Records), len(incoming.Records), len(result.Table), out)
		for _, w := range append(append(base.Warnings, incoming.Warnings...), result.Warnings...) {
			fmt.Printf("warning: %s\n", w)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeOut, "out", "", "write the merged table here instead of overwriting the base")
}
