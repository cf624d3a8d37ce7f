package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"artcat/internal/gen"
)

var genDryRun bool

var genCmd = &cobra.Command{
	Use:   "gen [project-root]",
	Short: "Generate analysis outputs via the external CLI",
	Long: `Gen invokes the configured analysis CLI once per output and writes
each result file. Existing destinations are skipped, never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		outcome := gen.New(cfg.Gen).Run(cmd.Context(), root, genDryRun)

		for _, p := range outcome.Planned {
			fmt.Println("would write:", p)
		}
		for _, p := range outcome.Written {
			fmt.Println("written:", p)
		}
		for _, p := range outcome.Skipped {
			fmt.Println("skipped:", p)
		}
		for _, e := range outcome.Errors {
			fmt.Println("error:", e)
		}

		if len(outcome.Errors) > 0 {
			return errors.New("generation finished with errors")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "report intended outputs without invoking the CLI")
}
