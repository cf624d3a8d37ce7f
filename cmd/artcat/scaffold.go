package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"artcat/internal/scaffold"
)

var scaffoldDryRun bool

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold [project-root]",
	Short: "Create the standard directory layout under a project root",
	Long: `Scaffold creates the configured directory tree. Existing directories
are left untouched, so rerunning is always safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		result, err := scaffold.Apply(root, cfg.Scaffold, scaffoldDryRun)
		if err != nil {
			return err
		}

		for _, p := range result.Planned {
			fmt.Println("would create:", p)
		}
		for _, p := range result.Created {
			fmt.Println("created:", p)
		}
		for _, p := range result.Skipped {
			fmt.Println("exists:", p)
		}
		for _, e := range result.Errors {
			fmt.Println("error:", e)
		}

		if !result.OK() {
			return errors.New("scaffold finished with errors")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)
	scaffoldCmd.Flags().BoolVar(&scaffoldDryRun, "dry-run", false, "report intended actions without touching the filesystem")
}
