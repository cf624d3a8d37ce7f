package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"artcat/internal/catalog"
	"artcat/internal/tabfile"
	"artcat/internal/validate"
)

var validateExpect int

var validateCmd = &cobra.Command{
	Use:   "validate [table]",
	Short: "Check an inventory table against the schema invariants",
	Long: `Validate checks row structure, kind and status enums, and identity
key uniqueness. With --expect it also warns when the row count drifts
outside the configured tolerance band. Errors set a non-zero exit
code; warnings do not.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.TablePath
		if len(args) == 1 {
			path = args[0]
		}

		rows, err := tabfile.ReadRows(path)
		if err != nil {
			return catalog.Fatal("read table", err)
		}
		violations := validate.CheckRows(rows)

		table, err := tabfile.Read(path)
		if err != nil {
			return catalog.Fatal("read table", err)
		}
		violations = append(violations, validate.CheckTable(table.Records, validateExpect, cfg.TolerancePct)...)

		for _, v := range violations {
			fmt.Println(v)
		}

		errs := validate.Errors(violations)
		fmt.Printf("%d rows checked: %d errors, %d warnings\n",
			len(rows), len(errs), len(violations)-len(errs))

		if len(errs) > 0 {
			return errors.New("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().IntVar(&validateExpect, "expect", 0, "prior row count for the drift tolerance check (0 disables)")
}
