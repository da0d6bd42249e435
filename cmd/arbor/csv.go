package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var csvCmd = &cobra.Command{
	Use:   "csv [file|-]",
	Short: "Draw a CSV table as a tree",
	Long: `Reads CSV text from a file (or stdin when the argument is "-" or absent)
and prints it as a tree.

Layouts:
- columns (default): one node per header column holding that column's cells.
- rows: a single Header node holding one node per data row, fields joined by " | ".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		flags := map[string]*string{
			"layout":     &s.Config.CSV.Layout,
			"ragged":     &s.Config.CSV.RaggedRows,
			"delimiter":  &s.Config.CSV.Delimiter,
			"root-label": &s.Config.CSV.RootLabel,
		}
		for name, dst := range flags {
			if cmd.Flags().Changed(name) {
				*dst, _ = cmd.Flags().GetString(name)
			}
		}
		if cmd.Flags().Changed("lazy-quotes") {
			s.Config.CSV.LazyQuotes, _ = cmd.Flags().GetBool("lazy-quotes")
		}

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		return cli.RunCSV(cmd.Context(), s, path, streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(csvCmd)

	csvCmd.Flags().StringP("layout", "l", "", "Tree layout: columns or rows")
	csvCmd.Flags().String("ragged", "", "Rows whose width differs from the header: strict, pad or skip")
	csvCmd.Flags().StringP("delimiter", "d", "", `Field delimiter (a single character, or "tab")`)
	csvCmd.Flags().String("root-label", "", "Label of the root node")
	csvCmd.Flags().Bool("lazy-quotes", false, "Tolerate malformed quotes")
}
