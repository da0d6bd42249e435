package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var markupCmd = &cobra.Command{
	Use:     "markup <url>",
	Aliases: []string{"html"},
	Short:   "Draw an HTML document as a tree",
	Long: `Fetches an HTML document and prints its element tree. Elements are shown by
tag name and non-blank text by its trimmed content.

Use --file to read a local document instead ("-" for stdin).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("timeout") {
			s.Config.Markup.Timeout, _ = cmd.Flags().GetDuration("timeout")
		}
		if cmd.Flags().Changed("comments") {
			s.Config.Markup.Comments, _ = cmd.Flags().GetBool("comments")
		}

		target, fromFile := "", false
		if cmd.Flags().Changed("file") {
			target, _ = cmd.Flags().GetString("file")
			fromFile = true
		} else if len(args) > 0 {
			target = args[0]
		}
		return cli.RunMarkup(cmd.Context(), s, target, fromFile, streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(markupCmd)

	markupCmd.Flags().StringP("file", "f", "", `Read a local document ("-" for stdin) instead of fetching`)
	markupCmd.Flags().Duration("timeout", 0, "Request timeout (e.g. 10s)")
	markupCmd.Flags().Bool("comments", true, "Include HTML comments as leaves (--comments=false drops them)")
}
