package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the tree builders over HTTP:

  POST /v1/trees/csv?layout=&style=&format=   CSV body
  POST /v1/trees/markup?style=&format=        HTML body
  GET  /v1/trees/markup?url=                  fetch and convert
  GET  /healthz, /version, /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			s.Config.Serve.Addr, _ = cmd.Flags().GetString("addr")
		}

		return cli.Serve(cmd.Context(), s, streams(cmd), nil)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from config, :8080)")
}
