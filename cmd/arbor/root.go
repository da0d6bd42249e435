package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "arbor draws CSV tables and HTML documents as text trees",
	Long: `arbor builds a tree from CSV text or an HTML document and prints it
as a tree-command style diagram.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The context is cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	ctx.Cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("style", "", "Glyph style: classic or guides")
	rootCmd.PersistentFlags().String("color", "", "Colour output: auto, always or never")
	rootCmd.PersistentFlags().String("format", cli.FormatText, "Output format: text or mermaid")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().Bool("debug", false, "Shorthand for --log-level debug")
	rootCmd.PersistentFlags().Bool("verify", false, "Check tree invariants before rendering")
}

// loadSettings reads the config file and applies flags the user set on top.
func loadSettings(cmd *cobra.Command) (cli.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cli.Settings{}, err
	}

	overrides := map[string]*string{
		"style":     &cfg.Render.Style,
		"color":     &cfg.Render.Color,
		"log-level": &cfg.Log.Level,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}

	s := cli.Settings{Config: cfg}
	s.Verify, _ = cmd.Flags().GetBool("verify")
	s.Format, _ = cmd.Flags().GetString("format")
	return s, nil
}

func streams(cmd *cobra.Command) cli.Streams {
	return cli.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	}
}
