package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "photo-tools",
	Short: "photo-tools 🖼 - batch-square images onto solid color canvases",
	Long: "photo-tools 🖼 squares whole directories of product and catalog photos: " +
		"each image is scaled to fit, centered on a solid background canvas, and " +
		"re-encoded at a chosen quality.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

// newLogger builds the console logger shared by the subcommands. Output goes
// to stderr so the progress UI keeps stdout to itself; verbose lowers the
// level from Warn to Debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
