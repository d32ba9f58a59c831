package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/carmacs2023/photo-tools/internal/converter"
	"github.com/carmacs2023/photo-tools/internal/tui"
	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

var (
	planSource       string
	planWidth        int
	planFormat       string
	planRecursive    bool
	planExcludeExts  string
	planExcludeNames string
	planVerbose      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview which images a square run would convert, and how",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planWidth <= 0 {
			return fmt.Errorf("--width must be a positive pixel count, got %d", planWidth)
		}
		format, err := imgutil.ParseOutputFormat(planFormat)
		if err != nil {
			return err
		}

		log, err := newLogger(planVerbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		entries, skipped, err := converter.Plan(cmd.Context(), converter.Options{
			Source:            planSource,
			Size:              planWidth,
			Format:            format,
			Recursive:         planRecursive,
			ExcludeExtensions: splitList(planExcludeExts),
			ExcludeNames:      splitList(planExcludeNames),
		}, log)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			if entry.Err != nil {
				fmt.Fprintf(os.Stdout, "%s %s %s\n",
					planBulletStyle.Render("-"),
					planPathStyle.Render(entry.RelPath),
					planDimStyle.Render(fmt.Sprintf("unreadable: %v", entry.Err)),
				)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s %s %s\n",
				planBulletStyle.Render("-"),
				planPathStyle.Render(entry.RelPath),
				planGeomStyle.Render(fmt.Sprintf("%dx%d -> %dx%d at (%d,%d) as %s",
					entry.Width, entry.Height, entry.NewWidth, entry.NewHeight,
					entry.OffsetX, entry.OffsetY, entry.Output)),
			)
		}

		fmt.Fprintf(os.Stdout, "\n%s\n", planTotalStyle.Render(
			fmt.Sprintf("%d image(s) selected, %d skipped by filters", len(entries), skipped)))
		return nil
	},
}

var (
	planPathStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	planGeomStyle   = lipgloss.NewStyle().Foreground(tui.ColorInk)
	planDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	planBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
	planTotalStyle  = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
)

func init() {
	planCmd.Flags().StringVarP(&planSource, "source", "s", "", "source directory of images")
	planCmd.Flags().IntVarP(&planWidth, "width", "w", 0, "side length of the square output in pixels")
	planCmd.Flags().StringVarP(&planFormat, "output-format", "f", "jpg", "output format: jpg or png")
	planCmd.Flags().BoolVarP(&planRecursive, "recursive", "r", false, "descend into subdirectories")
	planCmd.Flags().StringVarP(&planExcludeExts, "exclude-format", "e", "", "comma-separated extensions to skip")
	planCmd.Flags().StringVarP(&planExcludeNames, "exclude-filenames", "x", "", "comma-separated filename substrings to skip")
	planCmd.Flags().BoolVar(&planVerbose, "verbose", false, "enable debug logging")

	_ = planCmd.MarkFlagRequired("source")
	_ = planCmd.MarkFlagRequired("width")

	rootCmd.AddCommand(planCmd)
}
