package cmd

import (
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carmacs2023/photo-tools/internal/converter"
	"github.com/carmacs2023/photo-tools/internal/tui"
	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

var (
	squareSource       string
	squareDestination  string
	squareWidth        int
	squareFormat       string
	squareColor        string
	squareRecursive    bool
	squareMirror       bool
	squareExcludeExts  string
	squareExcludeNames string
	squareQuality      int
	squareAutoOrient   bool
	squareWorkers      int
	squareQuiet        bool
	squareVerbose      bool
)

var squareCmd = &cobra.Command{
	Use:   "square",
	Short: "Convert a directory of images into uniform squares",
	RunE: func(cmd *cobra.Command, args []string) error {
		if squareWidth <= 0 {
			return fmt.Errorf("--width must be a positive pixel count, got %d", squareWidth)
		}
		format, err := imgutil.ParseOutputFormat(squareFormat)
		if err != nil {
			return err
		}

		log, err := newLogger(squareVerbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		background, err := imgutil.ParseHexColor(squareColor)
		if err != nil {
			log.Warn("invalid background color, using white",
				zap.String("color", squareColor),
				zap.Error(err),
			)
			background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := converter.Options{
			Source:            squareSource,
			Destination:       squareDestination,
			Size:              squareWidth,
			Format:            format,
			Background:        background,
			Quality:           squareQuality,
			Recursive:         squareRecursive,
			Mirror:            squareMirror,
			AutoOrient:        squareAutoOrient,
			Workers:           squareWorkers,
			ExcludeExtensions: splitList(squareExcludeExts),
			ExcludeNames:      splitList(squareExcludeNames),
		}

		var updates chan converter.ProgressUpdate
		uiDone := make(chan struct{})
		if squareQuiet {
			close(uiDone)
		} else {
			updates = make(chan converter.ProgressUpdate, 64)
			model := tui.NewModel(updates)
			program := tea.NewProgram(model)
			go func() {
				_, _ = program.Run()
				// Quitting the UI cancels the run: under the TUI, ctrl-c
				// arrives as a key event rather than a signal. Keep draining
				// so the pipeline never blocks while it winds down.
				stop()
				for range updates {
				}
				close(uiDone)
			}()
		}

		started := time.Now()
		summary, failures, err := converter.Run(ctx, opts, log, updates)
		if updates != nil {
			close(updates)
		}
		<-uiDone
		if err != nil {
			return err
		}

		for _, failure := range failures {
			fmt.Fprintf(os.Stdout, "%s %s %s\n",
				failMarkStyle.Render("x"),
				failPathStyle.Render(failure.RelPath),
				failCauseStyle.Render(failure.Err.Error()),
			)
		}

		rows := []tui.SummaryRow{
			{Label: "Images converted", Value: fmt.Sprintf("%d/%d", summary.Converted, summary.Attempted), Tone: tui.ColorSuccess},
			{Label: "Failed", Value: fmt.Sprintf("%d", summary.Failed)},
			{Label: "Skipped by filters", Value: fmt.Sprintf("%d", summary.Skipped)},
			{Label: "Output written", Value: tui.HumanBytes(summary.BytesWritten)},
			{Label: "Elapsed", Value: time.Since(started).Round(time.Millisecond).String()},
		}
		if summary.Failed > 0 {
			rows[1].Tone = tui.ColorError
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		dest := squareDestination
		if abs, absErr := filepath.Abs(dest); absErr == nil {
			dest = abs
		}
		fmt.Fprintf(os.Stdout, "Converted %d/%d image(s) to %s\n", summary.Converted, summary.Attempted, dest)
		return nil
	},
}

var (
	failMarkStyle  = lipgloss.NewStyle().Foreground(tui.ColorError)
	failPathStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorInk)
	failCauseStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func init() {
	squareCmd.Flags().StringVarP(&squareSource, "source", "s", "", "source directory of images")
	squareCmd.Flags().StringVarP(&squareDestination, "destination", "d", "", "destination directory for squared copies")
	squareCmd.Flags().IntVarP(&squareWidth, "width", "w", 0, "side length of the square output in pixels")
	squareCmd.Flags().StringVarP(&squareFormat, "output-format", "f", "", "output format: jpg or png")
	squareCmd.Flags().StringVarP(&squareColor, "output-color", "c", "ffffff", "background color as hex, e.g. ffffff or 1a2b3c")
	squareCmd.Flags().BoolVarP(&squareRecursive, "recursive", "r", false, "descend into subdirectories")
	squareCmd.Flags().BoolVarP(&squareMirror, "mirror-destination", "m", false, "replicate the source subtree under the destination (with --recursive)")
	squareCmd.Flags().StringVarP(&squareExcludeExts, "exclude-format", "e", "", "comma-separated extensions to skip, e.g. webp,heic")
	squareCmd.Flags().StringVarP(&squareExcludeNames, "exclude-filenames", "x", "", "comma-separated filename substrings to skip")
	squareCmd.Flags().IntVarP(&squareQuality, "output-quality", "q", 10, "quality on a 1-10 scale")
	squareCmd.Flags().BoolVar(&squareAutoOrient, "auto-orient", false, "apply EXIF orientation before compositing")
	squareCmd.Flags().IntVar(&squareWorkers, "workers", 0, "worker pool size (0 means one per CPU)")
	squareCmd.Flags().BoolVar(&squareQuiet, "quiet", false, "disable the progress display")
	squareCmd.Flags().BoolVar(&squareVerbose, "verbose", false, "enable debug logging")

	_ = squareCmd.MarkFlagRequired("source")
	_ = squareCmd.MarkFlagRequired("destination")
	_ = squareCmd.MarkFlagRequired("width")
	_ = squareCmd.MarkFlagRequired("output-format")

	rootCmd.AddCommand(squareCmd)
}
