package converter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

// PlanEntry previews the geometry one conversion would produce.
type PlanEntry struct {
	RelPath   string
	Width     int
	Height    int
	NewWidth  int
	NewHeight int
	OffsetX   int
	OffsetY   int
	Output    string
	Err       error
}

// Plan walks and filters exactly like Run but converts nothing: it reads only
// image headers and reports the geometry each conversion would produce, plus
// the number of files the filters skipped. Unreadable headers are recorded on
// the entry and do not abort the listing.
func Plan(ctx context.Context, opts Options, log *zap.Logger) ([]PlanEntry, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}

	absSrc, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(absSrc)
	if err != nil {
		return nil, 0, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("source %s is not a directory", absSrc)
	}

	rules := NewRules(opts.ExcludeExtensions, opts.ExcludeNames)

	var entries []PlanEntry
	skipped := 0

	visit := func(fullPath, relPath string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(relPath)
		if rules.Excluded(name) || !imgutil.DecodableExtension(filepath.Ext(name)) {
			skipped++
			log.Debug("skipped", zap.String("path", relPath))
			return nil
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		entry := PlanEntry{
			RelPath: relPath,
			Output:  stem + opts.Format.Extension(),
		}

		config, err := decodeConfig(fullPath)
		if err != nil {
			entry.Err = err
			entries = append(entries, entry)
			return nil
		}

		entry.Width, entry.Height = config.Width, config.Height
		entry.NewWidth, entry.NewHeight = fitDimensions(config.Width, config.Height, opts.Size)
		entry.OffsetX, entry.OffsetY = centerOffsets(opts.Size, entry.NewWidth, entry.NewHeight)
		entries = append(entries, entry)
		return nil
	}

	if err := walkSource(ctx, absSrc, "", opts.Recursive, visit); err != nil {
		return entries, skipped, err
	}
	return entries, skipped, nil
}

// decodeConfig reads just enough of the file to learn its dimensions. When no
// decoder recognizes the data the header is sniffed so the listing can name
// the actual container instead of reporting an anonymous format error.
func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			if kind, sniffErr := imgutil.SniffFile(path); sniffErr == nil && kind != imgutil.KindUnknown {
				return image.Config{}, fmt.Errorf("read header: %s: no decoder available", kind)
			}
		}
		return image.Config{}, fmt.Errorf("read header: %w", err)
	}
	return config, nil
}
