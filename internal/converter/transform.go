package converter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

// transformFile runs one conversion end to end: decode, optional
// reorientation, square compositing, atomic encode into the destination.
func transformFile(job Job, log *zap.Logger) Result {
	res := Result{Job: job}

	data, err := os.ReadFile(job.SourcePath)
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		res.Err = decodeError(data, err)
		return res
	}
	log.Debug("decoded image",
		zap.String("path", job.RelPath),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)

	if job.AutoOrient {
		if o := readOrientation(bytes.NewReader(data), log); o != orientNormal {
			img = reorient(img, o)
			log.Debug("reoriented image",
				zap.String("path", job.RelPath),
				zap.Int("orientation", int(o)),
			)
		}
	}

	canvas := PadToSquare(img, job.Size, job.Background)

	outPath := job.DestBase + job.Format.Extension()
	written, err := writeImage(outPath, canvas, job.Format, job.Quality)
	if err != nil {
		res.Err = err
		return res
	}

	res.OutputPath = outPath
	res.BytesWritten = written
	return res
}

// decodeError wraps a decode failure, naming the container when the header is
// recognizable but no decoder is registered for it. HEIC hits this path: the
// extension is accepted, so the failure should say what the file actually is.
func decodeError(header []byte, err error) error {
	if errors.Is(err, image.ErrFormat) {
		if kind := imgutil.DetectImage(header); kind != imgutil.KindUnknown {
			return fmt.Errorf("decode: %s: no decoder available", kind)
		}
	}
	return fmt.Errorf("decode: %w", err)
}

// writeImage encodes img to path through a temp file in the destination
// directory, so a crash mid-encode never leaves a truncated file at the
// final name.
func writeImage(path string, img image.Image, format imgutil.OutputFormat, quality int) (int64, error) {
	destDir := filepath.Dir(path)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}

	tmpFile, err := os.CreateTemp(destDir, "square-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}

	if err := imaging.Encode(tmpFile, img, encodeFormat(format), encodeOptions(format, quality)...); err != nil {
		_ = tmpFile.Close()
		return 0, fmt.Errorf("encode: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := replaceFile(tmpFile.Name(), path); err != nil {
		return 0, fmt.Errorf("rename: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func encodeFormat(format imgutil.OutputFormat) imaging.Format {
	if format == imgutil.FormatPNG {
		return imaging.PNG
	}
	return imaging.JPEG
}

func encodeOptions(format imgutil.OutputFormat, quality int) []imaging.EncodeOption {
	if format == imgutil.FormatPNG {
		return []imaging.EncodeOption{imaging.PNGCompressionLevel(pngEncoderLevel(pngCompression(quality)))}
	}
	return []imaging.EncodeOption{imaging.JPEGQuality(jpegQuality(quality))}
}

// replaceFile renames tmp over dest, removing a pre-existing dest first on
// platforms where rename does not overwrite.
func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
