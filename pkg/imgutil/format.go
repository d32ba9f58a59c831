package imgutil

import (
	"fmt"
	"strings"
)

// OutputFormat identifies a supported output encoding.
type OutputFormat int

const (
	FormatJPG OutputFormat = iota
	FormatPNG
)

func (f OutputFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	default:
		return "jpg"
	}
}

// Extension returns the canonical file extension for the format, dot included.
func (f OutputFormat) Extension() string {
	return "." + f.String()
}

// ParseOutputFormat maps a user-supplied format name to an OutputFormat.
// "jpeg" is accepted as an alias for "jpg"; matching ignores case.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "png":
		return FormatPNG, nil
	default:
		return FormatJPG, fmt.Errorf("unknown output format %q (want jpg or png)", name)
	}
}

var decodable = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
	"bmp":  {},
	"webp": {},
	"heic": {},
}

// DecodableExtension reports whether ext (with or without a leading dot, any
// case) names an input format the converter attempts to decode. Files outside
// this set are never opened.
func DecodableExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, ok := decodable[ext]
	return ok
}
