package converter

import (
	"image/png"
	"math"
)

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 10 {
		return 10
	}
	return q
}

// jpegQuality maps the unified 1-10 scale onto the JPEG quality range 30-95.
// The mapping is linear and truncating: 1 -> 30, 10 -> 95, higher meaning
// better fidelity.
func jpegQuality(q int) int {
	q = clampQuality(q)
	return int(30 + float64(q-1)*65.0/9.0)
}

// pngCompression maps the unified 1-10 scale onto the PNG compression range
// 0-9, rounding to nearest: 1 -> 0, 10 -> 9. Higher means more compression
// effort, the inverse direction of JPEG fidelity.
func pngCompression(q int) int {
	q = clampQuality(q)
	return int(math.Round(float64(q-1) * 9.0 / 9.0))
}

// pngEncoderLevel buckets the 0-9 compression value onto the discrete levels
// the PNG encoder accepts.
func pngEncoderLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 7:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
