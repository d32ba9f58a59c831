package converter

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

// fitDimensions scales w x h so the longer side equals target while keeping
// the aspect ratio. Halves round away from zero; degenerate sides clamp to 1
// so the resampler always has at least one pixel to work with.
func fitDimensions(w, h, target int) (int, int) {
	scale := float64(target) / float64(max(w, h))
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// centerOffsets positions an inner box inside a target square. The division
// floors, so odd padding leaves the extra pixel on the right/bottom edge.
func centerOffsets(target, w, h int) (int, int) {
	return (target - w) / 2, (target - h) / 2
}

// PadToSquare resamples src so its longer side equals target and composites
// it centered on an opaque square canvas filled with bg. Sources carrying an
// alpha channel or an indexed palette are alpha-composited against the
// background; everything else is pasted directly. The result is always
// exactly target x target and fully opaque.
func PadToSquare(src image.Image, target int, bg color.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	newW, newH := fitDimensions(bounds.Dx(), bounds.Dy(), target)

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)
	canvas := imaging.New(target, target, bg)

	offsetX, offsetY := centerOffsets(target, newW, newH)
	position := image.Pt(offsetX, offsetY)

	if imgutil.HasAlpha(src) || imgutil.IsIndexed(src) {
		return imaging.Overlay(canvas, resized, position, 1.0)
	}
	return imaging.Paste(canvas, resized, position)
}
