package imgutil

import "image"

// HasAlpha reports whether the decoded image carries an alpha channel, either
// directly or through a palette with at least one non-opaque entry.
func HasAlpha(img image.Image) bool {
	switch img := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64,
		*image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	case *image.Paletted:
		for _, entry := range img.Palette {
			if _, _, _, a := entry.RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

// IsIndexed reports whether the decoded image is backed by an indexed palette.
func IsIndexed(img image.Image) bool {
	_, ok := img.(*image.Paletted)
	return ok
}
