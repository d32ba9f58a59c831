package converter

import (
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
	"go.uber.org/zap"
)

// orientation is the EXIF Orientation tag value, 1 through 8.
type orientation int

const (
	orientNormal orientation = iota + 1
	orientFlipH
	orientRotate180
	orientFlipV
	orientTranspose
	orientRotate90CW
	orientTransverse
	orientRotate270CW
)

// readOrientation extracts the EXIF Orientation value from rs. Files without
// EXIF data, unreadable EXIF blocks, and out-of-range values all report
// orientNormal; orientation is advisory and never fails a conversion.
func readOrientation(rs io.ReadSeeker, log *zap.Logger) orientation {
	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if !errorsIsNoExif(err) {
			log.Debug("exif read failed", zap.Error(err))
		}
		return orientNormal
	}

	for _, tag := range tags {
		if tag.TagName != "Orientation" || tag.IfdPath != "IFD" {
			continue
		}
		if values, ok := tag.Value.([]uint16); ok && len(values) > 0 {
			o := orientation(values[0])
			if o >= orientNormal && o <= orientRotate270CW {
				return o
			}
		}
		break
	}
	return orientNormal
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

// reorient applies the transform that makes the pixel data upright for the
// given EXIF orientation. Rotation direction follows the EXIF convention, so
// value 6 turns the image 90 degrees clockwise.
func reorient(img image.Image, o orientation) image.Image {
	switch o {
	case orientFlipH:
		return imaging.FlipH(img)
	case orientRotate180:
		return imaging.Rotate180(img)
	case orientFlipV:
		return imaging.FlipV(img)
	case orientTranspose:
		return imaging.Transpose(img)
	case orientRotate90CW:
		return imaging.Rotate270(img)
	case orientTransverse:
		return imaging.Transverse(img)
	case orientRotate270CW:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
