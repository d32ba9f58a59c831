package imgutil

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Kind identifies an image container recognized by header sniffing.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindTIFF
	KindBMP
	KindWebP
	KindHEIC
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindTIFF:
		return "tiff"
	case KindBMP:
		return "bmp"
	case KindWebP:
		return "webp"
	case KindHEIC:
		return "heic"
	default:
		return "unknown"
	}
}

var (
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
	bmpSig    = []byte{0x42, 0x4d}

	heicBrands = [][]byte{
		[]byte("heic"), []byte("heix"), []byte("hevc"),
		[]byte("hevx"), []byte("mif1"), []byte("msf1"),
	}
)

// DetectImage inspects the first bytes of a file for known image signatures.
// A short or unrecognized header reports KindUnknown.
func DetectImage(header []byte) Kind {
	switch {
	case bytes.HasPrefix(header, jpegSig):
		return KindJPEG
	case bytes.HasPrefix(header, pngSig):
		return KindPNG
	case bytes.HasPrefix(header, tiffSigLE), bytes.HasPrefix(header, tiffSigBE):
		return KindTIFF
	case bytes.HasPrefix(header, bmpSig):
		return KindBMP
	}

	if len(header) >= 12 {
		if bytes.HasPrefix(header, []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WEBP")) {
			return KindWebP
		}
		if bytes.Equal(header[4:8], []byte("ftyp")) {
			for _, brand := range heicBrands {
				if bytes.Equal(header[8:12], brand) {
					return KindHEIC
				}
			}
		}
	}

	return KindUnknown
}

// SniffFile reads the first bytes of the file at path to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader determines the image type from the first bytes of r.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, 16)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return KindUnknown, err
	}
	return DetectImage(header[:n]), nil
}
