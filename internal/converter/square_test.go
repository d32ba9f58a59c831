package converter

import (
	"image"
	"image/color"
	"testing"
)

func TestFitDimensions(t *testing.T) {
	cases := []struct {
		w, h, target int
		wantW, wantH int
	}{
		{4000, 3000, 6000, 6000, 4500},
		{3000, 4000, 6000, 4500, 6000},
		{100, 100, 250, 250, 250},
		{2, 1, 3, 3, 2},
		{637, 478, 1000, 1000, 750},
		{1, 10000, 100, 1, 100},
	}
	for _, tc := range cases {
		gotW, gotH := fitDimensions(tc.w, tc.h, tc.target)
		if gotW != tc.wantW || gotH != tc.wantH {
			t.Fatalf("fitDimensions(%d, %d, %d) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.target, gotW, gotH, tc.wantW, tc.wantH)
		}
	}
}

func TestCenterOffsets(t *testing.T) {
	cases := []struct {
		target, w, h int
		wantX, wantY int
	}{
		{6000, 6000, 4500, 0, 750},
		{60, 60, 45, 0, 7},
		{5, 3, 4, 1, 0},
	}
	for _, tc := range cases {
		gotX, gotY := centerOffsets(tc.target, tc.w, tc.h)
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Fatalf("centerOffsets(%d, %d, %d) = (%d,%d), want (%d,%d)",
				tc.target, tc.w, tc.h, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestPadToSquareAlwaysTarget(t *testing.T) {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for _, size := range []image.Rectangle{
		image.Rect(0, 0, 40, 30),
		image.Rect(0, 0, 30, 40),
		image.Rect(0, 0, 17, 17),
		image.Rect(0, 0, 1, 9),
	} {
		out := PadToSquare(image.NewNRGBA(size), 60, white)
		if out.Bounds().Dx() != 60 || out.Bounds().Dy() != 60 {
			t.Fatalf("source %v produced %dx%d, want 60x60",
				size, out.Bounds().Dx(), out.Bounds().Dy())
		}
	}
}

func TestPadToSquarePaddingAndFill(t *testing.T) {
	// Wide opaque grayscale source takes the plain copy path: 40x20 at
	// target 60 becomes 60x30 with 15 rows of background above and below.
	src := image.NewGray(image.Rect(0, 0, 40, 20))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	bg := color.NRGBA{R: 200, G: 30, B: 40, A: 0xff}

	out := PadToSquare(src, 60, bg)

	for _, y := range []int{0, 14, 45, 59} {
		if got := out.NRGBAAt(30, y); got != bg {
			t.Fatalf("row %d: got %v, want background %v", y, got, bg)
		}
	}
	center := out.NRGBAAt(30, 30)
	if absDiff(center.R, 128) > 2 || absDiff(center.G, 128) > 2 || absDiff(center.B, 128) > 2 {
		t.Fatalf("center pixel %v, want gray 128", center)
	}
	if center.A != 0xff {
		t.Fatalf("center alpha %d, want opaque", center.A)
	}
}

func TestPadToSquareNoOffsetsForSquareSource(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := range src.Pix {
		src.Pix[i] = 100
	}
	bg := color.NRGBA{R: 200, G: 30, B: 40, A: 0xff}

	out := PadToSquare(src, 250, bg)

	for _, pt := range []image.Point{{0, 0}, {249, 249}, {125, 125}} {
		got := out.NRGBAAt(pt.X, pt.Y)
		if absDiff(got.R, 100) > 2 || absDiff(got.G, 100) > 2 || absDiff(got.B, 100) > 2 {
			t.Fatalf("pixel %v = %v, want source gray (no background visible)", pt, got)
		}
	}
}

func TestPadToSquareBlendsAlpha(t *testing.T) {
	// A fully transparent source must disappear into the background.
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}

	out := PadToSquare(src, 40, bg)

	if got := out.NRGBAAt(20, 20); got != bg {
		t.Fatalf("transparent source leaked %v over background %v", got, bg)
	}
}

func TestPadToSquareBlendsSemiTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0x80})
		}
	}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	out := PadToSquare(src, 20, white)

	got := out.NRGBAAt(10, 10)
	if absDiff(got.R, 255) > 2 || absDiff(got.G, 127) > 2 || absDiff(got.B, 127) > 2 {
		t.Fatalf("blend result %v, want about (255,127,127)", got)
	}
	if got.A != 0xff {
		t.Fatalf("blend alpha %d, want opaque", got.A)
	}
}

func TestPadToSquareIndexedTransparency(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{},
		color.NRGBA{R: 0xff, A: 0xff},
	}
	src := image.NewPaletted(image.Rect(0, 0, 10, 10), palette)
	bg := color.NRGBA{B: 0xff, A: 0xff}

	out := PadToSquare(src, 20, bg)

	if got := out.NRGBAAt(10, 10); got != bg {
		t.Fatalf("transparent palette entry leaked %v over background %v", got, bg)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
