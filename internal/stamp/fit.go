package stamp

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// OpaqueBounds returns the smallest rectangle containing every pixel with
// non-zero alpha. ok is false when img is fully transparent or empty.
func OpaqueBounds(img *image.NRGBA) (box image.Rectangle, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Fit trims the transparent margin of img, scales the content down (never
// up) to fit t's content box and centres it on a transparent canvas of
// exactly t.Width x t.Height.
func Fit(img *image.NRGBA, t Target) *image.NRGBA {
	content := img
	if box, ok := OpaqueBounds(img); ok && box != img.Bounds() {
		content = imaging.Crop(img, box)
	}

	w, h := content.Bounds().Dx(), content.Bounds().Dy()
	if w > t.MaxContentWidth || h > t.MaxContentHeight {
		content = imaging.Fit(content, t.MaxContentWidth, t.MaxContentHeight, imaging.Lanczos)
		w, h = content.Bounds().Dx(), content.Bounds().Dy()
	}

	canvas := imaging.New(t.Width, t.Height, color.NRGBA{})
	return imaging.Paste(canvas, content, image.Pt((t.Width-w)/2, (t.Height-h)/2))
}
