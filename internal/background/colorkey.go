package background

import (
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/lehigh-university-libraries/stickerkit/internal/config"
)

// ColorKey removes a flat background. The key colour is estimated from the
// opaque border pixels, then every pixel connected to the border whose Lab
// distance to the key is within Tolerance becomes transparent.
type ColorKey struct {
	Tolerance float64
	Key       string
}

func (c *ColorKey) Strip(img *image.NRGBA) (*image.NRGBA, error) {
	out := imaging.Clone(img)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w == 0 || h == 0 {
		return out, nil
	}

	key, ok := c.keyColor(out)
	if !ok {
		return out, nil
	}

	visited := make([]bool, w*h)
	queue := make([]image.Point, 0, 2*(w+h))
	for x := range w {
		queue = append(queue, image.Pt(x, 0), image.Pt(x, h-1))
	}
	for y := range h {
		queue = append(queue, image.Pt(0, y), image.Pt(w-1, y))
	}

	for len(queue) > 0 {
		p := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		idx := p.Y*w + p.X
		if visited[idx] {
			continue
		}
		visited[idx] = true

		off := p.Y*out.Stride + p.X*4
		px := out.Pix[off : off+4 : off+4]
		if px[3] != 0 && labColor(px).DistanceLab(key) > c.Tolerance {
			continue
		}
		px[0], px[1], px[2], px[3] = 0, 0, 0, 0

		if p.X > 0 {
			queue = append(queue, image.Pt(p.X-1, p.Y))
		}
		if p.X < w-1 {
			queue = append(queue, image.Pt(p.X+1, p.Y))
		}
		if p.Y > 0 {
			queue = append(queue, image.Pt(p.X, p.Y-1))
		}
		if p.Y < h-1 {
			queue = append(queue, image.Pt(p.X, p.Y+1))
		}
	}

	return out, nil
}

func labColor(px []uint8) colorful.Color {
	return colorful.Color{
		R: float64(px[0]) / 255.0,
		G: float64(px[1]) / 255.0,
		B: float64(px[2]) / 255.0,
	}
}

// borderPixels returns the opaque pixels on the outer edge of img
func borderPixels(img *image.NRGBA) []color.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	var pixels []color.NRGBA
	add := func(x, y int) {
		c := img.NRGBAAt(x, y)
		if c.A != 0 {
			pixels = append(pixels, c)
		}
	}
	for x := range w {
		add(x, 0)
		if h > 1 {
			add(x, h-1)
		}
	}
	for y := 1; y < h-1; y++ {
		add(0, y)
		if w > 1 {
			add(w-1, y)
		}
	}
	return pixels
}

func (c *ColorKey) keyColor(img *image.NRGBA) (colorful.Color, bool) {
	pixels := borderPixels(img)
	if len(pixels) == 0 {
		return colorful.Color{}, false
	}

	if c.Key == config.KeyKMeans {
		if key, ok := kmeansKey(pixels); ok {
			return key, true
		}
	}

	strip := image.NewNRGBA(image.Rect(0, 0, len(pixels), 1))
	for i, p := range pixels {
		strip.SetNRGBA(i, 0, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}
	key, _ := colorful.MakeColor(dominantcolor.Find(strip))
	return key.Clamped(), true
}

// kmeansKey clusters the border colours and returns the most populated centre
func kmeansKey(pixels []color.NRGBA) (colorful.Color, bool) {
	dataset := make(clusters.Observations, 0, len(pixels))
	for _, p := range pixels {
		dataset = append(dataset, clusters.Coordinates{
			float64(p.R) / 255.0,
			float64(p.G) / 255.0,
			float64(p.B) / 255.0,
		})
	}

	k := min(3, len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return colorful.Color{}, false
	}

	best := cc[0]
	for _, cl := range cc[1:] {
		if len(cl.Observations) > len(best.Observations) {
			best = cl
		}
	}
	if len(best.Center) < 3 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: best.Center[0], G: best.Center[1], B: best.Center[2]}.Clamped(), true
}
