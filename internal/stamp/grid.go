package stamp

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Split cuts img into rows x cols equal tiles in row-major order. Tiles are
// floor(width/cols) x floor(height/rows); leftover pixels on the right and
// bottom edges are dropped.
func Split(img image.Image, rows, cols int) ([]*image.NRGBA, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}

	b := img.Bounds()
	cellW := b.Dx() / cols
	cellH := b.Dy() / rows

	tiles := make([]*image.NRGBA, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			left := b.Min.X + col*cellW
			top := b.Min.Y + row*cellH
			tile := image.NewNRGBA(image.Rect(0, 0, cellW, cellH))
			if cellW > 0 && cellH > 0 {
				tile = imaging.Crop(img, image.Rect(left, top, left+cellW, top+cellH))
			}
			tiles = append(tiles, tile)
		}
	}

	return tiles, nil
}

// ParseGrid parses grid notation such as "4x4" into rows and columns
func ParseGrid(s string) (rows, cols int, err error) {
	r, c, found := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q is not in RxC form", ErrInvalidGrid, s)
	}
	rows, err = strconv.Atoi(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad row count in %q", ErrInvalidGrid, s)
	}
	cols, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad column count in %q", ErrInvalidGrid, s)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}
	return rows, cols, nil
}
