package stamp

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		rows, cols int
	}{
		{name: "4x4 exact", w: 400, h: 400, rows: 4, cols: 4},
		{name: "4x4 with remainder", w: 403, h: 401, rows: 4, cols: 4},
		{name: "single tile", w: 7, h: 5, rows: 1, cols: 1},
		{name: "3 rows 2 cols", w: 10, h: 10, rows: 3, cols: 2},
		{name: "wide strip", w: 90, h: 20, rows: 1, cols: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := patterned(tt.w, tt.h)
			tiles, err := Split(src, tt.rows, tt.cols)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			if len(tiles) != tt.rows*tt.cols {
				t.Fatalf("Expected %d tiles, got %d", tt.rows*tt.cols, len(tiles))
			}

			cellW, cellH := tt.w/tt.cols, tt.h/tt.rows
			for i, tile := range tiles {
				if tile.Bounds() != image.Rect(0, 0, cellW, cellH) {
					t.Errorf("Tile %d: expected %dx%d, got %v", i, cellW, cellH, tile.Bounds())
					continue
				}
				row, col := i/tt.cols, i%tt.cols
				for _, p := range []image.Point{{0, 0}, {cellW - 1, cellH - 1}} {
					want := src.NRGBAAt(col*cellW+p.X, row*cellH+p.Y)
					if got := tile.NRGBAAt(p.X, p.Y); got != want {
						t.Errorf("Tile %d at %v: expected %+v, got %+v", i, p, want, got)
					}
				}
			}
		})
	}
}

func TestSplitNonZeroOrigin(t *testing.T) {
	full := patterned(60, 40)
	sub := full.SubImage(image.Rect(10, 4, 50, 36)).(*image.NRGBA)

	tiles, err := Split(sub, 2, 2)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	// Bottom-right tile starts at (10+20, 4+16) in the parent image
	if got, want := tiles[3].NRGBAAt(0, 0), full.NRGBAAt(30, 20); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestSplitTilesSmallerThanGrid(t *testing.T) {
	tiles, err := Split(solid(3, 3, color.NRGBA{A: 255}), 4, 4)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(tiles) != 16 {
		t.Fatalf("Expected 16 tiles, got %d", len(tiles))
	}
	for _, tile := range tiles {
		if !tile.Bounds().Empty() {
			t.Errorf("Expected empty tile, got %v", tile.Bounds())
		}
	}
}

func TestSplitInvalidGrid(t *testing.T) {
	src := patterned(10, 10)
	for _, grid := range [][2]int{{0, 4}, {4, 0}, {-1, 2}, {0, 0}} {
		if _, err := Split(src, grid[0], grid[1]); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("%v: expected ErrInvalidGrid, got %v", grid, err)
		}
	}
}

func TestParseGrid(t *testing.T) {
	tests := []struct {
		in         string
		rows, cols int
		wantErr    bool
	}{
		{in: "4x4", rows: 4, cols: 4},
		{in: "2X5", rows: 2, cols: 5},
		{in: " 3x1 ", rows: 3, cols: 1},
		{in: "4", wantErr: true},
		{in: "0x4", wantErr: true},
		{in: "ax4", wantErr: true},
		{in: "4x-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rows, cols, err := ParseGrid(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGrid) {
					t.Errorf("Expected ErrInvalidGrid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("Expected %dx%d, got %dx%d", tt.rows, tt.cols, rows, cols)
			}
		})
	}
}
