package stamp

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/lehigh-university-libraries/stickerkit/internal/background"
	"github.com/lehigh-university-libraries/stickerkit/internal/models"
	"github.com/lehigh-university-libraries/stickerkit/internal/storage"
)

// ProgressFunc is notified after each item of a batch. It is purely
// observational.
type ProgressFunc func(current, total int, status string)

// Processor converts images to the LINE sticker format and writes them to a store.
// Items are processed one at a time, in input order.
type Processor struct {
	spec     Spec
	store    storage.Store
	stripper background.Stripper
}

// NewProcessor returns a processor writing to store. A nil stripper means
// background removal is unavailable.
func NewProcessor(store storage.Store, stripper background.Stripper) *Processor {
	if stripper == nil {
		stripper = background.Unavailable{}
	}
	return &Processor{
		spec:     DefaultSpec(),
		store:    store,
		stripper: stripper,
	}
}

// Spec returns the sticker specification the processor enforces
func (p *Processor) Spec() Spec {
	return p.spec
}

// ProcessSingle normalizes item and stores it as the sticker with the given
// 1-based index. Errors are reported in the result, never returned.
func (p *Processor) ProcessSingle(item any, index int, removeBackground bool) models.ProcessResult {
	img, err := p.normalize(item, removeBackground)
	if err != nil {
		return models.ProcessResult{Success: false, Index: index, Error: err.Error()}
	}

	filename := Filename(index)
	if err := p.writePNG(filename, img); err != nil {
		return models.ProcessResult{Success: false, Index: index, Error: err.Error()}
	}

	slog.Debug("Sticker written", "index", index, "path", p.store.Path(filename))

	return models.ProcessResult{
		Success:  true,
		Index:    index,
		Filename: filename,
		Path:     p.store.Path(filename),
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
	}
}

func (p *Processor) normalize(item any, removeBackground bool) (*image.NRGBA, error) {
	img, err := Load(item)
	if err != nil {
		return nil, err
	}

	if removeBackground {
		img, err = p.stripper.Strip(img)
		if err != nil {
			return nil, fmt.Errorf("failed to remove background: %w", err)
		}
	}

	return Fit(img, p.spec.Sticker), nil
}

// ProcessBatch processes every item independently, then derives main.png
// and tab.png from the first sticker that was written successfully.
func (p *Processor) ProcessBatch(items []any, removeBackground bool, progress ProgressFunc) *models.BatchResult {
	total := len(items)
	if total > 0 && (total < p.spec.MinItems || total > p.spec.MaxItems) {
		slog.Warn("Sticker count outside the range accepted by LINE", "count", total, "min", p.spec.MinItems, "max", p.spec.MaxItems)
	}

	batch := &models.BatchResult{
		Total:     total,
		Results:   make([]models.ProcessResult, 0, total),
		OutputDir: p.store.Location(),
	}

	for i, item := range items {
		index := i + 1
		result := p.ProcessSingle(item, index, removeBackground)
		batch.Results = append(batch.Results, result)

		var status string
		if result.Success {
			batch.SuccessCount++
			status = fmt.Sprintf("processed %d/%d", index, total)
		} else {
			batch.FailedCount++
			status = fmt.Sprintf("failed %d/%d: %s", index, total, result.Error)
			slog.Warn("Failed to process sticker", "index", index, "error", result.Error)
		}

		if progress != nil {
			progress(index, total, status)
		}
	}

	if first, ok := batch.FirstSuccess(); ok {
		mainPath, tabPath, err := p.deriveThumbnails(first.Filename)
		batch.MainPath = mainPath
		batch.TabPath = tabPath
		if err != nil {
			slog.Warn("Failed to generate main and tab images", "source", first.Filename, "error", err)
			batch.ThumbnailError = err.Error()
		}
	}

	slog.Info("Batch complete", "total", total, "succeeded", batch.SuccessCount, "failed", batch.FailedCount, "output", batch.OutputDir)

	return batch
}

// deriveThumbnails reads a stored sticker back and writes main.png and tab.png
func (p *Processor) deriveThumbnails(name string) (mainPath, tabPath string, err error) {
	data, err := p.store.Read(name)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	base, err := Load(data)
	if err != nil {
		return "", "", fmt.Errorf("failed to load %s: %w", name, err)
	}

	if err := p.writePNG(MainFilename, Fit(base, p.spec.Main)); err != nil {
		return "", "", err
	}
	mainPath = p.store.Path(MainFilename)

	if err := p.writePNG(TabFilename, Fit(base, p.spec.Tab)); err != nil {
		return mainPath, "", err
	}

	return mainPath, p.store.Path(TabFilename), nil
}

// ProcessGrid splits a grid composite into rows x cols tiles and processes
// them as one batch. A bad grid size is reported before any tile is touched.
func (p *Processor) ProcessGrid(item any, rows, cols int, removeBackground bool, progress ProgressFunc) (*models.BatchResult, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}

	img, err := Load(item)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid image: %w", err)
	}

	tiles, err := Split(img, rows, cols)
	if err != nil {
		return nil, err
	}

	slog.Info("Split grid image", "rows", rows, "cols", cols, "tile_width", img.Bounds().Dx()/cols, "tile_height", img.Bounds().Dy()/rows)

	items := make([]any, len(tiles))
	for i, tile := range tiles {
		items[i] = tile
	}

	return p.ProcessBatch(items, removeBackground, progress), nil
}

// ProcessDirectory re-normalizes the stickers in dir without background
// removal. Canonically named files (01.png, 02.png, ...) are used when
// present; otherwise every decodable image except main.png and tab.png, in
// name order. Either way the set is renumbered from 01 without gaps, so
// 01.png and 03.png come out as 01.png and 02.png.
func (p *Processor) ProcessDirectory(dir string, progress ProgressFunc) (*models.BatchResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	for i := 1; i <= p.spec.MaxItems; i++ {
		path := filepath.Join(dir, Filename(i))
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	if len(paths) == 0 {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list images: %w", err)
		}
		// ReadDir returns entries sorted by name
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !IsImageFile(name) || name == MainFilename || name == TabFilename {
				continue
			}
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}

	slog.Info("Processing directory", "dir", dir, "images", len(paths))

	items := make([]any, len(paths))
	for i, path := range paths {
		items[i] = path
	}

	return p.ProcessBatch(items, false, progress), nil
}

// writePNG encodes img completely before handing it to the store, so a
// failed encode never leaves a partial file behind.
func (p *Processor) writePNG(name string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := p.store.Write(name, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}
