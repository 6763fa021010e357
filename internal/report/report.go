// Package report records batch outcomes as Parquet rows and YAML summaries
// and renders them for the terminal.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/stickerkit/internal/models"
)

// ParquetFilename is the per-item report written next to the stickers
const ParquetFilename = "report.parquet"

// Row is one sticker in a batch report
type Row struct {
	Index    int    `parquet:"index" json:"index"`
	Success  bool   `parquet:"success" json:"success"`
	Filename string `parquet:"filename" json:"filename"`
	Path     string `parquet:"path" json:"path"`
	Width    int    `parquet:"width" json:"width"`
	Height   int    `parquet:"height" json:"height"`
	Error    string `parquet:"error" json:"error,omitempty"`
}

// Rows flattens a batch into report rows, in input order
func Rows(batch *models.BatchResult) []Row {
	rows := make([]Row, 0, len(batch.Results))
	for _, r := range batch.Results {
		rows = append(rows, Row{
			Index:    r.Index,
			Success:  r.Success,
			Filename: r.Filename,
			Path:     r.Path,
			Width:    r.Width,
			Height:   r.Height,
			Error:    r.Error,
		})
	}
	return rows
}

// WriteParquet writes the batch rows to a Parquet file at path
func WriteParquet(path string, batch *models.BatchResult) error {
	rows := Rows(batch)
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet report: %w", err)
	}
	slog.Debug("Wrote parquet report", "path", path, "rows", len(rows))
	return nil
}

// ReadParquet loads report rows from a Parquet file
func ReadParquet(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet report: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var rows []Row
	buf := make([]Row, 64)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Read parquet report", "path", path, "rows", len(rows))

	return rows, nil
}

// Summary is the YAML form of a batch report
type Summary struct {
	Timestamp      string                 `yaml:"timestamp"`
	OutputDir      string                 `yaml:"outputdir"`
	Total          int                    `yaml:"total"`
	SuccessCount   int                    `yaml:"successcount"`
	FailedCount    int                    `yaml:"failedcount"`
	MainPath       string                 `yaml:"mainpath,omitempty"`
	TabPath        string                 `yaml:"tabpath,omitempty"`
	ThumbnailError string                 `yaml:"thumbnailerror,omitempty"`
	Results        []models.ProcessResult `yaml:"results"`
}

// SaveYAML writes a timestamped YAML summary of batch into dir and returns
// its path.
func SaveYAML(dir string, batch *models.BatchResult, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := now.Format("2006-01-02_15-04-05")
	summary := Summary{
		Timestamp:      timestamp,
		OutputDir:      batch.OutputDir,
		Total:          batch.Total,
		SuccessCount:   batch.SuccessCount,
		FailedCount:    batch.FailedCount,
		MainPath:       batch.MainPath,
		TabPath:        batch.TabPath,
		ThumbnailError: batch.ThumbnailError,
		Results:        batch.Results,
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report-%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return path, nil
}

// LoadYAML reads a summary written by SaveYAML
func LoadYAML(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML report: %w", err)
	}
	var summary Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse YAML report: %w", err)
	}
	return &summary, nil
}

// Print renders rows as text, json or csv
func Print(w io.Writer, rows []Row, format string) error {
	switch format {
	case "text", "":
		return printText(w, rows)
	case "json":
		return printJSON(w, rows)
	case "csv":
		return printCSV(w, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printText(w io.Writer, rows []Row) error {
	succeeded := 0
	for _, r := range rows {
		if r.Success {
			succeeded++
		}
	}

	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Sticker Batch Report")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Stickers:  %d\n", len(rows))
	fmt.Fprintf(w, "Succeeded: %d\n", succeeded)
	fmt.Fprintf(w, "Failed:    %d\n", len(rows)-succeeded)
	fmt.Fprintln(w)

	for _, r := range rows {
		if !r.Success {
			fmt.Fprintf(w, "[%02d] ❌ %s\n", r.Index, truncate(r.Error, 80))
			continue
		}
		fmt.Fprintf(w, "[%02d] ✅ %s (%dx%d)\n", r.Index, r.Filename, r.Width, r.Height)
	}

	return nil
}

func printJSON(w io.Writer, rows []Row) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

func printCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Index", "Success", "Filename", "Path", "Width", "Height", "Error"}); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Index),
			strconv.FormatBool(r.Success),
			r.Filename,
			r.Path,
			strconv.Itoa(r.Width),
			strconv.Itoa(r.Height),
			r.Error,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
