package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/stickerkit/internal/models"
)

func sampleBatch() *models.BatchResult {
	return &models.BatchResult{
		SuccessCount: 2,
		FailedCount:  1,
		Total:        3,
		OutputDir:    "out",
		MainPath:     "out/main.png",
		TabPath:      "out/tab.png",
		Results: []models.ProcessResult{
			{Success: true, Index: 1, Filename: "01.png", Path: "out/01.png", Width: 370, Height: 320},
			{Success: false, Index: 2, Error: "failed to decode image: unexpected EOF"},
			{Success: true, Index: 3, Filename: "03.png", Path: "out/03.png", Width: 370, Height: 320},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleBatch())
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[1].Success || rows[1].Index != 2 || rows[1].Error == "" {
		t.Errorf("Unexpected failed row %+v", rows[1])
	}
	if rows[2].Filename != "03.png" || rows[2].Width != 370 {
		t.Errorf("Unexpected row %+v", rows[2])
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ParquetFilename)
	batch := sampleBatch()

	if err := WriteParquet(path, batch); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	rows, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}

	want := Rows(batch)
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("Row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestReadParquetMissingFile(t *testing.T) {
	if _, err := ReadParquet(filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSaveYAML(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	path, err := SaveYAML(dir, sampleBatch(), now)
	if err != nil {
		t.Fatalf("SaveYAML failed: %v", err)
	}
	if filepath.Base(path) != "report-2026-03-14_15-09-26.yaml" {
		t.Errorf("Unexpected report name %s", filepath.Base(path))
	}

	summary, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if summary.Total != 3 || summary.SuccessCount != 2 || summary.FailedCount != 1 {
		t.Errorf("Unexpected counts %+v", summary)
	}
	if summary.MainPath != "out/main.png" || len(summary.Results) != 3 {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if summary.Results[1].Error == "" {
		t.Error("Expected failed result to keep its error")
	}
}

func TestPrint(t *testing.T) {
	rows := Rows(sampleBatch())

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Print(&buf, rows, "text"); err != nil {
			t.Fatalf("Print failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"Stickers:  3", "Succeeded: 2", "Failed:    1", "01.png (370x320)", "unexpected EOF"} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %q:\n%s", want, out)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Print(&buf, rows, "json"); err != nil {
			t.Fatalf("Print failed: %v", err)
		}
		var decoded []Row
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if len(decoded) != 3 || decoded[0] != rows[0] {
			t.Errorf("Unexpected JSON rows %+v", decoded)
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Print(&buf, rows, "csv"); err != nil {
			t.Fatalf("Print failed: %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("Invalid CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("Expected header and 3 records, got %d", len(records))
		}
		if records[2][1] != "false" || records[2][6] == "" {
			t.Errorf("Unexpected failed record %v", records[2])
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := Print(&bytes.Buffer{}, rows, "xml"); err == nil {
			t.Error("Expected error for unsupported format")
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("Expected abcde..., got %q", got)
	}
}
