package reader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("does/not/exist.pdf"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-pdf.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Expected error for a non-PDF file")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.YTolerance != RecommendedLineTolerance {
		t.Errorf("Expected merge tolerance to match the recommended line tolerance, got %v", config.YTolerance)
	}
	if config.GapFactor <= 0 {
		t.Errorf("Expected positive gap factor, got %v", config.GapFactor)
	}
}
