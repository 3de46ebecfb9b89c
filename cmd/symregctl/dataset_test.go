package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSVDataset(t *testing.T) {
	path := writeTempCSV(t, "0,0\n1,1\n2,4\n")
	xs, ys, err := loadCSVDataset(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(xs) != 3 || len(ys) != 3 {
		t.Fatalf("got %d/%d samples, want 3/3", len(xs), len(ys))
	}
	if xs[2] != 2 || ys[2] != 4 {
		t.Fatalf("unexpected last row: (%g, %g)", xs[2], ys[2])
	}
}

func TestLoadCSVDatasetSkipsHeader(t *testing.T) {
	path := writeTempCSV(t, "x,y\n1,2\n3,6\n")
	xs, ys, err := loadCSVDataset(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(xs) != 2 || xs[0] != 1 || ys[1] != 6 {
		t.Fatalf("unexpected samples: %v %v", xs, ys)
	}
}

func TestLoadCSVDatasetErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"header only", "x,y\n"},
		{"bad y", "1,notanumber\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)
			if _, _, err := loadCSVDataset(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, _, err := loadCSVDataset(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPresetDataset(t *testing.T) {
	tests := []struct {
		name   string
		target func(x float64) float64
	}{
		{"zero", func(float64) float64 { return 0 }},
		{"identity", func(x float64) float64 { return x }},
		{"square", func(x float64) float64 { return x * x }},
		{"sine", math.Sin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, ys, err := presetDataset(tt.name, -1, 1, 0.5)
			if err != nil {
				t.Fatalf("preset: %v", err)
			}
			if len(xs) != 5 {
				t.Fatalf("got %d samples, want 5", len(xs))
			}
			for i, x := range xs {
				if want := tt.target(x); ys[i] != want {
					t.Fatalf("y[%d] = %g, want %g", i, ys[i], want)
				}
			}
		})
	}
}

func TestPresetDatasetErrors(t *testing.T) {
	if _, _, err := presetDataset("cube", -1, 1, 0.5); err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if _, _, err := presetDataset("square", -1, 1, 0); err == nil {
		t.Fatal("expected error for zero step")
	}
	if _, _, err := presetDataset("square", 1, -1, 0.5); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
