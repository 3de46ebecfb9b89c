package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// loadCSVDataset reads x,y rows. A single header row is tolerated when its
// first cell is not numeric.
func loadCSVDataset(path string) ([]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("csv dataset %s is empty", path)
	}

	start := 0
	if _, err := strconv.ParseFloat(rows[0][0], 64); err != nil {
		start = 1
	}

	var xs, ys []float64
	for i := start; i < len(rows); i++ {
		x, err := strconv.ParseFloat(rows[i][0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid x %q: %w", i+1, rows[i][0], err)
		}
		y, err := strconv.ParseFloat(rows[i][1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid y %q: %w", i+1, rows[i][1], err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("csv dataset %s has no data rows", path)
	}
	return xs, ys, nil
}

func presetDataset(name string, from, to, step float64) ([]float64, []float64, error) {
	if step <= 0 {
		return nil, nil, fmt.Errorf("step must be > 0, got %g", step)
	}
	if to < from {
		return nil, nil, fmt.Errorf("invalid sample range [%g, %g]", from, to)
	}

	var target func(x float64) float64
	switch name {
	case "zero":
		target = func(float64) float64 { return 0 }
	case "identity":
		target = func(x float64) float64 { return x }
	case "square":
		target = func(x float64) float64 { return x * x }
	case "sine":
		target = math.Sin
	default:
		return nil, nil, fmt.Errorf("unknown preset target: %s", name)
	}

	var xs, ys []float64
	for x := from; x <= to+step/2; x += step {
		xs = append(xs, x)
		ys = append(ys, target(x))
	}
	return xs, ys, nil
}
