package storage

import (
	"errors"
	"testing"

	"symreg/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	want := testRunRecord("run-1", "2026-08-26T10:00:00Z")
	want.GenerationsToBest = 17

	data, err := EncodeRun(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := testRunRecord("run-1", "2026-08-26T10:00:00Z")
	run.SchemaVersion = CurrentSchemaVersion + 1

	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("got %v, want ErrVersionMismatch", err)
	}
}

func TestDecodeRunRejectsGarbage(t *testing.T) {
	if _, err := DecodeRun([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFitnessHistoryCodecRoundTrip(t *testing.T) {
	want := []float64{9, 4.5, 1.25, 1.25, 0.125}
	data, err := EncodeFitnessHistory(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeFitnessHistory(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

func TestGenerationStatsCodecRoundTrip(t *testing.T) {
	want := []model.GenerationStats{
		{Generation: 1, BestFitness: 4, MeanFitness: 10, WorstFitness: 40, BestSize: 3, BestDepth: 2, MeanSize: 5.5},
	}
	data, err := EncodeGenerationStats(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeGenerationStats(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
