package analysis

import (
	"math"
	"testing"
)

func sine(n int, dt, freq float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return data
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name string
		n    int
		dt   float64
		freq float64
	}{
		{"power of two", 256, 0.1, 8 / 25.6},
		{"odd length", 200, 0.1, 0.5},
		{"slow", 600, 0.1, 3 / 60.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Dominant(sine(tt.n, tt.dt, tt.freq), tt.dt)
			if !ok {
				t.Fatal("expected a dominant frequency")
			}
			binWidth := 1 / (float64(tt.n) * tt.dt)
			if math.Abs(got-tt.freq) > binWidth/2 {
				t.Errorf("expected %f, got %f", tt.freq, got)
			}
		})
	}
}

func TestDominantFlat(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 7
	}
	if _, ok := Dominant(flat, 0.1); ok {
		t.Error("expected no dominant frequency for a constant series")
	}
	if _, ok := Dominant([]float64{1}, 0.1); ok {
		t.Error("expected no dominant frequency for a single sample")
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum(sine(128, 0.1, 1.25))
	if len(ps) != 64 {
		t.Fatalf("expected 64 bins, got %d", len(ps))
	}
	if ps[0] > ps[16]*1e-3 {
		t.Errorf("expected DC removed, got %f against peak %f", ps[0], ps[16])
	}
}

func TestSettlingTick(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		tol  float64
		want int
	}{
		{"empty", nil, 0.1, 0},
		{"constant", []float64{1, 1, 1}, 0.1, 0},
		{"settles", []float64{5, 3, 1.05, 1, 1}, 0.1, 2},
		{"never", []float64{0, 1, 0, 1}, 0.1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SettlingTick(tt.data, tt.tol); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
