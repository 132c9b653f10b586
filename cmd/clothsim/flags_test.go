package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

func TestParseTears(t *testing.T) {
	script, err := parseTears([]string{"100,50@10", " 12.5, 7 @ 10", "0,0@3"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := sim.Script{
		10: {
			{Button: cloth.ButtonPrimary, X: 100, Y: 50},
			{Button: cloth.ButtonPrimary, X: 12.5, Y: 7},
		},
		3: {{Button: cloth.ButtonPrimary, X: 0, Y: 0}},
	}
	if diff := cmp.Diff(want, script); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTearsInvalid(t *testing.T) {
	tests := []string{
		"100,50",
		"100@5",
		"a,50@5",
		"100,b@5",
		"100,50@soon",
	}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			if _, err := parseTears([]string{spec}); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"sweeps=1,5,10", "dt= 0.05 ,0.1"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if diff := cmp.Diff([]string{"sweeps", "dt"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{1, 5, 10}, {0.05, 0.1}}, ranges); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGridInvalid(t *testing.T) {
	tests := [][]string{
		nil,
		{"sweeps"},
		{"=1,2"},
		{"mass=1,2"},
		{"sweeps=1,x"},
	}

	for _, specs := range tests {
		if _, _, err := parseGrid(specs); err == nil {
			t.Errorf("%v: expected error, got nil", specs)
		}
	}
}
