package viz

import (
	"strings"
	"testing"
)

func TestIntegrityBar(t *testing.T) {
	tests := []struct {
		name         string
		ratio        float64
		intact, lost int
	}{
		{"whole", 1, 10, 0},
		{"half", 0.5, 5, 5},
		{"rounds", 0.76, 8, 2},
		{"gone", 0, 0, 10},
		{"over", 1.5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := IntegrityBar(tt.ratio, 10, ThemeLinen)
			if got := strings.Count(bar, "━"); got != tt.intact {
				t.Errorf("expected %d intact cells, got %d", tt.intact, got)
			}
			if got := strings.Count(bar, "╌"); got != tt.lost {
				t.Errorf("expected %d torn cells, got %d", tt.lost, got)
			}
		})
	}
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{9, 0, 1, 2, 3, 4, 5, 6, 7}, 8, ThemeLinen.Link)
	if !strings.Contains(line, "▁▂▃▄▅▆▇█") {
		t.Errorf("expected last 8 values as a rising ramp, got %q", line)
	}

	if flat := Sparkline([]float64{3, 3, 3}, 8, ThemeLinen.Link); !strings.Contains(flat, "▁▁▁") {
		t.Errorf("expected flat series on the bottom level, got %q", flat)
	}
	if empty := Sparkline(nil, 4, ThemeLinen.Link); !strings.Contains(empty, "    ") {
		t.Errorf("expected blank sparkline, got %q", empty)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("denim"); got.Name != "denim" {
		t.Errorf("expected denim, got %s", got.Name)
	}
	if got := GetTheme("nonexistent"); got.Name != Themes[0].Name {
		t.Errorf("expected fallback to %s, got %s", Themes[0].Name, got.Name)
	}
	if got := NextTheme(Themes[len(Themes)-1].Name); got.Name != Themes[0].Name {
		t.Errorf("expected wrap to %s, got %s", Themes[0].Name, got.Name)
	}
	if names := ThemeNames(); len(names) != len(Themes) || names[0] != "linen" {
		t.Errorf("unexpected theme names %v", names)
	}
}
