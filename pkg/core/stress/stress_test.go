package stress

import (
	"math"
	"testing"

	"github.com/matzehuels/geomech/pkg/errors"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestVertical(t *testing.T) {
	tests := []struct {
		name       string
		depth      float64
		waterDepth float64
		wantStress float64
	}{
		{"onshore", 10000, 0, 0.052 * 144 / 7.48 * 10000},
		{"offshore", 10000, 2000, 0.052*64/7.48*2000 + 0.052*144/7.48*8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vertical(tt.depth, tt.waterDepth, 144, 64)
			if !near(got.Stress, tt.wantStress, 1e-6) {
				t.Errorf("Stress = %v, want %v", got.Stress, tt.wantStress)
			}
			if !near(got.Gradient, got.Stress/tt.depth, 1e-12) {
				t.Errorf("Gradient = %v", got.Gradient)
			}
		})
	}
}

func TestVerticalNominal(t *testing.T) {
	got := Vertical(10000, 0, 144, 64)
	if !near(got.Stress, 10010.7, 0.1) {
		t.Errorf("Stress = %v, want ~10010.7", got.Stress)
	}
	if !near(got.Gradient, 1.0, 0.01) {
		t.Errorf("Gradient = %v, want ~1.0", got.Gradient)
	}
}

func TestEffectiveBiotOne(t *testing.T) {
	for _, tc := range [][2]float64{{10400, 4680}, {1e-3, 7e-4}, {123456.789, 98765.4321}} {
		if got := Effective(tc[0], tc[1], 1); got != tc[0]-tc[1] {
			t.Errorf("Effective(%v, %v, 1) = %v, want %v", tc[0], tc[1], got, tc[0]-tc[1])
		}
	}
	series, err := EffectiveSeries([]float64{10400, 11000}, []float64{4680, 5000}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if series[0] != 10400-4680 || series[1] != 11000-5000 {
		t.Errorf("EffectiveSeries = %v", series)
	}
}

func TestEffectiveSeries(t *testing.T) {
	tests := []struct {
		name     string
		total    []float64
		pp       []float64
		biot     float64
		want     []float64
		wantCode errors.Code
	}{
		{"paired", []float64{100, 200}, []float64{10, 20}, 0.5, []float64{95, 190}, ""},
		{"broadcast pp", []float64{100, 200, 300}, []float64{100}, 1, []float64{0, 100, 200}, ""},
		{"broadcast total", []float64{100}, []float64{10, 20}, 1, []float64{90, 80}, ""},
		{"empty", nil, nil, 1, []float64{}, ""},
		{"mismatch", []float64{1, 2}, []float64{1, 2, 3}, 1, nil, errors.ErrCodeShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveSeries(tt.total, tt.pp, tt.biot)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !near(got[i], tt.want[i], 1e-9) {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHorizontal(t *testing.T) {
	got := Horizontal(10400, 4680, 0.25, 0, 1)
	wantSh := 0.25/0.75*(10400-4680) + 4680
	if !near(got.Shmin, wantSh, 1e-9) || !near(got.SHmax, wantSh, 1e-9) {
		t.Errorf("got %+v, want Shmin = SHmax = %v", got, wantSh)
	}
	if got.Regime != RegimeNormal {
		t.Errorf("Regime = %v, want normal", got.Regime)
	}
}

func TestHorizontalTectonicMonotone(t *testing.T) {
	prev := Horizontal(10000, 4650, 0.3, 0, 1)
	for i := 1; i <= 20; i++ {
		tf := float64(i) / 20
		cur := Horizontal(10000, 4650, 0.3, tf, 1)
		if cur.SHmax < prev.SHmax {
			t.Errorf("SHmax decreased at t=%v: %v < %v", tf, cur.SHmax, prev.SHmax)
		}
		if cur.Shmin != prev.Shmin {
			t.Errorf("Shmin changed at t=%v", tf)
		}
		prev = cur
	}
	if prev.SHmax != 10000 {
		t.Errorf("SHmax at t=1 = %v, want sv", prev.SHmax)
	}
}

func TestHorizontalRegimeLabels(t *testing.T) {
	tests := []struct {
		tectonic float64
		want     string
	}{
		{0, "normal"},
		{0.29, "normal"},
		{0.3, "strike-slip"},
		{0.69, "strike-slip"},
		{0.7, "reverse"},
		{1, "reverse"},
	}
	for _, tt := range tests {
		if got := Horizontal(10000, 4650, 0.25, tt.tectonic, 1).Regime.Short(); got != tt.want {
			t.Errorf("tectonic %v: regime = %q, want %q", tt.tectonic, got, tt.want)
		}
	}
}

func TestPrincipalRegime(t *testing.T) {
	tests := []struct {
		p    Principal
		want Regime
	}{
		{Principal{Sv: 10000, SHmax: 8000, Shmin: 7000}, RegimeNormal},
		{Principal{Sv: 10000, SHmax: 12000, Shmin: 7000}, RegimeStrikeSlip},
		{Principal{Sv: 10000, SHmax: 14000, Shmin: 12000}, RegimeReverse},
		{Principal{Sv: 10000, SHmax: 7000, Shmin: 8000}, RegimeUndefined},
	}
	for _, tt := range tests {
		if got := tt.p.Regime(); got != tt.want {
			t.Errorf("%+v: Regime = %v, want %v", tt.p, got, tt.want)
		}
	}
}
