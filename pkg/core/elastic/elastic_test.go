package elastic

import (
	"math"
	"testing"

	"github.com/matzehuels/geomech/pkg/errors"
)

func approx(a, b, tol float64) bool {
	if b == 0 {
		return math.Abs(a) <= tol
	}
	return math.Abs(a-b) <= tol*math.Abs(b)
}

func ptr(v float64) *float64 { return &v }

func TestConvertRoundTrip(t *testing.T) {
	base, err := Convert(PairENu, 1e6, 0.25)
	if err != nil {
		t.Fatalf("Convert(E, nu): %v", err)
	}

	tests := []struct {
		name string
		pair Pair
		a, b float64
	}{
		{"E-G", PairEG, base.E, base.G},
		{"E-K", PairEK, base.E, base.K},
		{"G-nu", PairGNu, base.G, base.Nu},
		{"K-nu", PairKNu, base.K, base.Nu},
		{"K-G", PairKG, base.K, base.G},
		{"lambda-G", PairLambdaG, base.Lambda, base.G},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Convert(tt.pair, tt.a, tt.b)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if !approx(m.E, 1e6, 1e-9) {
				t.Errorf("E = %v, want 1e6", m.E)
			}
			if !approx(m.Nu, 0.25, 1e-9) {
				t.Errorf("Nu = %v, want 0.25", m.Nu)
			}
			if !approx(m.K, base.K, 1e-9) || !approx(m.G, base.G, 1e-9) || !approx(m.Lambda, base.Lambda, 1e-9) {
				t.Errorf("got %+v, want %+v", m, base)
			}
		})
	}
}

func TestConvertKnownValues(t *testing.T) {
	m, err := Convert(PairENu, 1e6, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(m.G, 400000, 1e-12) {
		t.Errorf("G = %v, want 400000", m.G)
	}
	if !approx(m.K, 666666.6667, 1e-9) {
		t.Errorf("K = %v, want 666666.67", m.K)
	}
	if !approx(m.Lambda, 400000, 1e-12) {
		t.Errorf("Lambda = %v, want 400000", m.Lambda)
	}
}

func TestConvertSingular(t *testing.T) {
	// E = 3G puts K at infinity.
	_, err := Convert(PairEG, 3e6, 1e6)
	if !errors.Is(err, errors.ErrCodeDomain) {
		t.Errorf("Convert(E=3G) error = %v, want %s", err, errors.ErrCodeDomain)
	}
}

func TestFromPartial(t *testing.T) {
	tests := []struct {
		name     string
		in       Partial
		wantCode errors.Code
		wantNu   float64
	}{
		{"none", Partial{}, errors.ErrCodeInsufficientInput, 0},
		{"one", Partial{E: ptr(1e6)}, errors.ErrCodeInsufficientInput, 0},
		{"E and nu", Partial{E: ptr(1e6), Nu: ptr(0.25)}, "", 0.25},
		{"E nu G prefers E-nu", Partial{E: ptr(1e6), Nu: ptr(0.25), G: ptr(1)}, "", 0.25},
		{"K and G", Partial{K: ptr(666666.6666666666), G: ptr(400000)}, "", 0.25},
		{"lambda and nu unsupported", Partial{Lambda: ptr(4e5), Nu: ptr(0.25)}, errors.ErrCodeInsufficientInput, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromPartial(tt.in)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(m.Nu, tt.wantNu, 1e-9) {
				t.Errorf("Nu = %v, want %v", m.Nu, tt.wantNu)
			}
		})
	}
}

func TestPairString(t *testing.T) {
	if PairLambdaG.String() != "lambda-G" {
		t.Errorf("String() = %q", PairLambdaG.String())
	}
	if Pair(42).String() != "unknown" {
		t.Errorf("String() = %q", Pair(42).String())
	}
}

func TestDynamicToStatic(t *testing.T) {
	tests := []struct {
		name   string
		c      Correlation
		l      Lithology
		wantE  float64
		wantNu float64
	}{
		{"eissa kazi", EissaKazi, Shale, 0.541, 0.87},
		{"sandstone overrides", Linear, Sandstone, 0.541, 0.87},
		{"plona cook", PlonaCook, Shale, 0.7, 0.9},
		{"carbonate", Linear, Carbonate, 0.7, 0.9},
		{"linear shale", Linear, Shale, 0.6, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DynamicToStatic(ptr(1e6), ptr(0.3), tt.c, tt.l)
			if got.E == nil || !approx(*got.E, tt.wantE*1e6, 1e-12) {
				t.Errorf("E = %v, want %v", got.E, tt.wantE*1e6)
			}
			if got.Nu == nil || !approx(*got.Nu, tt.wantNu*0.3, 1e-12) {
				t.Errorf("Nu = %v, want %v", got.Nu, tt.wantNu*0.3)
			}
		})
	}

	if got := DynamicToStatic(nil, nil, EissaKazi, Sandstone); got.E != nil || got.Nu != nil {
		t.Errorf("nil inputs should stay nil, got %+v", got)
	}
}

func TestCompressibility(t *testing.T) {
	cb := BulkCompressibility(1e6, 0.25)
	if !approx(cb, 5e-7, 1e-12) {
		t.Errorf("BulkCompressibility = %v, want 5e-7", cb)
	}
	cp, err := PoreCompressibility(cb, 3e-7, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(cp, 1e-6, 1e-9) {
		t.Errorf("PoreCompressibility = %v, want 1e-6", cp)
	}
	if _, err := PoreCompressibility(cb, 3e-7, 0); !errors.Is(err, errors.ErrCodeDomain) {
		t.Errorf("zero porosity error = %v", err)
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLithology("Shale"); err != nil || l != Shale {
		t.Errorf("ParseLithology = %v, %v", l, err)
	}
	if _, err := ParseLithology("granite"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseLithology(granite) error = %v", err)
	}
	if _, err := ParseCorrelation("bogus"); err == nil {
		t.Error("ParseCorrelation(bogus) should fail")
	}
}
