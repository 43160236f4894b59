package tools

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/geomech/pkg/errors"
)

const tol = 1e-6

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b))
}

// call runs a tool from the default registry and decodes the response.
func call(t *testing.T, name, input string) map[string]any {
	t.Helper()
	out, err := Default().Call(context.Background(), name, []byte(input))
	if err != nil {
		t.Fatalf("%s(%s): %v", name, input, err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("decode %s response: %v", name, err)
	}
	return m
}

func number(t *testing.T, m map[string]any, key string) float64 {
	t.Helper()
	v, ok := m[key].(float64)
	if !ok {
		t.Fatalf("field %q = %v (%T), want number", key, m[key], m[key])
	}
	return v
}

func TestDefaultRegistersEveryTool(t *testing.T) {
	want := []string{
		"geomech_breakdown_pressure",
		"geomech_breakout_stress_inversion",
		"geomech_breakout_width",
		"geomech_critical_drawdown",
		"geomech_critical_mud_weight_collapse",
		"geomech_deviated_well_stress",
		"geomech_dynamic_to_static_moduli",
		"geomech_effective_stress",
		"geomech_elastic_moduli_conversion",
		"geomech_fault_stability",
		"geomech_fracture_gradient",
		"geomech_horizontal_stress",
		"geomech_hydraulic_fracture_width",
		"geomech_leak_off_pressure",
		"geomech_pore_compressibility",
		"geomech_pore_pressure_eaton",
		"geomech_reservoir_compaction",
		"geomech_rock_strength_mohr_coulomb",
		"geomech_safe_mud_weight_window",
		"geomech_sand_production",
		"geomech_shear_failure_criteria",
		"geomech_stress_path",
		"geomech_stress_polygon",
		"geomech_tensile_failure",
		"geomech_thermal_stress",
		"geomech_ucs_from_logs",
		"geomech_vertical_stress",
	}
	reg := Default()
	if got := reg.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v\nwant %v", got, want)
	}
	if reg.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", reg.Len(), len(want))
	}
	for _, c := range Categories {
		if len(reg.List(c)) == 0 {
			t.Errorf("category %s has no tools", c)
		}
	}
	if n := len(reg.List("")); n != len(want) {
		t.Errorf("List(\"\") returned %d tools", n)
	}
}

func TestToolExamplesRun(t *testing.T) {
	reg := Default()
	for _, tool := range reg.List("") {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Summary == "" {
				t.Error("missing summary")
			}
			if !json.Valid(tool.Example) {
				t.Fatalf("example is not valid JSON: %s", tool.Example)
			}
			out, err := reg.Call(context.Background(), tool.Name, tool.Example)
			if err != nil {
				t.Fatalf("example failed: %v", err)
			}
			var m map[string]any
			if err := json.Unmarshal(out, &m); err != nil {
				t.Fatalf("response is not an object: %v", err)
			}
			if _, ok := m["units"].(string); !ok {
				t.Error("response has no units")
			}
			if _, ok := m["inputs"].(map[string]any); !ok {
				t.Error("response has no inputs")
			}
		})
	}
}

func TestCallErrors(t *testing.T) {
	tests := []struct {
		name  string
		tool  string
		input string
		code  errors.Code
	}{
		{"unknown tool", "geomech_nope", `{}`, errors.ErrCodeUnknownTool},
		{"malformed json", "geomech_vertical_stress", `{"depth":`, errors.ErrCodeInvalidInput},
		{"not an object", "geomech_vertical_stress", `[1, 2]`, errors.ErrCodeInvalidInput},
		{"unknown field", "geomech_vertical_stress", `{"depth": 100, "dept": 1}`, errors.ErrCodeInvalidInput},
		{"missing required", "geomech_vertical_stress", `{}`, errors.ErrCodeInvalidInput},
		{"null required", "geomech_vertical_stress", `{"depth": null}`, errors.ErrCodeInvalidInput},
		{"wrong type", "geomech_vertical_stress", `{"depth": "deep"}`, errors.ErrCodeInvalidInput},
		{"negative depth", "geomech_vertical_stress", `{"depth": -1}`, errors.ErrCodeInvalidInput},
		{"explicit zero density", "geomech_vertical_stress", `{"depth": 100, "avg_density": 0}`, errors.ErrCodeInvalidInput},
		{"water deeper than well", "geomech_vertical_stress", `{"depth": 100, "water_depth": 200}`, errors.ErrCodeInvalidInput},
		{"bad enum", "geomech_pore_pressure_eaton", `{"depth": 1, "observed_value": 1, "normal_value": 1, "overburden_psi": 1, "method": "density"}`, errors.ErrCodeInvalidInput},
		{"exponent out of range", "geomech_pore_pressure_eaton", `{"depth": 1, "observed_value": 1, "normal_value": 1, "overburden_psi": 1, "eaton_exponent": 6}`, errors.ErrCodeInvalidInput},
		{"one modulus", "geomech_elastic_moduli_conversion", `{"youngs_modulus": 1000000}`, errors.ErrCodeInsufficientInput},
		{"shape mismatch", "geomech_effective_stress", `{"total_stress": [1, 2], "pore_pressure": [1, 2, 3]}`, errors.ErrCodeShapeMismatch},
		{"no logs", "geomech_ucs_from_logs", `{}`, errors.ErrCodeInsufficientInput},
		{"no dynamic moduli", "geomech_dynamic_to_static_moduli", `{}`, errors.ErrCodeInsufficientInput},
		{"no bulk compressibility", "geomech_pore_compressibility", `{"porosity": 0.2}`, errors.ErrCodeInsufficientInput},
		{"inverted horizontal stresses", "geomech_breakout_width", `{"sigma_h_max": 7000, "sigma_h_min": 9000, "pore_pressure": 4650, "mud_weight": 10, "wellbore_azimuth": 0, "ucs": 3000, "friction_angle": 30}`, errors.ErrCodeInvalidInput},
		{"unknown criterion", "geomech_shear_failure_criteria", `{"sigma_1": 3, "sigma_2": 2, "sigma_3": 1, "ucs": 1, "cohesion": 1, "friction_angle": 30, "criteria": ["tresca"]}`, errors.ErrCodeInvalidInput},
		{"empty criteria", "geomech_shear_failure_criteria", `{"sigma_1": 3, "sigma_2": 2, "sigma_3": 1, "ucs": 1, "cohesion": 1, "friction_angle": 30, "criteria": []}`, errors.ErrCodeInvalidInput},
		{"friction angle at 90", "geomech_rock_strength_mohr_coulomb", `{"cohesion": 500, "friction_angle": 90, "effective_stress_min": 0}`, errors.ErrCodeInvalidInput},
	}
	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Call(context.Background(), tt.tool, []byte(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestCallMissingFieldsNamed(t *testing.T) {
	_, err := Default().Call(context.Background(), "geomech_horizontal_stress", []byte(`{"vertical_stress": 10000}`))
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := errors.UserMessage(err)
	for _, f := range []string{"pore_pressure", "poisson_ratio"} {
		if !strings.Contains(msg, f) {
			t.Errorf("message %q does not name %s", msg, f)
		}
	}
}

func TestCallCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Default().Call(ctx, "geomech_vertical_stress", []byte(`{"depth": 1}`)); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestVerticalStressResponse(t *testing.T) {
	m := call(t, "geomech_vertical_stress", `{"depth": 10000}`)
	if v := number(t, m, "value"); !approx(v, 10010.695187165776) {
		t.Errorf("value = %v", v)
	}
	if g := number(t, m, "gradient"); !approx(g, 1.0010695187165776) {
		t.Errorf("gradient = %v", g)
	}
	in := m["inputs"].(map[string]any)
	if in["avg_density"] != 144.0 || in["water_density"] != 64.0 || in["water_depth"] != 0.0 {
		t.Errorf("inputs did not echo defaults: %v", in)
	}
}

func TestEffectiveStressShapes(t *testing.T) {
	scalar := call(t, "geomech_effective_stress", `{"total_stress": 10000, "pore_pressure": 4650}`)
	if v := number(t, scalar, "value"); v != 5350 {
		t.Errorf("scalar value = %v, want 5350", v)
	}

	series := call(t, "geomech_effective_stress", `{"total_stress": [9000, 10000], "pore_pressure": 4650, "biot_coefficient": 0.8}`)
	vs, ok := series["value"].([]any)
	if !ok || len(vs) != 2 {
		t.Fatalf("series value = %v", series["value"])
	}
	if !approx(vs[0].(float64), 5280) || !approx(vs[1].(float64), 6280) {
		t.Errorf("series value = %v, want [5280 6280]", vs)
	}
}

func TestHorizontalStressRegime(t *testing.T) {
	tests := []struct {
		tectonic string
		regime   string
	}{
		{"0", "normal"},
		{"0.5", "strike-slip"},
		{"1", "reverse"},
	}
	for _, tt := range tests {
		m := call(t, "geomech_horizontal_stress",
			`{"vertical_stress": 10000, "pore_pressure": 4650, "poisson_ratio": 0.25, "tectonic_factor": `+tt.tectonic+`}`)
		if m["stress_regime"] != tt.regime {
			t.Errorf("tectonic %s: regime = %v, want %s", tt.tectonic, m["stress_regime"], tt.regime)
		}
		if sh := number(t, m, "sigma_h_min"); !approx(sh, 6433.333333333333) {
			t.Errorf("tectonic %s: sigma_h_min = %v", tt.tectonic, sh)
		}
	}
}

func TestStressPolygonActualState(t *testing.T) {
	bare := call(t, "geomech_stress_polygon", `{"vertical_stress": 10000, "pore_pressure": 4650}`)
	if _, ok := bare["actual_stress_state"]; ok {
		t.Error("actual_stress_state reported without measured stresses")
	}

	m := call(t, "geomech_stress_polygon",
		`{"vertical_stress": 10000, "pore_pressure": 4650, "sigma_h_min": 7000, "sigma_h_max": 9000}`)
	state, ok := m["actual_stress_state"].(map[string]any)
	if !ok {
		t.Fatalf("actual_stress_state = %v", m["actual_stress_state"])
	}
	if state["regime"] != "normal_faulting" {
		t.Errorf("regime = %v", state["regime"])
	}
	if state["within_frictional_limits"] != true {
		t.Errorf("within_frictional_limits = %v", state["within_frictional_limits"])
	}
	if r := number(t, state, "sigma_v_over_sigma_h_min"); !approx(r, 5350.0/2350.0) {
		t.Errorf("sigma_v_over_sigma_h_min = %v", r)
	}
}

func TestShearCriteriaSummary(t *testing.T) {
	m := call(t, "geomech_shear_failure_criteria",
		`{"sigma_1": 8000, "sigma_2": 6000, "sigma_3": 3000, "ucs": 5000, "cohesion": 1000, "friction_angle": 30}`)
	results, ok := m["criteria_results"].([]any)
	if !ok || len(results) != 3 {
		t.Fatalf("criteria_results = %v", m["criteria_results"])
	}
	var names []string
	for _, r := range results {
		names = append(names, r.(map[string]any)["criterion"].(string))
	}
	if want := []string{"mohr_coulomb", "drucker_prager", "mogi_coulomb"}; !slices.Equal(names, want) {
		t.Errorf("criteria = %v, want %v", names, want)
	}
	summary := m["summary"].(map[string]any)
	most := number(t, summary, "most_conservative_ratio")
	least := number(t, summary, "least_conservative_ratio")
	if most < least || !approx(number(t, summary, "sigma_2_effect_range"), most-least) {
		t.Errorf("summary = %v", summary)
	}
}

func TestDeviatedWellVertical(t *testing.T) {
	m := call(t, "geomech_deviated_well_stress", `{"sigma_v": 10000, "sigma_h_max": 9000, "sigma_h_min": 7000,
		"sigma_h_max_azimuth": 30, "well_azimuth": 30, "well_inclination": 0,
		"pore_pressure": 4650, "mud_weight": 10, "depth": 10000}`)

	ts := m["transformed_stresses"].(map[string]any)
	for key, want := range map[string]float64{"sigma_xx": 9000, "sigma_yy": 7000, "sigma_zz": 10000, "tau_xy": 0, "tau_xz": 0, "tau_yz": 0} {
		if got := ts[key].(float64); math.Abs(got-want) > 1e-6 {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
	if pw := number(t, m, "mud_pressure"); !approx(pw, 5200) {
		t.Errorf("mud_pressure = %v, want 5200", pw)
	}
	wall := m["wellbore_wall_stresses"].(map[string]any)
	// 3σH - σh - Pw
	if h := number(t, wall, "max_hoop_stress"); !approx(h, 14800) {
		t.Errorf("max_hoop_stress = %v, want 14800", h)
	}
	p := m["principal_stresses"].([]any)
	if !approx(p[0].(float64), 10000) || !approx(p[2].(float64), 7000) {
		t.Errorf("principal_stresses = %v", p)
	}

	profile := m["wall_profile"].([]any)
	if len(profile) != 12 {
		t.Fatalf("wall_profile has %d points, want 12 at the default 15° step", len(profile))
	}
	peak := m["peak_hoop"].(map[string]any)
	if number(t, peak, "theta") != 90 || !approx(number(t, peak, "hoop_stress"), 14800) {
		t.Errorf("peak_hoop = %v, want 14800 at 90°", peak)
	}
	if s := number(t, m, "max_tau_theta_z"); math.Abs(s) > 1e-6 {
		t.Errorf("max_tau_theta_z = %v, want 0 for a vertical well", s)
	}
}

func TestEatonExponentDefault(t *testing.T) {
	base := `{"depth": 10000, "observed_value": 1, "normal_value": 2, "overburden_psi": 10000, "method": "resistivity"}`
	m := call(t, "geomech_pore_pressure_eaton", base)
	if n := number(t, m, "eaton_exponent"); n != 1.2 {
		t.Errorf("resistivity exponent = %v, want 1.2", n)
	}
	in := m["inputs"].(map[string]any)
	if in["eaton_exponent"] != 1.2 {
		t.Errorf("inputs eaton_exponent = %v", in["eaton_exponent"])
	}
}

func TestToolFields(t *testing.T) {
	tool, ok := Default().Lookup("geomech_breakout_width")
	if !ok {
		t.Fatal("breakout tool not registered")
	}
	fields := make(map[string]Field, len(tool.Fields))
	for _, f := range tool.Fields {
		fields[f.Name] = f
	}
	for name, required := range map[string]bool{
		"sigma_h_max":   true,
		"pore_pressure": true,
		"ucs":           true,
		"depth":         false,
	} {
		f, ok := fields[name]
		if !ok {
			t.Errorf("field %s missing", name)
			continue
		}
		if f.Required != required || f.Type != "number" {
			t.Errorf("field %s = %+v", name, f)
		}
	}

	eff, _ := Default().Lookup("geomech_effective_stress")
	if eff.Fields[0].Type != "number or array" {
		t.Errorf("total_stress type = %q", eff.Fields[0].Type)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	tool := define[verticalStressRequest]("x", CategoryStress, "x", `{}`, verticalStress)
	if err := reg.Register(tool); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(tool); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := reg.Register(Tool{Name: "y"}); err == nil {
		t.Error("tool without handler should fail")
	}
}

func TestResponseMarshal(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			"fields then units and inputs",
			Response{Result: struct {
				A float64 `json:"a"`
			}{1}, Units: "psi", Inputs: map[string]int{"x": 1}},
			`{"a":1,"units":"psi","inputs":{"x":1}}`,
		},
		{"empty result", Response{Result: struct{}{}, Units: "psi"}, `{"units":"psi"}`},
		{"no extras", Response{Result: map[string]int{"b": 2}}, `{"b":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := json.Marshal(Response{Result: 3.5}); err == nil {
		t.Error("non-object result should fail to marshal")
	}
}

func TestNumbers(t *testing.T) {
	var n numbers
	if err := json.Unmarshal([]byte(`"x"`), &n); err == nil {
		t.Error("string should not decode as numbers")
	}
	if err := json.Unmarshal([]byte(`[1, 2]`), &n); err != nil || n.scalar || len(n.values) != 2 {
		t.Errorf("array decode = %+v, %v", n, err)
	}
	b, _ := json.Marshal(numbers{values: []float64{3}, scalar: true})
	if string(b) != "3" {
		t.Errorf("scalar marshal = %s", b)
	}
}

func TestDeviatedWellProfileStep(t *testing.T) {
	base := `"sigma_v": 10000, "sigma_h_max": 9000, "sigma_h_min": 7000, "sigma_h_max_azimuth": 0,
		"well_azimuth": 45, "well_inclination": 60, "pore_pressure": 4650, "mud_weight": 10, "depth": 10000`

	m := call(t, "geomech_deviated_well_stress", `{`+base+`, "profile_step": 45}`)
	if n := len(m["wall_profile"].([]any)); n != 4 {
		t.Errorf("wall_profile has %d points, want 4", n)
	}
	if number(t, m, "max_tau_theta_z") <= 0 {
		t.Error("an inclined well off the principal axes should carry wall shear")
	}

	_, err := Default().Call(context.Background(), "geomech_deviated_well_stress", []byte(`{`+base+`, "profile_step": 120}`))
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("profile_step 120: err = %v, want INVALID_INPUT", err)
	}
}
