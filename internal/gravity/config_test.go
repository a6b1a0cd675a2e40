package gravity

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultsTable(t *testing.T) {
	cfg := Defaults()

	want := map[string]map[string]float64{
		BlockSpeedHighway: {
			ParamBaseWeight: 0.2, ParamSpeedIncrement: 5, ParamSpeedFactor: 0.2,
			ParamSpeedFactorHigh: 0.4, ParamSpeedThresholdHigh: 100,
			ParamDurationIncrement: 10, ParamDurationFactor: 0.1,
		},
		BlockSpeedHill: {
			ParamBaseWeight: 0.1, ParamSpeedIncrement: 5, ParamSpeedFactor: 0.1,
			ParamSpeedFactorHigh: 0.2, ParamSpeedThresholdHigh: 65,
			ParamDurationIncrement: 10, ParamDurationFactor: 0.05,
		},
		BlockSpeedYard: {
			ParamBaseWeight: 0.1, ParamSpeedIncrement: 5, ParamSpeedFactor: 0.1,
			ParamDurationIncrement: 10, ParamDurationFactor: 0.05,
		},
		BlockIdling: {
			ParamBaseWeight: 0.1, ParamDurationIncrement: 1200, ParamDurationFactor: 0.1,
			ParamMinDurationFilter: 600,
		},
		BlockHarshBraking: {
			ParamBaseWeight: 0.1,
		},
		BlockRpmExcess: {
			ParamBaseWeight: 0.07, ParamDurationIncrement: 30, ParamDurationFactor: 0.07,
		},
		BlockGreenBand: {
			ParamBaseWeight: 0.07, ParamDurationIncrement: 180, ParamDurationFactor: 0.07,
		},
		BlockEngineBrake: {
			ParamBaseWeight: 0.07, ParamDurationIncrement: 120, ParamDurationFactor: 0.07,
		},
	}

	if len(cfg) != len(want) {
		t.Fatalf("Defaults() has %d blocks, want %d", len(cfg), len(want))
	}
	for block, params := range want {
		got, ok := cfg[block]
		if !ok {
			t.Errorf("block %q missing", block)
			continue
		}
		if len(got) != len(params) {
			t.Errorf("block %q has %d params, want %d", block, len(got), len(params))
		}
		for name, value := range params {
			if !got.Has(name) {
				t.Errorf("block %q missing param %q", block, name)
				continue
			}
			if got.Get(name) != value {
				t.Errorf("block %q param %q = %v, want %v", block, name, got.Get(name), value)
			}
		}
	}

	// The yard speed block must not define a high-speed threshold: its
	// presence, not its value, activates the high-speed branch.
	if cfg[BlockSpeedYard].Has(ParamSpeedThresholdHigh) {
		t.Error("yard speed block should not define speed_threshold_high")
	}
}

func TestDefaultsIsDeepCopy(t *testing.T) {
	first := Defaults()
	first[BlockIdling][ParamBaseWeight] = 99

	second := Defaults()
	if second[BlockIdling].Get(ParamBaseWeight) != 0.1 {
		t.Errorf("mutating one Defaults() copy leaked into another: %v", second[BlockIdling].Get(ParamBaseWeight))
	}
}

func TestNewConfigMergesPerParameter(t *testing.T) {
	cfg, err := NewConfig(map[string]map[string]any{
		BlockSpeedHighway: {ParamBaseWeight: 0.3},
	})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if got := cfg[BlockSpeedHighway].Get(ParamBaseWeight); got != 0.3 {
		t.Errorf("overridden base_weight = %v, want 0.3", got)
	}
	// Sibling parameters of the same block keep their defaults.
	if got := cfg[BlockSpeedHighway].Get(ParamSpeedFactor); got != 0.2 {
		t.Errorf("sibling speed_factor = %v, want 0.2", got)
	}
	// Untouched blocks keep their defaults.
	if got := cfg[BlockIdling].Get(ParamMinDurationFilter); got != 600 {
		t.Errorf("untouched min_duration_filter = %v, want 600", got)
	}
}

func TestNewConfigNilOverrides(t *testing.T) {
	cfg, err := NewConfig(nil)
	if err != nil {
		t.Fatalf("NewConfig(nil): %v", err)
	}
	if cfg[BlockHarshBraking].Get(ParamBaseWeight) != 0.1 {
		t.Errorf("nil overrides should produce the default table")
	}
}

func TestNewConfigRejectsInvalidOverrides(t *testing.T) {
	cases := []struct {
		name      string
		overrides map[string]map[string]any
	}{
		{"unknown block", map[string]map[string]any{"Banguela": {ParamBaseWeight: 0.1}}},
		{"unknown parameter", map[string]map[string]any{BlockIdling: {"bogus_param": 1.0}}},
		{"string value", map[string]map[string]any{BlockIdling: {ParamBaseWeight: "fast"}}},
		{"bool value", map[string]map[string]any{BlockIdling: {ParamBaseWeight: true}}},
		{"bad json number", map[string]map[string]any{BlockIdling: {ParamBaseWeight: json.Number("not-a-number")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.overrides)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("error %v is not a *ConfigError", err)
			}
		})
	}
}

func TestNewConfigAcceptsNumericKinds(t *testing.T) {
	cfg, err := NewConfig(map[string]map[string]any{
		BlockIdling: {
			ParamMinDurationFilter: 300,
			ParamDurationFactor:    json.Number("0.2"),
		},
	})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg[BlockIdling].Get(ParamMinDurationFilter) != 300 {
		t.Errorf("int override = %v, want 300", cfg[BlockIdling].Get(ParamMinDurationFilter))
	}
	if cfg[BlockIdling].Get(ParamDurationFactor) != 0.2 {
		t.Errorf("json.Number override = %v, want 0.2", cfg[BlockIdling].Get(ParamDurationFactor))
	}
}
