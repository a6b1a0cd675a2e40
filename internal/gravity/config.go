package gravity

import (
	"encoding/json"
	"fmt"
)

// Rule-block keys. They match the parameter editor of the legacy dashboard,
// so existing override payloads keep working unchanged.
const (
	BlockSpeedHighway = "Velocidade_Excessiva_Rodovia"
	BlockSpeedHill    = "Velocidade_Excessiva_Serra"
	BlockSpeedYard    = "Velocidade_Excessiva_Patio"
	BlockIdling       = "Marcha_lenta"
	BlockHarshBraking = "Freada_Brusca"
	BlockRpmExcess    = "RPM_Excessiva"
	BlockGreenBand    = "Faixa_Verde"
	BlockEngineBrake  = "Freio_Motor"
)

// Parameter names understood by the engine.
const (
	ParamBaseWeight         = "base_weight"
	ParamSpeedIncrement     = "speed_increment"
	ParamSpeedFactor        = "speed_factor"
	ParamSpeedFactorHigh    = "speed_factor_high"
	ParamSpeedThresholdHigh = "speed_threshold_high"
	ParamDurationIncrement  = "duration_increment"
	ParamDurationFactor     = "duration_factor"
	ParamMinDurationFilter  = "min_duration_filter"
)

var knownParams = map[string]struct{}{
	ParamBaseWeight:         {},
	ParamSpeedIncrement:     {},
	ParamSpeedFactor:        {},
	ParamSpeedFactorHigh:    {},
	ParamSpeedThresholdHigh: {},
	ParamDurationIncrement:  {},
	ParamDurationFactor:     {},
	ParamMinDurationFilter:  {},
}

// Params holds the numeric parameters of one rule block. Presence matters:
// a speed block without speed_threshold_high never takes the high-speed
// branch, so parameters must not be materialized with zero values.
type Params map[string]float64

func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Get returns the parameter value, or 0 when absent.
func (p Params) Get(name string) float64 {
	return p[name]
}

// GetOr returns the parameter value, or fallback when absent.
func (p Params) GetOr(name string, fallback float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return fallback
}

// Config maps rule-block keys to their parameters. A Config is built once per
// run and never mutated afterwards.
type Config map[string]Params

// defaults is the built-in rule table. Values are load-bearing for
// compatibility with previously published scores; change them only together
// with the published scoring documentation.
var defaults = Config{
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

// Defaults returns a deep copy of the built-in rule table.
func Defaults() Config {
	cfg := make(Config, len(defaults))
	for block, params := range defaults {
		p := make(Params, len(params))
		for name, value := range params {
			p[name] = value
		}
		cfg[block] = p
	}
	return cfg
}

// ConfigError reports an invalid override. Overrides are explicit user input,
// so they are rejected rather than silently defaulted.
type ConfigError struct {
	Block  string
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("gravity config: block %q: %s", e.Block, e.Reason)
	}
	return fmt.Sprintf("gravity config: block %q, parameter %q: %s", e.Block, e.Param, e.Reason)
}

// NewConfig builds an effective config from the defaults merged with the
// caller's partial overrides at individual-parameter granularity. A parameter
// name that is known to the engine may be set on any block, even one whose
// defaults omit it; that is how a yard speed block gains a high-speed
// threshold.
func NewConfig(overrides map[string]map[string]any) (Config, error) {
	cfg := Defaults()
	for block, params := range overrides {
		base, ok := cfg[block]
		if !ok {
			return nil, &ConfigError{Block: block, Reason: "unrecognized rule block"}
		}
		for name, raw := range params {
			if _, ok := knownParams[name]; !ok {
				return nil, &ConfigError{Block: block, Param: name, Reason: "unrecognized parameter"}
			}
			value, err := toFloat(raw)
			if err != nil {
				return nil, &ConfigError{Block: block, Param: name, Reason: err.Error()}
			}
			base[name] = value
		}
	}
	return cfg, nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", v.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("non-numeric value %v", raw)
	}
}
