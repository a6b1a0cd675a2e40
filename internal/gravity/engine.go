package gravity

import (
	"driver-risk-service/internal/model"
)

// Fallbacks used when an override strips a parameter the engine relies on.
const (
	defaultMinIdlingDuration  = 600
	defaultHarshBrakingWeight = 0.1
)

// SpeedZone is the speed-violation sub-category, selected by the speed limit
// that was configured on the vehicle when the event fired.
type SpeedZone string

const (
	ZoneYard    SpeedZone = "Patio"
	ZoneHill    SpeedZone = "Serra"
	ZoneHighway SpeedZone = "Rodovia"
)

// ZoneForLimit selects the sub-category for a configured speed limit. The
// same selection feeds both factor computation and base-weight resolution so
// the two cannot diverge.
func ZoneForLimit(limit float64) SpeedZone {
	switch {
	case limit <= 20:
		return ZoneYard
	case limit <= 40:
		return ZoneHill
	default:
		return ZoneHighway
	}
}

// BlockKey returns the rule block holding the zone's parameters.
func (z SpeedZone) BlockKey() string {
	switch z {
	case ZoneYard:
		return BlockSpeedYard
	case ZoneHill:
		return BlockSpeedHill
	default:
		return BlockSpeedHighway
	}
}

// Result is the scoring outcome for a single event.
type Result struct {
	Factor     float64
	BaseWeight float64
	Score      float64
}

// Evaluate computes the gravity factor and final score for one event. It is
// pure: no shared state, independent of row order, safe to call concurrently.
func Evaluate(e model.Event, cfg Config) Result {
	switch e.Type {
	case model.ViolationSpeedExcess:
		return evalSpeedExcess(e, cfg)
	case model.ViolationIdling:
		return weighted(evalIdlingFactor(e, cfg[BlockIdling]), cfg[BlockIdling])
	case model.ViolationRpmExcess:
		return weighted(durationFactor(e, cfg[BlockRpmExcess]), cfg[BlockRpmExcess])
	case model.ViolationGreenBand:
		return weighted(durationFactor(e, cfg[BlockGreenBand]), cfg[BlockGreenBand])
	case model.ViolationEngineBrake:
		return weighted(durationFactor(e, cfg[BlockEngineBrake]), cfg[BlockEngineBrake])
	case model.ViolationHarshBraking:
		return evalHarshBraking(cfg)
	default:
		return Result{Factor: 1}
	}
}

func evalSpeedExcess(e model.Event, cfg Config) Result {
	conf := cfg[ZoneForLimit(e.SpeedLimit).BlockKey()]
	factor := 1.0

	extrapolation := e.SpeedMax - e.SpeedLimit
	if extrapolation > 0 && conf.Get(ParamSpeedIncrement) > 0 {
		multiplier := conf.Get(ParamSpeedFactor)
		if conf.Has(ParamSpeedThresholdHigh) && e.SpeedMax > conf.Get(ParamSpeedThresholdHigh) {
			multiplier = conf.GetOr(ParamSpeedFactorHigh, conf.Get(ParamSpeedFactor))
		}
		factor += extrapolation / conf.Get(ParamSpeedIncrement) * multiplier
	}
	factor += durationTerm(float64(e.DurationSeconds), conf)

	return weighted(factor, conf)
}

// evalIdlingFactor applies the duration increment only when the event lasted
// at least min_duration_filter and the brake pedal was not engaged. The event
// itself always stays in the batch with its baseline factor.
func evalIdlingFactor(e model.Event, conf Params) float64 {
	factor := 1.0
	if float64(e.DurationSeconds) >= conf.GetOr(ParamMinDurationFilter, defaultMinIdlingDuration) && !e.BrakePedal {
		factor += durationTerm(float64(e.DurationSeconds), conf)
	}
	return factor
}

func durationFactor(e model.Event, conf Params) float64 {
	return 1.0 + durationTerm(float64(e.DurationSeconds), conf)
}

func durationTerm(duration float64, conf Params) float64 {
	if duration > 0 && conf.Get(ParamDurationIncrement) > 0 {
		return duration / conf.Get(ParamDurationIncrement) * conf.Get(ParamDurationFactor)
	}
	return 0
}

// evalHarshBraking is a flat per-occurrence penalty: the factor is pinned to
// zero and the score equals the base weight no matter what else the row says.
func evalHarshBraking(cfg Config) Result {
	weight := cfg[BlockHarshBraking].GetOr(ParamBaseWeight, defaultHarshBrakingWeight)
	return Result{Factor: 0, BaseWeight: weight, Score: weight}
}

func weighted(factor float64, conf Params) Result {
	weight := conf.Get(ParamBaseWeight)
	return Result{Factor: factor, BaseWeight: weight, Score: weight * factor}
}
