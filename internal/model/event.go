package model

import (
	"fmt"
	"time"
)

// ViolationType is the closed set of telemetry violations the engine scores.
// Values are the Portuguese labels used by the telemetry export, so raw rows
// map onto the enum without a translation table.
type ViolationType string

const (
	ViolationSpeedExcess  ViolationType = "Velocidade excessiva"
	ViolationIdling       ViolationType = "Marcha lenta"
	ViolationHarshBraking ViolationType = "Freada brusca"
	ViolationRpmExcess    ViolationType = "RPM excessiva"
	ViolationGreenBand    ViolationType = "Faixa verde"
	ViolationEngineBrake  ViolationType = "Freio motor"
)

// ViolationTypes lists every recognized type in stable display order.
var ViolationTypes = []ViolationType{
	ViolationSpeedExcess,
	ViolationIdling,
	ViolationHarshBraking,
	ViolationRpmExcess,
	ViolationGreenBand,
	ViolationEngineBrake,
}

// ParseViolationType maps a raw label onto the enum. Rows carrying any other
// label are excluded upstream.
func ParseViolationType(label string) (ViolationType, bool) {
	for _, t := range ViolationTypes {
		if string(t) == label {
			return t, true
		}
	}
	return "", false
}

// Category groups violation types for high-level reporting. The mapping is
// fixed and not user-configurable.
type Category string

const (
	CategoryEconomic Category = "Econômica"
	CategorySafety   Category = "Segurança"
)

// Category returns the fixed reporting category for the violation type.
func (t ViolationType) Category() Category {
	switch t {
	case ViolationSpeedExcess, ViolationHarshBraking:
		return CategorySafety
	default:
		return CategoryEconomic
	}
}

// Event is one normalized violation occurrence. It is created once by the
// normalizer, scored once by the gravity engine, and read-only afterwards.
type Event struct {
	Driver          string        `json:"driver"`
	Vehicle         string        `json:"vehicle"`
	Type            ViolationType `json:"type"`
	OccurredAt      time.Time     `json:"occurred_at"`
	DurationSeconds int           `json:"duration_seconds"`

	SpeedMax   float64 `json:"speed_max"`
	SpeedLimit float64 `json:"speed_limit_configured"`
	RpmMax     float64 `json:"rpm_max"`
	RpmLimit   float64 `json:"rpm_limit_configured"`
	Distance   float64 `json:"distance"`
	BrakePedal bool    `json:"brake_pedal_engaged"`

	StartLat *float64 `json:"start_lat"`
	StartLon *float64 `json:"start_lon"`
	EndLat   *float64 `json:"end_lat"`
	EndLon   *float64 `json:"end_lon"`

	// SourceRow is the 1-based row position in the uploaded file, header
	// included, kept for traceability through to the final output.
	SourceRow int `json:"source_row"`

	GravityFactor float64 `json:"gravity_factor"`
	BaseWeight    float64 `json:"base_weight"`
	Score         float64 `json:"score"`
}

// RouteLink builds a Google Maps link for the event's trajectory. It returns
// an empty string when either coordinate pair is missing, and a single point
// link when start and end coincide.
func (e Event) RouteLink() string {
	if e.StartLat == nil || e.StartLon == nil || e.EndLat == nil || e.EndLon == nil {
		return ""
	}
	if *e.StartLat == *e.EndLat && *e.StartLon == *e.EndLon {
		return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", *e.StartLat, *e.StartLon)
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/%v,%v/%v,%v", *e.StartLat, *e.StartLon, *e.EndLat, *e.EndLon)
}
