package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"driver-risk-service/internal/model"
)

// BatchFormatError means the upload as a whole is unusable: not readable as a
// semicolon-delimited table, or missing a required column. Nothing is
// produced from such a batch.
type BatchFormatError struct {
	Reason string
}

func (e *BatchFormatError) Error() string {
	return "batch format: " + e.Reason
}

// DroppedRow records one discarded input row for the non-fatal summary.
type DroppedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Summary reports what happened to the batch besides the events themselves.
type Summary struct {
	TotalRows int          `json:"total_rows"`
	Dropped   []DroppedRow `json:"dropped_rows"`
}

// Day-first layouts accepted for the event timestamp, most specific first.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer converts a raw telemetry export into typed events.
//
// Field-level fallbacks are deliberately lossy: numeric cells that fail to
// parse become 0 and coordinates become nil without raising, which silently
// affects score totals. Row-level failures (unknown violation label,
// unparseable timestamp) drop the row and are counted.
type Normalizer struct {
	log   zerolog.Logger
	comma rune
}

func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log, comma: ';'}
}

// Normalize reads the whole batch and returns the surviving events plus a
// summary of dropped rows. The error is non-nil only for fatal
// BatchFormatError conditions.
func (n *Normalizer) Normalize(r io.Reader) ([]model.Event, Summary, error) {
	reader := csv.NewReader(r)
	reader.Comma = n.comma
	reader.FieldsPerRecord = -1
	// DMS coordinates carry bare quotes (27°35'12.0"S).
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, Summary{}, &BatchFormatError{Reason: "empty or unreadable file"}
	}

	cols := resolveColumns(header)
	if !cols.has(colDate) {
		return nil, Summary{}, &BatchFormatError{Reason: fmt.Sprintf("required column %q not found", "data_inicial_da_violacao")}
	}
	if !cols.has(colViolation) {
		return nil, Summary{}, &BatchFormatError{Reason: fmt.Sprintf("required column %q not found", "violacao")}
	}

	var (
		events  []model.Event
		summary Summary
	)

	// Source rows are numbered from 1 with the header as row 1, so the
	// first data row is 2. The numbering must survive to the output for
	// traceability back into the uploaded file.
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				summary.TotalRows++
				summary.Dropped = append(summary.Dropped, DroppedRow{Row: row, Reason: "malformed row"})
				continue
			}
			return nil, Summary{}, &BatchFormatError{Reason: err.Error()}
		}
		summary.TotalRows++

		event, reason := n.normalizeRow(cols, record, row)
		if reason != "" {
			summary.Dropped = append(summary.Dropped, DroppedRow{Row: row, Reason: reason})
			continue
		}
		events = append(events, event)
	}

	if len(summary.Dropped) > 0 {
		n.log.Debug().
			Int("total_rows", summary.TotalRows).
			Int("dropped", len(summary.Dropped)).
			Msg("rows dropped during normalization")
	}

	return events, summary, nil
}

// normalizeRow parses one record. A non-empty reason means the row is
// dropped; every other parsing problem falls back to zero values.
func (n *Normalizer) normalizeRow(cols columnIndex, record []string, row int) (model.Event, string) {
	violationType, ok := model.ParseViolationType(cols.value(record, colViolation))
	if !ok {
		return model.Event{}, "unrecognized violation label"
	}

	occurredAt, ok := parseDayFirst(cols.value(record, colDate))
	if !ok {
		return model.Event{}, "unparseable timestamp"
	}

	return model.Event{
		Driver:          cols.value(record, colDriver),
		Vehicle:         cols.value(record, colVehicle),
		Type:            violationType,
		OccurredAt:      occurredAt,
		DurationSeconds: parseDurationSeconds(cols.value(record, colDuration)),
		SpeedMax:        parseNumber(cols.value(record, colSpeedMax)),
		SpeedLimit:      parseNumber(cols.value(record, colSpeedLimit)),
		RpmMax:          parseNumber(cleanRpm(cols.value(record, colRpmMax))),
		RpmLimit:        parseNumber(cols.value(record, colRpmLimit)),
		Distance:        parseNumber(cols.value(record, colDistance)),
		BrakePedal:      strings.EqualFold(cols.value(record, colBrakePedal), "sim"),
		StartLat:        ParseCoordinate(cols.value(record, colStartLat)),
		StartLon:        ParseCoordinate(cols.value(record, colStartLon)),
		EndLat:          ParseCoordinate(cols.value(record, colEndLat)),
		EndLon:          ParseCoordinate(cols.value(record, colEndLon)),
		SourceRow:       row,
	}, ""
}

func parseDayFirst(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDurationSeconds converts "HH:MM:SS" to seconds, 0 on any failure.
func parseDurationSeconds(raw string) int {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return 0
	}
	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	s, errS := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errH != nil || errM != nil || errS != nil {
		return 0
	}
	total := h*3600 + m*60 + s
	if total < 0 {
		return 0
	}
	return total
}

func parseNumber(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// cleanRpm strips the thousand-separator formatting some exports apply to the
// max-RPM column: a trailing ".0" goes first, remaining dots are separators
// ("1.644" means 1644).
func cleanRpm(raw string) string {
	raw = strings.TrimSuffix(raw, ".0")
	return strings.ReplaceAll(raw, ".", "")
}
