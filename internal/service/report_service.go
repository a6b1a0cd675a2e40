package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"driver-risk-service/internal/gravity"
	"driver-risk-service/internal/ingest"
	"driver-risk-service/internal/metrics"
	"driver-risk-service/internal/model"
	"driver-risk-service/internal/report"
)

// ReportService orchestrates the batch pipeline: normalize once, then score,
// rank and summarize under an effective gravity config.
type ReportService struct {
	log        zerolog.Logger
	normalizer *ingest.Normalizer
	pipeline   *report.Pipeline
}

func NewReportService(log zerolog.Logger, workers int) *ReportService {
	return &ReportService{
		log:        log,
		normalizer: ingest.NewNormalizer(log),
		pipeline:   report.NewPipeline(log, workers),
	}
}

// Report is the full published result of one run.
type Report struct {
	ID          uuid.UUID          `json:"report_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Events      []model.Event      `json:"events"`
	Drivers     []model.RankingRow `json:"ranking_drivers"`
	Vehicles    []model.RankingRow `json:"ranking_vehicles"`
	Summary     model.FleetSummary `json:"summary"`
	Ingest      ingest.Summary     `json:"ingest"`
}

// Batch holds a normalized input so it can be scored repeatedly under
// different configs without re-normalizing.
type Batch struct {
	svc     *ReportService
	events  []model.Event
	summary ingest.Summary
}

// NormalizeBatch reads and normalizes a raw upload. The returned batch is
// immutable; scoring operates on copies.
func (s *ReportService) NormalizeBatch(raw io.Reader) (*Batch, error) {
	events, summary, err := s.normalizer.Normalize(raw)
	if err != nil {
		metrics.ReportBatches.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.RowsDropped.Add(float64(len(summary.Dropped)))
	return &Batch{svc: s, events: events, summary: summary}, nil
}

// BuildReport runs the whole pipeline for one upload: validate and merge the
// config overrides, normalize, score, rank, summarize.
func (s *ReportService) BuildReport(ctx context.Context, raw io.Reader, overrides map[string]map[string]any) (*Report, error) {
	cfg, err := gravity.NewConfig(overrides)
	if err != nil {
		metrics.ReportBatches.WithLabelValues("rejected").Inc()
		return nil, err
	}

	batch, err := s.NormalizeBatch(raw)
	if err != nil {
		return nil, err
	}

	return batch.Score(ctx, cfg)
}

// Score evaluates the batch under cfg and publishes a complete report. The
// batch's own events stay unscored so the caller can re-score with another
// config.
func (b *Batch) Score(ctx context.Context, cfg gravity.Config) (*Report, error) {
	started := time.Now()

	events := make([]model.Event, len(b.events))
	copy(events, b.events)

	run := &report.Run{ID: uuid.New(), Config: cfg, Events: events}
	run, err := b.svc.pipeline.Process(ctx, run)
	if err != nil {
		metrics.ReportBatches.WithLabelValues("failed").Inc()
		return nil, err
	}

	elapsed := time.Since(started)
	metrics.ReportBatches.WithLabelValues("ok").Inc()
	metrics.EventsScored.Add(float64(len(run.Events)))
	metrics.ReportDuration.Observe(elapsed.Seconds())

	b.svc.log.Info().
		Str("report_id", run.ID.String()).
		Int("rows", b.summary.TotalRows).
		Int("dropped", len(b.summary.Dropped)).
		Int("events", len(run.Events)).
		Dur("duration", elapsed).
		Msg("report batch processed")

	return &Report{
		ID:          run.ID,
		GeneratedAt: time.Now().UTC(),
		Events:      run.Events,
		Drivers:     run.Drivers,
		Vehicles:    run.Vehicles,
		Summary:     run.Summary,
		Ingest:      b.summary,
	}, nil
}
