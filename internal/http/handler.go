package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"driver-risk-service/internal/gravity"
	"driver-risk-service/internal/ingest"
	"driver-risk-service/internal/model"
	"driver-risk-service/internal/service"
)

type Handler struct {
	reportService *service.ReportService
	maxUpload     int64
	log           zerolog.Logger
}

func NewHandler(reportService *service.ReportService, maxUpload int64, log zerolog.Logger) *Handler {
	return &Handler{
		reportService: reportService,
		maxUpload:     maxUpload,
		log:           log,
	}
}

// eventView is an event as presented to callers: all normalized and scored
// fields plus the derived map link.
type eventView struct {
	model.Event
	RouteLink string `json:"route_link,omitempty"`
}

type reportView struct {
	*service.Report
	Events []eventView `json:"events"`
}

// createReport accepts a multipart telemetry CSV in the "file" part and an
// optional "config" part with partial gravity overrides, and returns the full
// scored report.
func (h *Handler) createReport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.handleError(c, service.ErrMissingFile)
		return
	}
	defer file.Close()

	overrides, err := parseOverrides(c.PostForm("config"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	rep, err := h.reportService.BuildReport(c.Request.Context(), file, overrides)
	if err != nil {
		h.handleError(c, err)
		return
	}

	sortRanking(rep.Drivers)
	sortRanking(rep.Vehicles)

	view := reportView{Report: rep, Events: make([]eventView, 0, len(rep.Events))}
	for _, e := range rep.Events {
		view.Events = append(view.Events, eventView{Event: e, RouteLink: e.RouteLink()})
	}

	c.JSON(http.StatusOK, successResponse(view))
}

// gravityDefaults exposes the built-in rule table so clients can render the
// parameter editor and reset overrides.
func (h *Handler) gravityDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"blocks": gravity.Defaults()}))
}

func parseOverrides(raw string) (map[string]map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var overrides map[string]map[string]any
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("%w: config overrides are not valid JSON", service.ErrInvalidInput)
	}
	return overrides, nil
}

// sortRanking orders rows for presentation: total descending, ties kept in
// their aggregation order.
func sortRanking(rows []model.RankingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var formatErr *ingest.BatchFormatError
	var configErr *gravity.ConfigError

	switch {
	case errors.As(err, &formatErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(formatErr.Error()))
	case errors.As(err, &configErr):
		c.JSON(http.StatusBadRequest, errorResponse(configErr.Error()))
	case errors.Is(err, service.ErrMissingFile), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, io.ErrUnexpectedEOF):
		c.JSON(http.StatusBadRequest, errorResponse("upload truncated"))
	default:
		h.log.Error().Err(err).Msg("report processing failed")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data any) gin.H {
	return gin.H{"success": true, "data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"success": false, "error": message}
}
