// Package api exposes stateless suite generation over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gopairs/app"
	"gopairs/domain/core"
	"gopairs/domain/coverage"
	"gopairs/domain/factor"
	"gopairs/domain/pairwise"
	"gopairs/internal"
	"gopairs/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// XLSXContentType is the MIME type of generated workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxBodyBytes bounds request models.
const maxBodyBytes = 1 << 20

// Handler serves the generation API
type Handler struct {
	service  *app.ReportService
	fileName string
	router   *chi.Mux
	logger   *internal.Logger
}

// SuiteResponse is the body of a generation response
type SuiteResponse struct {
	ID         core.SuiteID        `json:"id"`
	ModelHash  core.ModelHash      `json:"model_hash"`
	Factors    []string            `json:"factors"`
	Cases      []pairwise.TestCase `json:"cases"`
	Coverage   []coverage.Record   `json:"coverage"`
	Statistics StatisticsResponse  `json:"statistics"`
	Persisted  bool                `json:"persisted"`
}

// StatisticsResponse flattens report statistics for JSON
type StatisticsResponse struct {
	Factors         int     `json:"factors"`
	Cases           int     `json:"cases"`
	TotalValues     int     `json:"total_values"`
	Exhaustive      string  `json:"exhaustive"`
	Reduction       float64 `json:"reduction"`
	MeanCoverage    float64 `json:"mean_coverage"`
	MinCoverage     float64 `json:"min_coverage"`
	IncompletePairs int     `json:"incomplete_pairs"`
}

// NewHandler creates the API router
func NewHandler(service *app.ReportService, fileName string) *Handler {
	h := &Handler{
		service:  service,
		fileName: fileName,
		router:   chi.NewRouter(),
		logger:   internal.DefaultLogger.Named("API"),
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Timeout(60 * time.Second))

	h.router.Get("/healthz", h.handleHealth)
	h.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/suites", h.handleListSuites)
		r.Post("/suites", h.handleGenerate)
		r.Get("/suites/{id}", h.handleGetSuite)
		r.Post("/reports", h.handleExport)
		r.Post("/reports/preview", h.handlePreview)
		r.Post("/metrics", h.handleMetrics)
	})
	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decodeModel(w, r)
	if !ok {
		return
	}

	result, err := h.service.GenerateReport(r.Context(), m)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewSuiteResponse(result))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decodeModel(w, r)
	if !ok {
		return
	}

	// Buffer the workbook so a write failure can still produce an error status.
	var buf bytes.Buffer
	result, err := h.service.ExportReport(r.Context(), m, &buf)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.fileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Suite-ID", result.ID.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("Failed to send workbook: %v", err)
	}
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decodeModel(w, r)
	if !ok {
		return
	}

	html, err := h.service.Preview(r.Context(), m)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decodeModel(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Metrics(m))
}

func (h *Handler) handleGetSuite(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseSuiteID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, errors.InvalidInput(err.Error()))
		return
	}

	rec, err := h.service.GetSuite(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleListSuites(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, errors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = n
	}

	var recs []*pairwise.Record
	var err error
	if raw := r.URL.Query().Get("model_hash"); raw != "" {
		hash, parseErr := core.ParseModelHash(raw)
		if parseErr != nil {
			h.writeError(w, errors.InvalidInput(parseErr.Error()))
			return
		}
		recs, err = h.service.SuitesForModel(r.Context(), hash, limit)
	} else {
		recs, err = h.service.RecentSuites(r.Context(), limit)
	}
	if err != nil {
		h.writeError(w, errors.DatabaseError("failed to list suites", err))
		return
	}
	if recs == nil {
		recs = []*pairwise.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) decodeModel(w http.ResponseWriter, r *http.Request) (factor.Model, bool) {
	var m factor.Model
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		h.writeError(w, errors.InvalidInput(fmt.Sprintf("invalid model: %v", err)))
		return factor.Model{}, false
	}
	return m, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"code": code, "error": err.Error()})
}

// NewSuiteResponse converts a generation result to its JSON form
func NewSuiteResponse(result *app.Result) SuiteResponse {
	summary := result.Statistics.Coverage
	stats := StatisticsResponse{
		Factors:         result.Statistics.Factors,
		Cases:           result.Statistics.Cases,
		TotalValues:     result.Statistics.TotalValues,
		Exhaustive:      fmt.Sprint(result.Statistics.ExhaustiveCell()),
		Reduction:       result.Statistics.Reduction,
		MeanCoverage:    summary.MeanRatio,
		MinCoverage:     summary.MinRatio,
		IncompletePairs: summary.Incomplete,
	}
	return SuiteResponse{
		ID:         result.ID,
		ModelHash:  result.Model.Hash(),
		Factors:    result.Model.Names(),
		Cases:      result.Suite.Cases,
		Coverage:   result.Coverage.Records,
		Statistics: stats,
		Persisted:  result.Persisted,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
