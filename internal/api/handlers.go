package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"tokenpulse/internal/aggregation"
	"tokenpulse/internal/analysis"
	"tokenpulse/internal/domain"
	"tokenpulse/internal/storage"
)

// defaultWindowDays is the history window used when the request does
// not name one.
const defaultWindowDays = 7

// Handlers bundles the API endpoint implementations.
type Handlers struct {
	pipeline  *analysis.Pipeline
	snapshots storage.SnapshotStore
	history   storage.AnalysisHistoryStore // optional
	logger    zerolog.Logger
}

// HandlersOptions configures Handlers.
type HandlersOptions struct {
	Pipeline      *analysis.Pipeline
	SnapshotStore storage.SnapshotStore
	HistoryStore  storage.AnalysisHistoryStore
	Logger        zerolog.Logger
}

// NewHandlers creates the endpoint set.
func NewHandlers(opts HandlersOptions) *Handlers {
	return &Handlers{
		pipeline:  opts.Pipeline,
		snapshots: opts.SnapshotStore,
		history:   opts.HistoryStore,
		logger:    opts.Logger,
	}
}

// rankingItem is one asset's line in the rankings response.
type rankingItem struct {
	Rank           int     `json:"rank"`
	Identity       string  `json:"identity"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	PriceChange24h float64 `json:"priceChange24h"`
	Momentum       string  `json:"momentum"`
	Sustainability string  `json:"sustainability"`
	AlertCount     int     `json:"alertCount"`
	Recommendation string  `json:"recommendation"`
}

// GetRankings returns the ranked batch for the most recent snapshot.
// GET /api/v1/rankings
func (h *Handlers) GetRankings(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.pipeline.AnalyzeCurrent(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots stored")
			return
		}
		h.logger.Error().Err(err).Msg("rankings request failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	items := make([]rankingItem, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, toRankingItem(a))
	}
	writeJSON(w, http.StatusOK, items)
}

// assetAnalysisResponse is the per-asset analysis payload with its
// optional score history.
type assetAnalysisResponse struct {
	Analysis *domain.PerformanceAnalysis `json:"analysis"`
	History  []*domain.AnalysisRecord    `json:"history,omitempty"`
}

// GetAssetAnalysis returns one asset's current analysis and, when the
// analytics store is wired, its score history.
// GET /api/v1/assets/{id}/analysis
func (h *Handlers) GetAssetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	analyses, err := h.pipeline.AnalyzeCurrent(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots stored")
			return
		}
		h.logger.Error().Err(err).Msg("asset analysis request failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	var match *domain.PerformanceAnalysis
	for _, a := range analyses {
		if a.Identity == id {
			match = a
			break
		}
	}
	if match == nil {
		writeError(w, http.StatusNotFound, "asset not found in current snapshot")
		return
	}

	resp := assetAnalysisResponse{Analysis: match}
	if h.history != nil {
		records, err := h.history.GetByIdentity(r.Context(), id)
		if err != nil {
			h.logger.Warn().Err(err).Str("identity", id).Msg("score history lookup failed")
		} else {
			resp.History = records
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// cohortResponse bundles survival with the market-wide trend series.
type cohortResponse struct {
	Cohort domain.CohortResult     `json:"cohort"`
	Trends domain.DailyTrendResult `json:"trends"`
}

// GetCohort returns cohort survival over the last N days.
// GET /api/v1/cohort?days=N
func (h *Handlers) GetCohort(w http.ResponseWriter, r *http.Request) {
	days := queryDays(r)

	start, end, err := h.windowEndingAtLatest(r, days)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots stored")
			return
		}
		h.logger.Error().Err(err).Msg("cohort request failed")
		writeError(w, http.StatusInternalServerError, "cohort analysis failed")
		return
	}

	result, err := h.pipeline.Run(r.Context(), start, end)
	if err != nil {
		h.logger.Error().Err(err).Msg("cohort request failed")
		writeError(w, http.StatusInternalServerError, "cohort analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, cohortResponse{
		Cohort: result.Cohort,
		Trends: result.DailyTrend,
	})
}

// Leader table kinds.
const (
	leadersTop         = "top"
	leadersMarketCap   = "market-cap"
	leadersConsistency = "consistency"
)

// GetLeaders returns one leader table over the last N days.
// GET /api/v1/leaders/{kind}?days=N&limit=M
func (h *Handlers) GetLeaders(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	days := queryDays(r)
	limit := queryInt(r, "limit", 10)

	start, end, err := h.windowEndingAtLatest(r, days)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots stored")
			return
		}
		h.logger.Error().Err(err).Msg("leaders request failed")
		writeError(w, http.StatusInternalServerError, "leader query failed")
		return
	}

	snapshots, err := h.snapshots.LoadRange(r.Context(), start, end)
	if err != nil {
		h.logger.Error().Err(err).Msg("leaders request failed")
		writeError(w, http.StatusInternalServerError, "leader query failed")
		return
	}
	series := aggregation.Aggregate(snapshots)

	var rows []domain.AssetSummary
	switch kind {
	case leadersTop:
		rows = aggregation.TopPerformers(series, days, limit)
	case leadersMarketCap:
		rows = aggregation.MarketCapGrowthLeaders(series, limit)
	case leadersConsistency:
		rows = aggregation.VolumeConsistencyLeaders(series, limit)
	default:
		writeError(w, http.StatusBadRequest, "unknown leader kind: "+kind)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// windowEndingAtLatest computes the [start, end] day window ending at
// the most recent stored snapshot.
func (h *Handlers) windowEndingAtLatest(r *http.Request, days int) (time.Time, time.Time, error) {
	current, err := h.snapshots.LoadCurrent(r.Context())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := current.Date
	start := end.AddDate(0, 0, -(days - 1))
	return start, end, nil
}

func toRankingItem(a *domain.PerformanceAnalysis) rankingItem {
	return rankingItem{
		Rank:           a.Rank,
		Identity:       a.Identity,
		Symbol:         a.Current.Symbol,
		Name:           a.Current.Name,
		Score:          a.Score,
		PriceChange24h: a.Current.PriceChange24h,
		Momentum:       a.Trends.Momentum.Overall,
		Sustainability: a.Trends.Sustainability.Label,
		AlertCount:     len(a.Alerts),
		Recommendation: a.Recommendation,
	}
}

func queryDays(r *http.Request) int {
	return queryInt(r, "days", defaultWindowDays)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
