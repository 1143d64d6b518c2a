package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenpulse/internal/analysis"
	"tokenpulse/internal/domain"
	"tokenpulse/internal/storage/memory"
)

func day(n int) time.Time {
	return time.Date(2025, 6, n, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func setupTestRouter(t *testing.T, seed bool) http.Handler {
	t.Helper()

	snapStore := memory.NewSnapshotStore()
	histStore := memory.NewAnalysisHistoryStore()

	if seed {
		ctx := context.Background()
		for n := 1; n <= 7; n++ {
			snap := &domain.Snapshot{Date: day(n), Timestamp: day(n).Add(12 * time.Hour)}
			for _, sym := range []string{"AAA", "BBB"} {
				snap.Assets = append(snap.Assets, domain.AssetRecord{
					Address:        strPtr("Addr" + sym),
					Symbol:         sym,
					Name:           sym + " Token",
					Price:          float64(n),
					Volume24h:      50000,
					MarketCap:      1000000,
					Liquidity:      80000,
					PriceChange24h: 10,
				})
			}
			require.NoError(t, snapStore.Save(ctx, snap))
		}
	}

	pipeline := analysis.New(analysis.Options{
		SnapshotStore: snapStore,
		HistoryStore:  histStore,
		Logger:        zerolog.Nop(),
	})

	handlers := NewHandlers(HandlersOptions{
		Pipeline:      pipeline,
		SnapshotStore: snapStore,
		HistoryStore:  histStore,
		Logger:        zerolog.Nop(),
	})
	return NewRouter(handlers, zerolog.Nop())
}

func doRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetRankings(t *testing.T) {
	router := setupTestRouter(t, true)

	rr := doRequest(t, router, "/api/v1/rankings")
	require.Equal(t, http.StatusOK, rr.Code)

	var items []rankingItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))

	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Rank)
	assert.Equal(t, 2, items[1].Rank)
	assert.NotEmpty(t, items[0].Recommendation)
	assert.GreaterOrEqual(t, items[0].Score, items[1].Score)
}

func TestGetRankings_Empty(t *testing.T) {
	router := setupTestRouter(t, false)

	rr := doRequest(t, router, "/api/v1/rankings")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetAssetAnalysis(t *testing.T) {
	router := setupTestRouter(t, true)

	rr := doRequest(t, router, "/api/v1/assets/AddrAAA/analysis")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp assetAnalysisResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.NotNil(t, resp.Analysis)
	assert.Equal(t, "AddrAAA", resp.Analysis.Identity)
	assert.Equal(t, "AAA", resp.Analysis.Current.Symbol)
	assert.NotZero(t, resp.Analysis.Score)
}

func TestGetAssetAnalysis_Unknown(t *testing.T) {
	router := setupTestRouter(t, true)

	rr := doRequest(t, router, "/api/v1/assets/Nope/analysis")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetCohort(t *testing.T) {
	router := setupTestRouter(t, true)

	rr := doRequest(t, router, "/api/v1/cohort?days=7")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp cohortResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Cohort.StartingCount)
	assert.InDelta(t, 100, resp.Cohort.SurvivalRate, 0.0001)
	assert.NotEmpty(t, resp.Trends.Trends)
}

func TestGetLeaders(t *testing.T) {
	router := setupTestRouter(t, true)

	rr := doRequest(t, router, "/api/v1/leaders/top?days=7&limit=1")
	require.Equal(t, http.StatusOK, rr.Code)

	var rows []domain.AssetSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))

	require.Len(t, rows, 1)
	// Price went 1 -> 7 over the week.
	assert.InDelta(t, 600, rows[0].Value, 0.0001)
}

func TestGetLeaders_UnknownKind(t *testing.T) {
	router := setupTestRouter(t, true)

	rr := doRequest(t, router, "/api/v1/leaders/nonsense")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthz(t *testing.T) {
	router := setupTestRouter(t, false)

	rr := doRequest(t, router, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}
