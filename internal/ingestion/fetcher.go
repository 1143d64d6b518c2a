package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/observability"
)

// defaultFetchTimeout bounds one poll of the pairs endpoint.
const defaultFetchTimeout = 30 * time.Second

// pairsResponse is the wire shape of the pairs endpoint.
type pairsResponse struct {
	Pairs []pairDoc `json:"pairs"`
}

// pairDoc is one market pair as served by DexScreener-style APIs.
// Numeric prices arrive as strings.
type pairDoc struct {
	BaseToken struct {
		Address string `json:"address"`
		Symbol  string `json:"symbol"`
		Name    string `json:"name"`
	} `json:"baseToken"`
	PriceUsd string `json:"priceUsd"`
	Volume   struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	MarketCap float64 `json:"marketCap"`
	Liquidity struct {
		Usd float64 `json:"usd"`
	} `json:"liquidity"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Txns struct {
		H24 struct {
			Buys  *int `json:"buys"`
			Sells *int `json:"sells"`
		} `json:"h24"`
	} `json:"txns"`
	Launchpad       bool `json:"launchpad"`
	DaysSinceLaunch *int `json:"daysSinceLaunch"`
}

// Fetcher polls an HTTP pairs endpoint and assembles one snapshot per
// invocation. Retrying is the caller's concern.
type Fetcher struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// FetcherOptions configures a Fetcher. Endpoint is required.
type FetcherOptions struct {
	Endpoint string
	Timeout  time.Duration
	Logger   zerolog.Logger
	Metrics  *observability.Metrics
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		endpoint: opts.Endpoint,
		client:   &http.Client{Timeout: timeout},
		now:      func() time.Time { return time.Now().UTC() },
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// WithClock sets a custom clock function for deterministic output.
func (f *Fetcher) WithClock(now func() time.Time) *Fetcher {
	f.now = now
	return f
}

// Fetch polls the endpoint once and assembles today's snapshot.
func (f *Fetcher) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pairs request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pairs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pairs: unexpected status %d", resp.StatusCode)
	}

	var body pairsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode pairs response: %w", err)
	}

	doc := pairsToDoc(f.now(), body.Pairs)
	snap, dropped, err := materialize(doc)
	if err != nil {
		return nil, err
	}

	for reason, n := range dropped {
		f.logger.Warn().Str("reason", reason).Int("records", n).Msg("records dropped during sanitization")
		if f.metrics != nil {
			f.metrics.RecordsDropped.WithLabelValues(reason).Add(float64(n))
		}
	}
	if f.metrics != nil {
		f.metrics.SnapshotsIngested.Inc()
		f.metrics.RecordsIngested.Add(float64(len(snap.Assets)))
	}
	f.logger.Info().Int("assets", len(snap.Assets)).Msg("snapshot fetched")

	return snap, nil
}

// pairsToDoc converts the pairs payload into the common snapshot
// document shape so both fetcher and loader share one sanitizer.
func pairsToDoc(now time.Time, pairs []pairDoc) *snapshotDoc {
	ts := now
	doc := &snapshotDoc{
		Date:      now.Format("2006-01-02"),
		Timestamp: &ts,
	}

	for i := range pairs {
		p := &pairs[i]
		price, err := strconv.ParseFloat(p.PriceUsd, 64)
		if err != nil {
			price = 0
		}

		var addr *string
		if p.BaseToken.Address != "" {
			a := p.BaseToken.Address
			addr = &a
		}

		doc.Assets = append(doc.Assets, assetDoc{
			Address:         addr,
			Symbol:          p.BaseToken.Symbol,
			Name:            p.BaseToken.Name,
			Price:           price,
			Volume24h:       p.Volume.H24,
			MarketCap:       p.MarketCap,
			Liquidity:       p.Liquidity.Usd,
			PriceChange24h:  p.PriceChange.H24,
			Buys24h:         p.Txns.H24.Buys,
			Sells24h:        p.Txns.H24.Sells,
			IsFromLaunchpad: p.Launchpad,
			DaysSinceLaunch: p.DaysSinceLaunch,
		})
	}

	return doc
}
