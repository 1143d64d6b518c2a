package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"tokenpulse/internal/domain"
)

// FeedConfig configures websocket feed behavior.
type FeedConfig struct {
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
}

// DefaultFeedConfig returns default feed configuration.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		PingInterval: 30 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// SnapshotHandler receives each completed snapshot pushed by the feed.
type SnapshotHandler func(*domain.Snapshot)

// Feed subscribes to a push-style snapshot feed over websocket. Each
// received frame is one full snapshot document; sanitized snapshots
// are handed to the handler.
type Feed struct {
	endpoint string
	config   FeedConfig
	handler  SnapshotHandler
	logger   zerolog.Logger

	conn   *websocket.Conn
	connMu sync.Mutex
	closed atomic.Bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// subscribeRequest is the frame sent to open the snapshot channel.
type subscribeRequest struct {
	Op      string `json:"op"`
	Channel string `json:"channel"`
}

// NewFeed connects to the endpoint, subscribes to the snapshot
// channel and starts consuming frames.
func NewFeed(ctx context.Context, endpoint string, handler SnapshotHandler, logger zerolog.Logger, config *FeedConfig) (*Feed, error) {
	cfg := DefaultFeedConfig()
	if config != nil {
		cfg = *config
	}

	f := &Feed{
		endpoint: endpoint,
		config:   cfg,
		handler:  handler,
		logger:   logger,
		done:     make(chan struct{}),
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	f.conn = conn

	if err := f.subscribe(); err != nil {
		conn.Close()
		return nil, err
	}

	f.wg.Add(1)
	go f.readLoop()

	f.wg.Add(1)
	go f.pingLoop()

	return f, nil
}

// subscribe sends the subscription frame.
func (f *Feed) subscribe() error {
	f.connMu.Lock()
	defer f.connMu.Unlock()

	f.conn.SetWriteDeadline(time.Now().Add(f.config.WriteTimeout))
	if err := f.conn.WriteJSON(subscribeRequest{Op: "subscribe", Channel: "snapshots"}); err != nil {
		return fmt.Errorf("subscribe to snapshot channel: %w", err)
	}
	return nil
}

// readLoop consumes frames until the connection fails or Close is
// called.
func (f *Feed) readLoop() {
	defer f.wg.Done()

	for {
		select {
		case <-f.done:
			return
		default:
		}

		f.conn.SetReadDeadline(time.Now().Add(f.config.ReadTimeout))
		_, data, err := f.conn.ReadMessage()
		if err != nil {
			if !f.closed.Load() {
				f.logger.Error().Err(err).Msg("feed read failed")
			}
			return
		}

		var doc snapshotDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			f.logger.Warn().Err(err).Msg("discarding malformed feed frame")
			continue
		}

		snap, dropped, err := materialize(&doc)
		if err != nil {
			f.logger.Warn().Err(err).Msg("discarding unusable feed snapshot")
			continue
		}
		for reason, n := range dropped {
			f.logger.Warn().Str("reason", reason).Int("records", n).Msg("records dropped during sanitization")
		}

		f.handler(snap)
	}
}

// pingLoop keeps the connection alive.
func (f *Feed) pingLoop() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return
		case <-ticker.C:
			f.connMu.Lock()
			f.conn.SetWriteDeadline(time.Now().Add(f.config.WriteTimeout))
			err := f.conn.WriteMessage(websocket.PingMessage, nil)
			f.connMu.Unlock()
			if err != nil && !f.closed.Load() {
				f.logger.Warn().Err(err).Msg("feed ping failed")
			}
		}
	}
}

// Close shuts the feed down and waits for its goroutines.
func (f *Feed) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(f.done)
	err := f.conn.Close()
	f.wg.Wait()
	return err
}
