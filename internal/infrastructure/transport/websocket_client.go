package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
	"github.com/minseokoh/debtwatch/internal/infrastructure/resilience"
)

// Event is the wire frame the push-messaging backend sends: a named event
// wrapping a JSON payload. Only frames whose name matches the configured
// alert event are forwarded to listeners.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// WebSocketConfig holds settings for the live push transport.
type WebSocketConfig struct {
	URL              string
	EventName        string // frame name carrying debt alerts
	HandshakeTimeout time.Duration
	Reconnect        ReconnectionConfig
}

// WebSocketClient is the live push-messaging adapter. It maintains a single
// WebSocket connection with automatic reconnection guarded by a circuit
// breaker, and fans inbound alert frames out to registered listeners.
//
// Connection errors only flip the connectivity flag; they are never raised
// to subscribers as alert events.
type WebSocketClient struct {
	*Fanout
	cfg      WebSocketConfig
	logger   Logger
	recorder Recorder

	breaker *resilience.CircuitBreaker

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	closed    bool
	cancel    context.CancelFunc
}

// NewWebSocketClient creates a WebSocket push adapter. Connect must be
// called to start delivery.
func NewWebSocketClient(cfg WebSocketConfig, logger Logger, recorder Recorder) (*WebSocketClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("websocket transport URL is required")
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if cfg.EventName == "" {
		cfg.EventName = "debt-alert"
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if cfg.Reconnect.MaxFailures == 0 {
		cfg.Reconnect = DefaultReconnectionConfig()
	}

	return &WebSocketClient{
		Fanout:   NewFanout(logger),
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		breaker:  resilience.NewCircuitBreaker("transport", cfg.Reconnect.MaxFailures, cfg.Reconnect.OpenTimeout),
	}, nil
}

// Connect establishes the connection and starts the read loop. The loop
// runs until Disconnect is called or the context is cancelled; dropped
// connections are re-established with exponential backoff.
func (c *WebSocketClient) Connect(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("transport already disconnected")
	}
	c.cancel = cancel
	c.mu.Unlock()

	if err := c.connectWithRetry(runCtx); err != nil {
		cancel()
		return err
	}

	go c.readLoop(runCtx)
	return nil
}

// Connected reports current connectivity.
func (c *WebSocketClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Disconnect tears down the connection and stops the read loop. Further
// events are not delivered; construct a new client to reconnect.
func (c *WebSocketClient) Disconnect() {
	c.mu.Lock()
	c.closed = true
	c.connected = false
	conn := c.conn
	c.conn = nil
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
}

// connectWithRetry dials until a connection is established, the circuit
// breaker opens, or the context is cancelled.
func (c *WebSocketClient) connectWithRetry(ctx context.Context) error {
	attempt := 0

	for {
		err := c.breaker.Execute(ctx, func() error { return c.dial(ctx) })
		if err == nil {
			c.logger.Info("connected to push transport",
				"url", c.cfg.URL,
				"attempt", attempt+1,
			)
			return nil
		}

		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.Error("transport circuit breaker open, giving up",
				"failures", c.breaker.Failures(),
			)
			return err
		}

		backoff := CalculateBackoff(c.cfg.Reconnect, attempt)
		c.logger.Warn("push transport connection failed",
			"error", err,
			"attempt", attempt+1,
			"backoff", backoff.String(),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		attempt++
	}
}

func (c *WebSocketClient) dial(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}

	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.cfg.URL, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		return fmt.Errorf("transport already disconnected")
	}
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	return nil
}

// readLoop reads frames until the connection drops, then reconnects.
func (c *WebSocketClient) readLoop(ctx context.Context) {
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		if conn == nil {
			return
		}

		var frame Event
		if err := conn.ReadJSON(&frame); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.connected = false
			c.conn = nil
			c.mu.Unlock()
			_ = conn.Close()

			if closed || ctx.Err() != nil {
				return
			}

			c.logger.Warn("push transport connection lost", "error", err)
			c.recorder.Reconnected()
			if err := c.connectWithRetry(ctx); err != nil {
				c.logger.Error("push transport reconnection abandoned", "error", err)
				return
			}
			continue
		}

		c.handleFrame(frame)
	}
}

func (c *WebSocketClient) handleFrame(frame Event) {
	if frame.Name != c.cfg.EventName {
		c.logger.Debug("ignoring transport frame", "event", frame.Name)
		return
	}

	var event dto.DebtAlertEvent
	if err := json.Unmarshal(frame.Data, &event); err != nil {
		c.logger.Warn("dropping undecodable alert frame", "error", err)
		return
	}

	c.Dispatch(event)
}
