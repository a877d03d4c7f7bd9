package sse

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wordduel/wordduel-go/internal/model"
)

const (
	clientBufferSize  = 64
	keepAliveInterval = 30 * time.Second
)

// ErrHubClosed is returned when a stream could not start because the
// hub shut down first. Callers should fetch a fresh hub and retry.
var ErrHubClosed = errors.New("sse hub is closed")

// Client represents a single SSE connection
type Client struct {
	playerID    model.PlayerID
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(playerID model.PlayerID) *Client {
	return &Client{
		playerID:    playerID,
		send:        make(chan []byte, clientBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams events to the client until the request context is
// cancelled or the hub closes the client's channel.
func (c *Client) ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported by response writer")
	}

	// Register before writing anything so a lost race against the hub
	// sweep can be retried on a fresh hub with the response untouched
	if !hub.Register(c) {
		return ErrHubClosed
	}
	defer hub.Unregister(c)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Initial event so the client knows the stream is live
	if _, err := w.Write(formatSSEMessage("connected", `{"status":"ok"}`)); err != nil {
		return err
	}
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return nil

		case message, ok := <-c.send:
			if !ok {
				return nil
			}
			if _, err := w.Write(message); err != nil {
				return err
			}
			flusher.Flush()

		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}
