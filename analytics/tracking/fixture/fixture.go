// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

//nolint:gochecknoinits // gin's mode is global.
func init() {
	gin.SetMode(gin.TestMode)
}

// NewCollector starts a collector that accepts every event, until told otherwise. It's closed when tb finishes.
func NewCollector(tb testing.TB) Collector {
	tb.Helper()
	c := &collector{mx: new(sync.Mutex), statusCode: http.StatusOK}
	c.router = gin.New()
	c.router.Use(gin.Recovery())
	c.router.HandleMethodNotAllowed = true
	c.router.POST(EventsPath, c.receive)
	c.server = httptest.NewServer(c.router)
	tb.Cleanup(c.Close)

	return c
}

func (c *collector) URL() string {
	return c.server.URL + EventsPath
}

func (c *collector) RespondWith(statusCode int) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.statusCode = statusCode
}

func (c *collector) Events() []*ReceivedEvent {
	c.mx.Lock()
	defer c.mx.Unlock()

	events := make([]*ReceivedEvent, len(c.events))
	copy(events, c.events)

	return events
}

func (c *collector) Close() {
	c.server.Close()
}

func (c *collector) receive(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})

		return
	}
	var body map[string]any
	if err = json.Unmarshal(raw, &body); err != nil || body == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})

		return
	}
	event := &ReceivedEvent{
		ID:          uuid.NewString(),
		ContentType: ctx.ContentType(),
		Body:        body,
		Raw:         raw,
	}

	c.mx.Lock()
	c.events = append(c.events, event)
	statusCode := c.statusCode
	c.mx.Unlock()

	if statusCode >= http.StatusBadRequest {
		ctx.JSON(statusCode, gin.H{"error": "rejected"})

		return
	}
	ctx.JSON(statusCode, gin.H{"eventId": event.ID})
}
