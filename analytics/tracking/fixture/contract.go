// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Public API.

const (
	EventsPath = "/v1/events"
)

type (
	// ReceivedEvent is an event as it reached the collector.
	ReceivedEvent struct {
		Body        map[string]any
		ID          string
		ContentType string
		Raw         []byte
	}
	// Collector is an in-process stand-in for the remote event collector.
	Collector interface {
		// URL is the full events endpoint, ready to be used as the tracking endpoint.
		URL() string
		// RespondWith makes every following event get the given status code.
		RespondWith(statusCode int)
		Events() []*ReceivedEvent
		Close()
	}
)

// Private API.

type (
	collector struct {
		server     *httptest.Server
		router     *gin.Engine
		mx         *sync.Mutex
		events     []*ReceivedEvent
		statusCode int
	}
)
