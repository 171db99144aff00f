// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"net/http"
	"testing"
	stdlibtime "time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/screens/analytics/tracking/fixture"
	. "github.com/ice-blockchain/screens/testing"
)

func TestHTTPTransportPost(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	collector := fixture.NewCollector(t)
	transport := newHTTPTransport(0)
	assert.Equal(t, requestDeadline, transport.client.GetClient().Timeout)

	body := map[string]any{"type": "screen_view", "tid": "T1", "metr_bypass_ip": false}
	assert.True(t, transport.Post(ctx, collector.URL(), body))
	collector.RespondWith(http.StatusTooManyRequests)
	assert.False(t, transport.Post(ctx, collector.URL(), body))
	collector.RespondWith(http.StatusNoContent)
	assert.True(t, transport.Post(ctx, collector.URL(), body))

	events := collector.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "application/json", events[0].ContentType)
	assert.JSONEq(t, MustMarshal(t, body), string(events[0].Raw))
}

func TestHTTPTransportNeverFailsLoudly(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	transport := newHTTPTransport(stdlibtime.Second)

	assert.False(t, transport.Post(ctx, "http://127.0.0.1:1/v1/events", map[string]any{"type": "screen_view"}))
	assert.False(t, transport.Post(ctx, "::not a url::", map[string]any{"type": "screen_view"}))
}
