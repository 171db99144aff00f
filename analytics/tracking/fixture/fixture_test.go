// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Parallel()
	collector := NewCollector(t)

	assert.Equal(t, http.StatusOK, post(t, collector.URL(), `{"type":"screen_view","tid":"T1"}`))
	collector.RespondWith(http.StatusServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, post(t, collector.URL(), `{"type":"screen_leave"}`))
	assert.Equal(t, http.StatusBadRequest, post(t, collector.URL(), `not json`))

	events := collector.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "screen_view", events[0].Body["type"])
	assert.Equal(t, "T1", events[0].Body["tid"])
	assert.Equal(t, "application/json", events[0].ContentType)
	assert.NotEmpty(t, events[0].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.JSONEq(t, `{"type":"screen_leave"}`, string(events[1].Raw))
}

func post(tb testing.TB, url, body string) int {
	tb.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, strings.NewReader(body))
	require.NoError(tb, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(tb, err)
	require.NoError(tb, resp.Body.Close())

	return resp.StatusCode
}
