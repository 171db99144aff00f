// SPDX-License-Identifier: ice License 1.0

package time

import (
	"context"
	"testing"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeJSON(t *testing.T) {
	t.Parallel()
	type tmpStruct struct {
		EnteredAt *Time `json:"enteredAt"`
	}
	time1, err := stdlibtime.Parse(stdlibtime.RFC3339Nano, "2006-01-02T15:04:05.999999999Z")
	require.NoError(t, err)
	bytes, err := json.MarshalContext(context.Background(), tmpStruct{EnteredAt: New(time1)})
	require.NoError(t, err)
	assert.Equal(t, `{"enteredAt":"2006-01-02T15:04:05.999999999Z"}`, string(bytes))
	var t1 tmpStruct
	require.NoError(t, json.UnmarshalContext(context.Background(), bytes, &t1))
	assert.Equal(t, tmpStruct{EnteredAt: New(time1)}, t1)

	bytes, err = json.MarshalContext(context.Background(), &tmpStruct{EnteredAt: New(stdlibtime.Unix(0, 0).UTC())})
	require.NoError(t, err)
	assert.Equal(t, `{"enteredAt":null}`, string(bytes))

	var t2 tmpStruct
	require.NoError(t, json.UnmarshalContext(context.Background(), []byte(`{"enteredAt":1136214245999}`), &t2))
	assert.Equal(t, stdlibtime.UnixMilli(1136214245999).UTC(), *t2.EnteredAt.Time)
	var t3 tmpStruct
	require.NoError(t, json.UnmarshalContext(context.Background(), []byte(`{"enteredAt":1}`), &t3))
	assert.Equal(t, stdlibtime.Unix(0, 1).UTC(), *t3.EnteredAt.Time)
	var t4 tmpStruct
	require.Error(t, json.UnmarshalContext(context.Background(), []byte(`{"enteredAt":"yesterday"}`), &t4))
}

func TestTimeSub(t *testing.T) {
	t.Parallel()
	start := New(stdlibtime.Date(2024, 1, 1, 10, 0, 0, 0, stdlibtime.UTC))
	end := New(start.Add(1500 * stdlibtime.Millisecond))
	assert.Equal(t, 1500*stdlibtime.Millisecond, end.Sub(start))
	assert.Zero(t, start.Sub(end))
	assert.Zero(t, end.Sub(nil))
	assert.Zero(t, (*Time)(nil).Sub(start))
	assert.Zero(t, new(Time).Sub(start))
}

func TestNow(t *testing.T) {
	t.Parallel()
	before := stdlibtime.Now().UTC()
	now := Now()
	assert.False(t, now.IsNil())
	assert.Equal(t, stdlibtime.UTC, now.Location())
	assert.False(t, now.Before(before))
}
