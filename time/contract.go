// SPDX-License-Identifier: ice License 1.0

package time

import (
	stdlibtime "time"

	"github.com/goccy/go-json"
)

// Public API.

type (
	Time struct {
		*stdlibtime.Time
	}
	// Clock is the source of the current time, injectable so that durations can be tested deterministically.
	Clock func() *Time
)

// Private API.

var (
	_ json.UnmarshalerContext                    = (*Time)(nil)
	_ json.MarshalerContext                      = (*Time)(nil)
	_ interface{ MarshalText() ([]byte, error) } = (*Time)(nil)
	_ Clock                                      = Now
)

const (
	millisecondTimestampDigits = 13
)
