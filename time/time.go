// SPDX-License-Identifier: ice License 1.0

package time

import (
	"context"
	"strconv"
	stdlibtime "time"

	"github.com/pkg/errors"
)

func Now() *Time {
	now := stdlibtime.Now().UTC()

	return &Time{
		Time: &now,
	}
}

func New(time stdlibtime.Time) *Time {
	return &Time{
		Time: &time,
	}
}

func (t *Time) IsNil() bool {
	return t == nil || t.Time == nil
}

// Sub returns t-other, clamped at 0.
func (t *Time) Sub(other *Time) stdlibtime.Duration {
	if t.IsNil() || other.IsNil() {
		return 0
	}
	if d := t.Time.Sub(*other.Time); d > 0 {
		return d
	}

	return 0
}

func (t *Time) MarshalJSON(_ context.Context) ([]byte, error) {
	if t.IsNil() || t.UnixNano() == 0 {
		return []byte("null"), nil
	}

	//nolint:wrapcheck // We're just proxying it.
	return t.Time.UTC().MarshalJSON()
}

func (t *Time) MarshalText() ([]byte, error) {
	if t.IsNil() {
		return []byte{}, nil
	}

	//nolint:wrapcheck // We're just proxying it.
	return t.Time.UTC().MarshalText()
}

func (t *Time) UnmarshalJSON(_ context.Context, bytes []byte) error {
	if t.unmarshalNumber(bytes) {
		return nil
	}

	return t.unmarshalString(bytes)
}

func (t *Time) unmarshalNumber(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if b < '0' || b > '9' {
			return false
		}
	}
	millisOrNanos, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return false
	}
	t.Time = new(stdlibtime.Time)
	if len(data) == millisecondTimestampDigits {
		*t.Time = stdlibtime.UnixMilli(millisOrNanos).UTC()
	} else {
		*t.Time = stdlibtime.Unix(0, millisOrNanos).UTC()
	}

	return true
}

func (t *Time) unmarshalString(bytes []byte) error {
	data := string(bytes)
	if data == "null" || data == `""` || data == "" {
		return nil
	}
	time, err := stdlibtime.Parse(`"`+stdlibtime.RFC3339Nano+`"`, data)
	if err != nil {
		return errors.Wrapf(err, "invalid time format: %v", data)
	}
	t.Time = new(stdlibtime.Time)
	*t.Time = time.UTC()

	return nil
}
