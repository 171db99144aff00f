// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func GIVEN(_ string, logic func()) {
	logic()
}

func WHEN(_ string, logic func()) {
	logic()
}

func THEN(logic func()) {
	logic()
}

func IT(_ string, logic func()) {
	logic()
}

func AND(_ string, logic func()) {
	logic()
}

func SETUP(_ string, logic func()) {
	logic()
}

// AssertJSONSubset asserts that every key of expected is present in actual (a marshalled JSON object) with an equal value.
func AssertJSONSubset(tb testing.TB, expected string, actual []byte) {
	tb.Helper()
	exp := MustUnmarshal[map[string]any](tb, expected)
	act := MustUnmarshal[map[string]any](tb, string(actual))
	for k, v := range *exp {
		if assert.Contains(tb, *act, k) {
			assert.EqualValues(tb, v, (*act)[k], "key %q", k)
		}
	}
}

func MustMarshal(tb testing.TB, val any) string {
	tb.Helper()
	valueBytes, err := json.MarshalContext(context.Background(), val)
	require.NoError(tb, err)

	return string(valueBytes)
}

func MustUnmarshal[T any](tb testing.TB, val string) *T {
	tb.Helper()
	tt := new(T)
	require.NoError(tb, json.UnmarshalContext(context.Background(), []byte(val), tt))

	return tt
}
