// SPDX-License-Identifier: ice License 1.0

package terror

// Public API.

type (
	// Err is an error enriched with structured data, so callers can react to it without parsing messages.
	Err struct {
		error
		Data map[string]any `json:"data"`
	}
)

// Private API.

type (
	multiError interface {
		WrappedErrors() []error
	}
)
