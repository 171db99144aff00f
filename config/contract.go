// SPDX-License-Identifier: ice License 1.0

package config

// Private API.

const (
	applicationYAMLFile = "application.yaml"
	dotEnvLookupDepth   = 5
)
