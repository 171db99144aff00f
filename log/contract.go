// SPDX-License-Identifier: ice License 1.0

package log

// Private API.

const (
	debugLevel = "debug"
	infoLevel  = "info"
	warnLevel  = "warn"
	errorLevel = "error"

	loggerYAMLKey = "logger"
)

type (
	cfg struct {
		Encoder string `yaml:"encoder"`
		Level   string `yaml:"level"`
	}
)
