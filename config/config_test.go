// SPDX-License-Identifier: ice License 1.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustLoadFromKey(t *testing.T) {
	t.Parallel()
	var cfg struct {
		Level   string `yaml:"level"`
		Encoder string `yaml:"encoder"`
	}
	MustLoadFromKey("logger", &cfg)
	assert.NotEmpty(t, cfg.Level)
	assert.NotEmpty(t, cfg.Encoder)
}

//nolint:paralleltest // Env vars are process-wide.
func TestEnvOverride(t *testing.T) {
	t.Setenv("SOME_MODULE_X_TEST_VALUE", "")
	t.Setenv("TEST_VALUE", "global")
	assert.Equal(t, "global", EnvOverride("some-module/x", "TEST_VALUE"))

	t.Setenv("SOME_MODULE_X_TEST_VALUE", "scoped")
	assert.Equal(t, "scoped", EnvOverride("some-module/x", "TEST_VALUE"))

	t.Setenv("TEST_VALUE", "")
	t.Setenv("SOME_MODULE_X_TEST_VALUE", "")
	assert.Empty(t, EnvOverride("some-module/x", "TEST_VALUE"))
}
