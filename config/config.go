// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//nolint:gochecknoinits // Because we load the configs once, for the whole runtime
func init() {
	loadFirstApplicationConfigFile()
	dotEnvPath := `.env`
	for range dotEnvLookupDepth {
		if err := godotenv.Load(dotEnvPath); err == nil {
			break
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
}

func MustLoadFromKey(key string, cfg any) {
	if err := viper.UnmarshalKey(key, cfg); err != nil {
		log.Panic(errors.Wrapf(err, "failed to load config by key %q", key))
	}
}

// EnvOverride returns the value of `<APPLICATION_YAML_KEY>_<NAME>`, falling back to `<NAME>`.
// For example, for the key `self` and the name `ANALYTICS_TRACKING_ENDPOINT`, it checks `SELF_ANALYTICS_TRACKING_ENDPOINT` first.
func EnvOverride(applicationYAMLKey, name string) string {
	module := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(applicationYAMLKey, "-", "_"), "/", "_"))
	if val := os.Getenv(module + "_" + name); val != "" {
		return val
	}

	return os.Getenv(name)
}

func loadFirstApplicationConfigFile() {
	for _, f := range findAllApplicationConfigFiles() {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err == nil {
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Panic(err)
		}
	}

	log.Panic(errors.New("could not find any application.yaml files"))
}

func findAllApplicationConfigFiles() []string {
	var hints []string
	if p, err := os.Getwd(); err == nil {
		hints = append(hints, p)
	}
	if p, err := os.Executable(); err == nil {
		hints = append(hints, path.Dir(filepath.Join(p, "..")))
	}
	patterns := make([]string, 0, len(hints)*2+2) //nolint:mnd,gomnd // 2 per hint + 2 relative ones.
	for _, dir := range hints {
		patterns = append(patterns, filepath.Join(dir, ".testdata", applicationYAMLFile), filepath.Join(dir, applicationYAMLFile))
	}
	//nolint:dogsled // Because those 3 blank identifiers are useless
	_, callerFile, _, _ := runtime.Caller(0)
	patterns = append(patterns,
		filepath.Join(filepath.Dir(callerFile), "..", applicationYAMLFile),
		filepath.Join(filepath.Dir(callerFile), "..", "..", applicationYAMLFile))

	return globAll(patterns...)
}

func globAll(patterns ...string) []string {
	files := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if f, err := filepath.Glob(pattern); err != nil {
			log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))
		} else {
			files = append(files, f...)
		}
	}

	return files
}
