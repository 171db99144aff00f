// SPDX-License-Identifier: ice License 1.0
//go:build !zerolog

package log

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/screens/config"
)

// .
var (
	//nolint:gochecknoglobals // Immutable singleton.
	appCfg cfg
	//nolint:gochecknoglobals // Immutable, ordered from the most verbose to the least.
	levels = []string{debugLevel, infoLevel, warnLevel, errorLevel}
)

//nolint:gochecknoinits // log is global, so it's initialization can be done in init
func init() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix | log.LUTC | log.Lshortfile | log.Lmicroseconds)
	config.MustLoadFromKey(loggerYAMLKey, &appCfg)
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	printf("ERROR", err.Error(), fields...)
}

func Debug(msg string, fields ...any) {
	if enabled(debugLevel) {
		printf("DEBUG", msg, fields...)
	}
}

func Info(msg string, fields ...any) {
	if enabled(infoLevel) {
		printf("INFO", msg, fields...)
	}
}

func Warn(msg string, fields ...any) {
	if enabled(warnLevel) {
		printf("WARN", msg, fields...)
	}
}

func Fatal(anything any, fields ...any) {
	if anything == nil {
		return
	}
	defer os.Exit(1)
	Error(asError(anything), fields...)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	defer func() {
		panic(anything)
	}()
	Error(asError(anything), fields...)
}

func Level() string {
	return appCfg.Level
}

func enabled(lvl string) bool {
	configured := strings.ToLower(appCfg.Level)
	for _, l := range levels {
		if l == configured {
			return true
		}
		if l == lvl {
			return false
		}
	}

	return true
}

func asError(anything any) error {
	switch obj := anything.(type) {
	case error:
		return obj
	case string:
		return errors.New(obj)
	default:
		return errors.Errorf("%#v", obj)
	}
}

func printf(prefix, msg string, fields ...any) {
	vars := make([]string, 0, len(fields)+1)
	vals := make([]any, 0, len(fields)+1)
	vals = append(vals, msg)
	vals = append(vals, fields...)
	for range vals {
		vars = append(vars, "%v")
	}

	log.Printf(fmt.Sprintf("%v:%v", prefix, strings.Join(vars, " ")), vals...)
}
