// Package logger holds the process-wide zap logger.  Binaries call Init
// once with the configured environment; everything else grabs the shared
// instance through Get.
package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// Init builds the global logger.  Production gets JSON at info level;
// everything else gets the colored development encoder at debug level.
func Init(env string) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	global, err = cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
}

// Get returns the global logger, initializing a development one if Init
// was never called (convenient in tests).
func Get() *zap.Logger {
	if global == nil {
		Init("dev")
	}
	return global
}
