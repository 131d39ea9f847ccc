package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// NewLogger builds a named hclog logger. The level comes from the config
// when set, with the AISCAN_LOG_LEVEL environment variable as fallback.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	var logLevel hclog.Level

	if cfg != nil && cfg.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(cfg.Logger.Level))
	} else {
		logLevelEnv := os.Getenv("AISCAN_LOG_LEVEL")
		logLevel = getLogLevel(strings.ToUpper(logLevelEnv))
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      os.Stderr,
		Level:       logLevel,
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
