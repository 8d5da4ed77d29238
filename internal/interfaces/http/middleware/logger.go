// internal/interfaces/http/middleware/logger.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/glowing-legacy-backend/internal/config"
)

// Logger emits one structured logrus line per request, carrying the
// correlation ID assigned by RequestID. Severity follows the response
// class: 5xx errors, 4xx warnings, everything else info.
func Logger(cfg *config.Config) gin.HandlerFunc {
	log := newRequestLogger(cfg)

	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		entry := log.WithFields(logrus.Fields{
			"request_id":    param.Keys["request_id"],
			"method":        param.Method,
			"path":          param.Path,
			"status_code":   param.StatusCode,
			"latency":       param.Latency,
			"client_ip":     param.ClientIP,
			"user_agent":    param.Request.UserAgent(),
			"response_size": param.BodySize,
		})
		if param.ErrorMessage != "" {
			entry = entry.WithField("error", param.ErrorMessage)
		}

		switch {
		case param.StatusCode >= 500:
			entry.Error("Request failed")
		case param.StatusCode >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}

		return ""
	})
}

// newRequestLogger builds a logrus instance from the logging config.
// The access log gets its own instance so handler logging levels can
// diverge from request logging later.
func newRequestLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
