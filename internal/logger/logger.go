package logger

import (
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const redacted = "[REDACTED]"

// Fields represents structured log fields
type Fields map[string]interface{}

var log = logrus.New()

// sensitiveKeys are matched as substrings of a lower-cased field name.
var sensitiveKeys = []string{
	"api_key",
	"apikey",
	"token",
	"secret",
	"password",
	"authorization",
}

// Setup configures the output level and routes gin's writers through the logger.
func Setup(level string) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
		log.Warnf("Invalid log level %q, using info", level)
	}
	log.SetLevel(parsed)

	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.WriterLevel(logrus.ErrorLevel)
}

// WithContext extracts request context for logging
func WithContext(c *gin.Context) Fields {
	return Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	fields = Redact(fields)
	log.WithFields(logrus.Fields(fields)).Info(msg)
	addBreadcrumb("info", sentry.LevelInfo, msg, fields)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	fields = Redact(fields)
	log.WithFields(logrus.Fields(fields)).Warn(msg)
	addBreadcrumb("warning", sentry.LevelWarning, msg, fields)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	fields = Redact(fields)
	log.WithFields(logrus.Fields(fields)).Debug(msg)
	addBreadcrumb("debug", sentry.LevelDebug, msg, fields)
}

// Error logs an error message with structured fields. A non-nil err is also
// captured in Sentry; without one only a breadcrumb is recorded.
func Error(msg string, err error, fields Fields) {
	fields = Redact(fields)
	if err == nil {
		log.WithFields(logrus.Fields(fields)).Error(msg)
		addBreadcrumb("error", sentry.LevelError, msg, fields)
		return
	}
	log.WithFields(logrus.Fields(fields)).WithError(err).Error(msg)

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range fields {
			scope.SetContext(key, map[string]interface{}{
				"value": value,
			})
		}
		if requestID, ok := fields["request_id"].(string); ok {
			scope.SetTag("request_id", requestID)
		}

		hub.CaptureException(err)
	})
}

// Redact returns a copy of fields with secret-looking values masked.
func Redact(fields Fields) Fields {
	result := make(Fields, len(fields))
	for k, v := range fields {
		if isSensitive(k) {
			result[k] = redacted
			continue
		}
		result[k] = v
	}
	return result
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func addBreadcrumb(kind string, level sentry.Level, msg string, fields Fields) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     fields,
			Level:    level,
		})
	}
}
