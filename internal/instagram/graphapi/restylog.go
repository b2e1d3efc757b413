package graphapi

import (
	"fmt"
	"regexp"

	"github.com/orgball2608/insta-dashboard/pkg/logger"
)

var tokenPattern = regexp.MustCompile(`access_token=[^&\s"]+`)

func redact(s string) string {
	return tokenPattern.ReplaceAllString(s, "access_token=REDACTED")
}

// restyLogger routes resty's internal messages to the service logger with
// the access token masked.
type restyLogger struct {
	log logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(redact(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(redact(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(redact(fmt.Sprintf(format, v...)))
}
