package service

import (
	"context"

	"github.com/ctisourcing/intake-api/internal/logging"
)

// LogDestination writes events to the application log. Intended for
// development and as a local audit trail next to GTM.
type LogDestination struct {
	logger *logging.Logger
}

func NewLogDestination(logger *logging.Logger) *LogDestination {
	return &LogDestination{logger: logger}
}

func (d *LogDestination) Name() string {
	return "log"
}

func (d *LogDestination) Track(_ context.Context, event string, params map[string]interface{}) error {
	d.logger.Info("Analytics event %s: %v", event, params)
	return nil
}
