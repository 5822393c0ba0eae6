package kit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLogger builds the production logger. Every line carries the service
// name and a run_id so the lines of one session can be pulled together.
func NewLogger(service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{
		"service": service,
		"run_id":  uuid.NewString(),
	}
	l, _ := cfg.Build()
	return l
}
