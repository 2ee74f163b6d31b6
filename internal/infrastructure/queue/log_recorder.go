package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// LogRecorder writes audit entries to the structured log. It is the recorder
// used when no durable store is configured.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) Record(_ context.Context, entry ports.AuditEntry) error {
	r.log.Info().
		Str("actor", entry.Actor).
		Str("action", entry.Action).
		Int64("product_id", entry.ProductID).
		Time("timestamp", entry.Timestamp).
		Msg("catalog mutation")
	return nil
}
