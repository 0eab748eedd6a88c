// Package audit holds the fallback audit sink that writes entries to the
// application log when no MongoDB server is configured.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/pkg/logger"
)

// LogSink implements ports.AuditRepository on top of zerolog.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: logger.Component(log, "audit")}
}

func (s *LogSink) Insert(_ context.Context, entry domain.AuditEntry) error {
	ev := s.log.Info().
		Str("action", entry.Action).
		Int64("account_id", entry.AccountID).
		Time("occurred_at", entry.OccurredAt)
	if entry.ActorID != 0 {
		ev = ev.Int64("actor_id", entry.ActorID)
	}
	ev.Msg("account audit")
	return nil
}
