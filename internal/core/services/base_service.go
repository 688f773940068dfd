package services

import (
	"context"
	"log/slog"

	"github.com/trustbooks/trust_ledger_app/internal/middleware"
)

// BaseService provides shared logging helpers for services that embed it.
type BaseService struct{}

// GetLogger returns the request-scoped logger, falling back to the process
// default when the context carries none.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}

// LogError logs err and msg with any extra key/value pairs appended.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs msg at info level with the request-scoped logger.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs msg at debug level with the request-scoped logger.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
