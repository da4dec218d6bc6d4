package service

import (
	"context"
	"log"

	"github.com/hearthplan/diy-backend/internal/api/http/middleware"
)

// StdLogger writes pipeline events through the standard logger, tagging
// each line with the request id carried in the context.
type StdLogger struct{}

func NewStdLogger() *StdLogger { return &StdLogger{} }

func (StdLogger) Info(ctx context.Context, format string, args ...any) {
	log.Printf("[info] request_id=%s "+format, prepend(ctx, args)...)
}

func (StdLogger) Error(ctx context.Context, format string, args ...any) {
	log.Printf("[error] request_id=%s "+format, prepend(ctx, args)...)
}

func prepend(ctx context.Context, args []any) []any {
	rid := middleware.GetRequestID(ctx)
	if rid == "" {
		rid = "unknown"
	}
	return append([]any{rid}, args...)
}
