package errutil

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err with its goerr values and reports it to the Sentry hub of
// ctx, or the current hub when ctx has none. Reporting is skipped while
// Sentry is not initialized. It never fails.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}
	if e := goerr.Unwrap(err); e != nil {
		for k, v := range e.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	ctxlog.From(ctx).Error(msg, attrs...)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetContext("buffet", sentry.Context{"message": msg})
		hub.CaptureException(err)
	})
}
