package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/buffet/pkg/utils/errutil"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type options struct {
	lifetime context.Context
}

// Option configures Dispatch
type Option func(*options)

// WithLifetime cancels the handler context when lifetime is done, e.g. on
// server shutdown. Without it the handler context is never cancelled.
func WithLifetime(lifetime context.Context) Option {
	return func(o *options) {
		o.lifetime = lifetime
	}
}

// Dispatch runs handler in a new goroutine, detached from the cancellation of
// ctx. Chat interactions use it to answer Slack within its deadline while
// the work keeps running.
//
// The handler context keeps the ctxlog logger and Sentry hub of ctx. Returned
// errors and panics are logged and reported through errutil.Handle.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error, opts ...Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	newCtx := newBackgroundContext(ctx)
	cancel := func() {}
	if o.lifetime != nil {
		var cancelCtx context.CancelFunc
		newCtx, cancelCtx = context.WithCancel(newCtx)
		stop := context.AfterFunc(o.lifetime, cancelCtx)
		cancel = func() {
			stop()
			cancelCtx()
		}
	}

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				err := goerr.New("panic in async handler",
					goerr.V("handler", name),
					goerr.V("recover", fmt.Sprint(r)),
					goerr.V("stack", string(debug.Stack())),
				)
				errutil.Handle(newCtx, "panic in async handler", err)
			}
		}()

		if err := handler(newCtx); err != nil {
			errutil.Handle(newCtx, "error in async handler", goerr.Wrap(err, "async handler failed", goerr.V("handler", name)))
		}
	}()
}

// newBackgroundContext returns context.Background() carrying the logger and
// a clone of the Sentry hub from ctx
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	newCtx = sentry.SetHubOnContext(newCtx, hub.Clone())
	return newCtx
}
