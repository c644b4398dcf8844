package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/buffet/pkg/utils/errutil"
)

// eventTransport hands captured events to a channel instead of sending them
type eventTransport struct {
	events chan *sentry.Event
}

func (x *eventTransport) Configure(sentry.ClientOptions) {}
func (x *eventTransport) Flush(time.Duration) bool { return true }
func (x *eventTransport) FlushWithContext(ctx context.Context) bool { return true }
func (x *eventTransport) Close() {}
func (x *eventTransport) SendEvent(event *sentry.Event) { x.events <- event }

func newSentryHub(t *testing.T) (*sentry.Hub, *eventTransport) {
	t.Helper()
	transport := &eventTransport{events: make(chan *sentry.Event, 8)}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	gt.NoError(t, err)
	return sentry.NewHub(client, sentry.NewScope()), transport
}

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	t.Run("logs goerr values", func(t *testing.T) {
		buf.Reset()
		err := goerr.Wrap(errors.New("boom"), "failed to dispatch", goerr.V("repo", "buffet"))
		errutil.Handle(ctx, "deploy failed", err)

		gt.String(t, buf.String()).Contains("deploy failed")
		gt.String(t, buf.String()).Contains("repo=buffet")
		gt.String(t, buf.String()).Contains("boom")
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		buf.Reset()
		errutil.Handle(ctx, "nothing", nil)
		gt.Value(t, buf.String()).Equal("")
	})
}

func TestHandle_ReportsToContextHub(t *testing.T) {
	hub, transport := newSentryHub(t)
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	errutil.Handle(ctx, "deploy failed", goerr.New("workflow not found", goerr.V("repo", "buffet")))

	select {
	case event := <-transport.events:
		gt.True(t, len(event.Exception) > 0)
		gt.String(t, event.Exception[len(event.Exception)-1].Value).Contains("workflow not found")
		gt.Value(t, event.Contexts["buffet"]["message"]).Equal("deploy failed")
	case <-time.After(time.Second):
		t.Fatal("error was not reported to the hub of the context")
	}
}

func TestHandle_NoClientSkipsReport(t *testing.T) {
	// A hub without client stands for Sentry being disabled
	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(nil, sentry.NewScope()))
	errutil.Handle(ctx, "deploy failed", errors.New("boom"))
}
