package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/buffet/pkg/utils/async"
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

// newSentryContext returns a context carrying a hub that reports to the returned transport
func newSentryContext(t *testing.T) (context.Context, *eventTransport) {
	t.Helper()
	transport := &eventTransport{events: make(chan *sentry.Event, 8)}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	gt.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), transport
}

func waitEvent(t *testing.T, transport *eventTransport) *sentry.Event {
	t.Helper()
	select {
	case event := <-transport.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("no event was reported")
		return nil
	}
}

func exceptionText(event *sentry.Event) string {
	var text string
	for _, ex := range event.Exception {
		text += ex.Value + "\n"
	}
	return text
}

func TestDispatch_ReportsError(t *testing.T) {
	ctx, transport := newSentryContext(t)

	async.Dispatch(ctx, "deploy", func(ctx context.Context) error {
		return errors.New("workflow not found")
	})

	event := waitEvent(t, transport)
	gt.String(t, exceptionText(event)).Contains("workflow not found")
	gt.Value(t, event.Contexts["buffet"]["message"]).Equal("error in async handler")
}

func TestDispatch_ReportsPanic(t *testing.T) {
	ctx, transport := newSentryContext(t)

	async.Dispatch(ctx, "deploy", func(ctx context.Context) error {
		panic("nil settings")
	})

	event := waitEvent(t, transport)
	gt.String(t, exceptionText(event)).Contains("panic in async handler")
	gt.Value(t, event.Contexts["buffet"]["message"]).Equal("panic in async handler")
}

func TestDispatch_Success(t *testing.T) {
	ctx, transport := newSentryContext(t)
	done := make(chan struct{})

	async.Dispatch(ctx, "deploy", func(ctx context.Context) error {
		defer close(done)
		return nil
	})

	<-done
	select {
	case event := <-transport.events:
		t.Errorf("unexpected event: %v", exceptionText(event))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatch_Context(t *testing.T) {
	t.Run("keeps logger and hub but not cancellation", func(t *testing.T) {
		ctx, _ := newSentryContext(t)
		ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("request_id", "req-1"))
		ctx, cancel := context.WithCancel(ctx)
		origin := sentry.GetHubFromContext(ctx)

		result := make(chan context.Context, 1)
		async.Dispatch(ctx, "deploy", func(newCtx context.Context) error {
			cancel()
			result <- newCtx
			return nil
		})

		newCtx := <-result
		gt.NoError(t, newCtx.Err())
		gt.NotNil(t, ctxlog.From(newCtx))

		hub := sentry.GetHubFromContext(newCtx)
		gt.NotNil(t, hub)
		gt.True(t, hub != origin)
		gt.True(t, hub.Client() == origin.Client())
	})

	t.Run("lifetime cancels the handler", func(t *testing.T) {
		lifetime, shutdown := context.WithCancel(context.Background())
		started := make(chan struct{})
		finished := make(chan error, 1)

		async.Dispatch(context.Background(), "deploy", func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			finished <- ctx.Err()
			return nil
		}, async.WithLifetime(lifetime))

		<-started
		shutdown()

		select {
		case err := <-finished:
			gt.Value(t, err).Equal(context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("handler context was not cancelled by lifetime")
		}
	})
}
