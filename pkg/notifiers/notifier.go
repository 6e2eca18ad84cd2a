package notifiers

import (
	"context"
	"time"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

// defaultPublishTimeout bounds how long a toast waits on its sinks.
const defaultPublishTimeout = 5 * time.Second

// FanoutNotifier shows a toast on the local surface and forwards it to every sink.
// Sink failures are logged and never returned.
type FanoutNotifier struct {
	local   apiclient.Notifier
	fanout  *Fanout
	log     Logger
	timeout time.Duration
}

// NewFanoutNotifier wraps local (may be nil) with a sink fanout (may be nil).
func NewFanoutNotifier(local apiclient.Notifier, fanout *Fanout, log Logger) *FanoutNotifier {
	return &FanoutNotifier{local: local, fanout: fanout, log: ensureLogger(log), timeout: defaultPublishTimeout}
}

// Notify implements apiclient.Notifier.
func (n *FanoutNotifier) Notify(ctx context.Context, t apiclient.Toast) error {
	var err error
	if n.local != nil {
		err = n.local.Notify(ctx, t)
	}
	if n.fanout.Size() == 0 {
		return err
	}

	// The request context is often already done when a failure is reported
	// (cancelled or timed out calls), so sinks get their own deadline.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	evt := NewToastEvent(t)
	delivered, ferr := n.fanout.Publish(pubCtx, evt)
	if ferr != nil {
		n.log.WarnObj("notification sinks failed", "notify_fanout_error", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     ferr.Error(),
		})
	}
	return err
}
