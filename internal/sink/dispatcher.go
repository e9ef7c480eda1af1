package sink

import (
	"context"
	"sync"
	"time"

	"utm-som/internal/observability"
	"utm-som/internal/utm"
)

// Dispatcher sends records in the background. Dispatch never blocks on the
// network and never retries; the outcome only shows up as a notice that clears
// itself after the configured ttl.
type Dispatcher struct {
	sink      Sink
	notices   Notices
	timeout   time.Duration
	noticeTTL time.Duration
	logger    *observability.Logger
	wg        sync.WaitGroup

	watchMu  sync.Mutex
	watchers map[string]map[chan NoticeEvent]struct{}
}

// NewDispatcher wires a dispatcher. A nil sink makes every Dispatch a no-op.
func NewDispatcher(sink Sink, notices Notices, timeout, noticeTTL time.Duration, logger *observability.Logger) *Dispatcher {
	return &Dispatcher{
		sink:      sink,
		notices:   notices,
		timeout:   timeout,
		noticeTTL: noticeTTL,
		logger:    logger,
	}
}

// Enabled reports whether any sink is configured.
func (d *Dispatcher) Enabled() bool { return d.sink != nil }

// Dispatch launches the append for record and returns immediately. key scopes
// the resulting notice, which is written from the background goroutine too so
// a slow notice board never holds up the caller. It reports false when no sink is configured.
func (d *Dispatcher) Dispatch(ctx context.Context, key string, record utm.Record) bool {
	if d.sink == nil {
		return false
	}

	ctx = observability.WithFields(context.WithoutCancel(ctx),
		observability.Field{Key: "sink", Value: d.sink.Name()},
		observability.Field{Key: "utm_campaign", Value: record.Campaign},
	)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// The saving flag outlives the request by at most the sink timeout.
		d.setNotice(ctx, key, Notice{State: NoticeSaving}, d.timeout+d.noticeTTL)

		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		if err := d.sink.Append(sendCtx, record); err != nil {
			d.logger.Error(ctx, "failed to log link record", err)
			d.setNotice(ctx, key, Notice{State: NoticeError, Message: MessageError}, d.noticeTTL)
			return
		}
		d.logger.Info(ctx, "link record dispatched")
		d.setNotice(ctx, key, Notice{State: NoticeSaved, Message: MessageSaved}, d.noticeTTL)
	}()
	return true
}

// Notice returns the current notice for key.
func (d *Dispatcher) Notice(ctx context.Context, key string) (Notice, error) {
	return d.notices.Get(ctx, key)
}

// Wait blocks until every launched dispatch has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) setNotice(ctx context.Context, key string, notice Notice, ttl time.Duration) {
	if err := d.notices.Set(ctx, key, notice, ttl); err != nil {
		d.logger.Error(ctx, "failed to store notice", err)
	}
	d.publish(key, NoticeEvent{Notice: notice, TTL: ttl})
}
