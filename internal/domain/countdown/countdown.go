package countdown

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync"
)

// Handler receives the countdown callbacks. OnExpire fires at most once per
// countdown; whatever it triggers must still guard on the store's status
// column, because a countdown racing a cancelation can fire after the item
// already left the active state.
type Handler interface {
	OnTick(ctx context.Context, itemID string, remaining time.Duration)
	OnEndingSoon(ctx context.Context, itemID string, remaining time.Duration)
	OnExpire(ctx context.Context, itemID string)
}

// Registry owns one cancelable countdown per active auction item. It is the
// only in-memory state outside the database and is advisory: a process
// restart rebuilds it from status/ends_at via the recovery run.
type Registry struct {
	ctx            context.Context
	tickInterval   time.Duration
	endingSoonBand time.Duration

	handler    Handler
	countdowns *xsync.MapOf[string, *countdownTimer]
}

// NewRegistry keeps ctx for callback invocations, so it must be a long
// lived context carrying the database, configs and logger.
func NewRegistry(ctx context.Context, tickInterval, endingSoonBand time.Duration) *Registry {
	return &Registry{
		ctx:            ctx,
		tickInterval:   tickInterval,
		endingSoonBand: endingSoonBand,
		countdowns:     xsync.NewMapOf[*countdownTimer](),
	}
}

// SetHandler must be called once before the first Start. It is separated
// from the constructor because the handler (the auction domain) needs the
// registry at its own construction time.
func (r *Registry) SetHandler(handler Handler) {
	r.handler = handler
}

// Start begins a countdown for the item, replacing any countdown already
// running for it.
func (r *Registry) Start(itemID string, endsAt time.Time) {
	c := &countdownTimer{
		itemID: itemID,
		stop:   make(chan struct{}),
	}
	c.deadline.Store(endsAt.UnixNano())

	if old, ok := r.countdowns.LoadAndStore(itemID, c); ok {
		old.cancel()
	}

	go r.run(c)
}

// Extend moves the deadline of a running countdown forward. It is called
// after an anti-snipe extension commits; the new ends_at was already
// persisted inside the bid's transaction.
func (r *Registry) Extend(itemID string, endsAt time.Time) {
	if c, ok := r.countdowns.Load(itemID); ok {
		c.deadline.Store(endsAt.UnixNano())
	}
}

// Cancel stops the countdown for the item. Canceling twice, or canceling an
// item that never started, is a no-op.
func (r *Registry) Cancel(itemID string) {
	if c, ok := r.countdowns.LoadAndDelete(itemID); ok {
		c.cancel()
	}
}

func (r *Registry) Running(itemID string) bool {
	_, ok := r.countdowns.Load(itemID)
	return ok
}

type countdownTimer struct {
	itemID   string
	deadline atomic.Int64
	stop     chan struct{}
	stopOnce sync.Once
}

func (c *countdownTimer) cancel() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *countdownTimer) remaining() time.Duration {
	return time.Until(time.Unix(0, c.deadline.Load()))
}

func (r *Registry) run(c *countdownTimer) {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	warned := false
	for {
		select {
		case <-c.stop:
			return

		case <-ticker.C:
			remaining := c.remaining()
			if remaining <= 0 {
				// Remove only our own registry entry. A Start that replaced
				// this timer already stored its successor under the same key,
				// and that successor must stay reachable for Cancel/Extend.
				if current, ok := r.countdowns.Load(c.itemID); ok && current == c {
					r.countdowns.Delete(c.itemID)
				}
				c.cancel()
				r.handler.OnExpire(r.ctx, c.itemID)
				return
			}

			r.handler.OnTick(r.ctx, c.itemID, remaining)

			if !warned && remaining <= r.endingSoonBand {
				warned = true
				r.handler.OnEndingSoon(r.ctx, c.itemID, remaining)
			}
		}
	}
}
