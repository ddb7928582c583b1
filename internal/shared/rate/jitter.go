package rate

import (
	"context"
	"go.uber.org/ratelimit"
	"time"
)

// Jitter emits at most limit signals per period on Chan until ctx is done.
// The first signal is available immediately.
type Jitter struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
	per   time.Duration
}

func NewJitter(ctx context.Context, limit int, per time.Duration) *Jitter {
	if limit < 1 {
		limit = 1
	}
	if per <= 0 {
		per = time.Second
	}
	brst := int(float64(limit) * 0.1)
	if brst < 1 {
		brst = 1
	}
	jitter := &Jitter{
		limit: limit,
		per:   per,
		ch:    make(chan struct{}, brst),
		l:     ratelimit.New(limit, ratelimit.Per(per), ratelimit.WithoutSlack),
	}
	go jitter.provider(ctx)
	return jitter
}

func (l *Jitter) provider(ctx context.Context) {
	defer close(l.ch)
	for {
		l.l.Take()
		select {
		case <-ctx.Done():
			return
		case l.ch <- struct{}{}:
		}
	}
}

func (l *Jitter) Take() {
	<-l.ch
}

func (l *Jitter) Chan() <-chan struct{} {
	return l.ch
}

// Period is the average distance between two signals.
func (l *Jitter) Period() time.Duration {
	return l.per / time.Duration(l.limit)
}
