package apiclient

import (
	"context"
	"fmt"
	"sync"
)

// RefreshFunc obtains a new access token. It owns persisting the token on
// success and tearing the session down on failure.
type RefreshFunc func(ctx context.Context) (string, error)

type refreshResult struct {
	token string
	err   error
}

// waiter is a caller suspended behind the in-flight refresh. result is
// unbuffered so each hand-off completes before the next waiter is served.
type waiter struct {
	result chan refreshResult
	done   <-chan struct{}
}

// Coordinator guarantees that at most one token refresh is outstanding. The
// first caller to arrive becomes the refresher; callers arriving while it
// runs are queued and released in arrival order once it settles.
type Coordinator struct {
	refresh RefreshFunc
	metrics *Metrics

	mu       sync.Mutex
	inFlight bool
	queue    []waiter
}

func NewCoordinator(refresh RefreshFunc, metrics *Metrics) *Coordinator {
	return &Coordinator{
		refresh: refresh,
		metrics: metrics,
	}
}

// Await returns a freshly issued access token. Queued callers stop waiting
// when ctx is done; the refresh itself is not cancelled by any one caller.
func (c *Coordinator) Await(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.inFlight {
		w := waiter{result: make(chan refreshResult), done: ctx.Done()}
		c.queue = append(c.queue, w)
		c.mu.Unlock()
		c.metrics.queued(1)

		select {
		case res := <-w.result:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.inFlight = true
	c.mu.Unlock()

	token, err := c.run(context.WithoutCancel(ctx))
	c.metrics.refreshed(err)
	c.settle(token, err)
	return token, err
}

// Pending reports how many callers are waiting on the current refresh.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// InFlight reports whether a refresh is running.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Coordinator) run(ctx context.Context) (token string, err error) {
	defer func() {
		if r := recover(); r != nil {
			token, err = "", fmt.Errorf("token refresh panicked: %v", r)
		}
	}()
	return c.refresh(ctx)
}

// settle clears the in-flight flag and releases the queue in arrival order.
// Waiters that gave up are skipped.
func (c *Coordinator) settle(token string, err error) {
	c.mu.Lock()
	waiters := c.queue
	c.queue = nil
	c.inFlight = false
	c.mu.Unlock()

	res := refreshResult{token: token, err: err}
	for _, w := range waiters {
		select {
		case w.result <- res:
		case <-w.done:
		}
	}
	c.metrics.queued(-len(waiters))
}
