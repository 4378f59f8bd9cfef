package watcher

import (
	"sync"
	"time"
)

// coalescer batches per-path actions over a quiet window before handing
// them to flush. Editors fire several events per save; only the last
// action per path within a window is reported.
type coalescer struct {
	delay time.Duration
	flush func(batch map[string]string)

	mu      sync.Mutex
	pending map[string]string
	timer   *time.Timer
}

func newCoalescer(delay time.Duration, flush func(map[string]string)) *coalescer {
	return &coalescer{
		delay:   delay,
		flush:   flush,
		pending: make(map[string]string),
	}
}

// Record notes an action for a path and (re)arms the flush timer.
func (c *coalescer) Record(path, action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[path] = action
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
}

func (c *coalescer) fire() {
	c.mu.Lock()
	batch := c.pending
	c.pending = make(map[string]string)
	c.mu.Unlock()

	if len(batch) > 0 {
		c.flush(batch)
	}
}
