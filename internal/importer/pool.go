package importer

import (
	"context"
	"sync"
	"time"
)

// fetchPool runs indexed tasks on a fixed number of workers, optionally
// spacing task starts by interval.
type fetchPool struct {
	workers  int
	interval time.Duration
}

func newFetchPool(workers int, interval time.Duration) fetchPool {
	if workers <= 0 {
		workers = 1
	}
	if interval < 0 {
		interval = 0
	}
	return fetchPool{workers: workers, interval: interval}
}

// run calls fn for 0..n-1 and returns one error slot per index. Indexes that
// never ran because ctx ended report ctx.Err().
func (p fetchPool) run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}

	var rate <-chan time.Time
	if p.interval > 0 {
		t := time.NewTicker(p.interval)
		defer t.Stop()
		rate = t.C
	}

	tasks := make(chan int)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > n {
		workers = n
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range tasks {
				errs[i] = fn(ctx, i)
			}
		}()
	}

	next := 0
feed:
	for ; next < n; next++ {
		if rate != nil && next > 0 {
			select {
			case <-ctx.Done():
				break feed
			case <-rate:
			}
		}
		select {
		case <-ctx.Done():
			break feed
		case tasks <- next:
		}
	}
	close(tasks)
	wg.Wait()

	for i := next; i < n; i++ {
		errs[i] = ctx.Err()
	}
	return errs
}
