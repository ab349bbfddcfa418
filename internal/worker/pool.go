package worker

import (
	"context"
	"sync"
)

// Run calls fn once for every index in [0, n) using at most workers goroutines.
// fn must write its output by index; Run itself imposes no ordering on calls.
// When ctx is cancelled no further indexes are handed out and ctx.Err() is returned
// after in-flight calls finish.
func Run(ctx context.Context, n, workers int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}
