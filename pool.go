package mdnorm

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps workers; normalization is CPU-bound and short.
	MaxPoolSize = 16
)

// ResolvePoolSize determines the worker count for batch normalization.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// NormalizeAll runs the full pass over texts concurrently with up to
// workers goroutines (0 means ResolvePoolSize). Results keep input order.
// Texts not reached before ctx is done are returned unchanged along with
// ctx.Err().
func (n *Normalizer) NormalizeAll(ctx context.Context, texts []string, workers int) ([]string, error) {
	out := make([]string, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	concurrency := min(ResolvePoolSize(workers), len(texts))
	jobs := make(chan int, len(texts))
	for i := range texts {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					out[idx] = texts[idx]
					continue
				}
				out[idx] = n.Normalize(texts[idx])
			}
		}()
	}
	wg.Wait()

	return out, ctx.Err()
}
