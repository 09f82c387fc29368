package workpool

import (
	"context"
	"fmt"
	"sync"
)

// Run calls fn for every job index in [0, n) with at most concurrency
// calls in flight and returns the results in index order. The first error
// cancels the remaining jobs and is returned wrapped with its job index.
func Run[T any](
	ctx context.Context,
	n, concurrency int,
	fn func(ctx context.Context, i int) (T, error),
) ([]T, error) {
	if n == 0 {
		return []T{}, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type jobResult struct {
		index int
		value T
		err   error
	}

	workChan := make(chan int)
	resultChan := make(chan jobResult, n)

	var wg sync.WaitGroup
	for w := 0; w < concurrency && w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workChan {
				if ctx.Err() != nil {
					return
				}
				value, err := fn(ctx, i)
				if err != nil {
					cancel()
				}
				resultChan <- jobResult{index: i, value: value, err: err}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]T, n)
	done := 0
	var firstErr error
	for r := range resultChan {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("job %d failed: %w", r.index, r.err)
			}
			continue
		}
		results[r.index] = r.value
		done++
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if done < n {
		return nil, fmt.Errorf("work interrupted after %d of %d jobs: %w", done, n, ctx.Err())
	}

	return results, nil
}
