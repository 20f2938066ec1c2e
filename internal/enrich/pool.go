package enrich

import (
	"context"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/shahbajlive/lexforge/internal/wordlist"
)

const (
	minWorkers = 2
	maxWorkers = 12
)

// Workers resolves the pool width. A positive requested value wins; zero
// means size from the host's logical CPU count. Either way the result is
// clamped so a small host still overlaps backend latency and a large host
// does not swamp the model runner.
func Workers(requested int) int {
	n := requested
	if n <= 0 {
		counts, err := cpu.Counts(true)
		if err != nil || counts <= 0 {
			counts = runtime.NumCPU()
		}
		n = counts
	}
	if n < minWorkers {
		n = minWorkers
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// Run enriches all tasks through a worker pool and returns the records in
// task order. onRecord, if non-nil, is called once per finished record from
// a single goroutine, in completion order; use it for progress reporting.
// A canceled context stops dispatching; already-started words finish, and
// never-dispatched slots are zero records (empty Word).
func (o *Orchestrator) Run(ctx context.Context, tasks []wordlist.Task, onRecord func(index int, rec Record)) []Record {
	records := make([]Record, len(tasks))
	indices := make(chan int)
	done := make(chan int)

	workers := Workers(o.cfg.Workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				records[i] = o.EnrichWord(ctx, tasks[i])
				done <- i
			}
		}()
	}

	go func() {
		defer close(indices)
		for i := range tasks {
			select {
			case indices <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	for i := range done {
		if onRecord != nil {
			onRecord(i, records[i])
		}
	}

	return records
}
