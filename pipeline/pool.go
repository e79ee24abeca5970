package pipeline

import (
	"fmt"
	"io"
	"sync"

	houghlite "github.com/swdee/go-houghlite"
)

// RunParallel processes histograms across a pool of worker goroutines, then
// flushes results to the sink as Run does.  Histograms are routed to
// workers by event ID so each event's tracks are only ever touched by a
// single worker, the loader itself is read from one goroutine only.  The
// shared square collection and statistics serialize their own updates
func (a *Analysis) RunParallel(loader Loader, sink Sink, workers int) (Counts, error) {

	if workers < 1 {
		return a.stats.Counts(), fmt.Errorf("%w: pool size %d must be positive",
			houghlite.ErrConfiguration, workers)
	}

	pool := newHistPool(a, workers)

	// feed histograms from this goroutine so loader access stays
	// single threaded, worker routing keeps events disjoint
	var loadErr error

	for {
		hist, err := loader.Next()

		if err == io.EOF {
			break
		}

		if err != nil {
			loadErr = fmt.Errorf("error loading histogram: %w", err)
			break
		}

		// prefetch the event tracks so workers hit the cache instead of
		// the loader
		if a.sliceWanted(hist.Slice) {
			if _, err := a.eventTracks(loader, hist.EventID); err != nil {
				loadErr = err
				break
			}
		}

		pool.submit(hist)
	}

	pool.close()

	if err := pool.wait(); err != nil {
		return a.stats.Counts(), err
	}

	if loadErr != nil {
		return a.stats.Counts(), loadErr
	}

	if err := a.flush(sink); err != nil {
		return a.stats.Counts(), err
	}

	return a.stats.Counts(), nil
}

// histPool is a fixed set of workers each owning a histogram channel
type histPool struct {
	analysis *Analysis
	jobs     []chan *Histogram
	wg       sync.WaitGroup

	// errOnce records the first worker error
	errOnce sync.Once
	err     error

	closeOnce sync.Once
}

// newHistPool creates the pool and starts its workers
func newHistPool(a *Analysis, size int) *histPool {

	p := &histPool{
		analysis: a,
		jobs:     make([]chan *Histogram, size),
	}

	for i := 0; i < size; i++ {
		p.jobs[i] = make(chan *Histogram, 1)
		p.wg.Add(1)

		go p.worker(p.jobs[i])
	}

	return p
}

// submit routes a histogram to the worker owning its event
func (p *histPool) submit(hist *Histogram) {

	idx := hist.EventID % len(p.jobs)

	if idx < 0 {
		idx += len(p.jobs)
	}

	p.jobs[idx] <- hist
}

// worker drains its channel, recording the first failure and carrying on so
// the feeder never blocks
func (p *histPool) worker(jobs chan *Histogram) {
	defer p.wg.Done()

	for hist := range jobs {
		if err := p.analysis.processHistogram(hist, nil); err != nil {
			p.errOnce.Do(func() {
				p.err = err
			})
		}
	}
}

// close the pool input channels
func (p *histPool) close() {
	p.closeOnce.Do(func() {
		for _, ch := range p.jobs {
			close(ch)
		}
	})
}

// wait blocks until all workers finish and returns the first error seen
func (p *histPool) wait() error {
	p.wg.Wait()

	return p.err
}
