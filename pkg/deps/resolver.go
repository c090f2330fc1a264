package deps

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/krivobok/pomviz/pkg/graph"
	"github.com/krivobok/pomviz/pkg/maven"
)

// Fetcher retrieves a POM descriptor by URL.
type Fetcher interface {
	// FetchPOM retrieves and parses the descriptor at url. If refresh is
	// true, cached data is bypassed. Any error means "descriptor absent".
	FetchPOM(ctx context.Context, url string, refresh bool) (*maven.Project, error)
}

// Resolver builds a dependency graph starting from a root coordinate.
type Resolver struct {
	fetcher Fetcher
}

// NewResolver creates a Resolver that crawls descriptors using the given Fetcher.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fetches the root coordinate's descriptor and those of its
// transitive dependencies, respecting Options limits, and returns the
// resulting graph.
//
// A malformed root coordinate is the only fatal input: the error wraps
// [maven.ErrInvalidCoordinate]. Unavailable descriptors (network failures,
// missing POMs, malformed documents) become leaf nodes with an empty edge
// set. Dependencies discovered exactly at MaxDepth are recorded as edge
// targets but their own descriptors are never fetched.
func (r *Resolver) Resolve(ctx context.Context, coordinate string, opts Options) (*graph.Graph, error) {
	root, err := maven.ParseCoordinate(coordinate)
	if err != nil {
		return nil, err
	}

	c := &crawler{
		ctx:     ctx,
		opts:    opts.WithDefaults(),
		fetch:   r.fetcher.FetchPOM,
		g:       graph.New(),
		visited: make(map[string]bool),
	}
	c.jobs = make(chan job, c.opts.Concurrency*2)
	c.results = make(chan result, c.opts.Concurrency*2)
	return c.run(root)
}

type job struct {
	coord maven.Coordinate
	depth int
}

type result struct {
	job
	pom *maven.Project
	err error
}

// crawler coordinates the worker pool. Workers only fetch; the collect loop
// is the single goroutine that mutates the graph, so per-parent edge order
// stays in declaration order.
type crawler struct {
	ctx   context.Context
	opts  Options
	fetch func(context.Context, string, bool) (*maven.Project, error)

	g *graph.Graph

	jobs    chan job
	results chan result
	wg      sync.WaitGroup
	senders sync.WaitGroup

	mu      sync.Mutex
	visited map[string]bool
	pending int64
}

func (c *crawler) run(root maven.Coordinate) (*graph.Graph, error) {
	for range c.opts.Concurrency {
		c.wg.Add(1)
		go c.worker()
	}

	c.enqueue(job{coord: root})
	err := c.collect()

	// On cancellation enqueued sends may still be in flight; jobs must not
	// close until every one has either landed or aborted.
	c.senders.Wait()
	close(c.jobs)
	c.wg.Wait()

	if err != nil {
		return nil, err
	}
	return c.g, nil
}

func (c *crawler) worker() {
	defer c.wg.Done()
	for j := range c.jobs {
		if c.ctx.Err() != nil {
			atomic.AddInt64(&c.pending, -1)
			continue
		}
		pom, err := c.fetch(c.ctx, j.coord.POMURL(c.opts.Repository), c.opts.Refresh)
		c.results <- result{job: j, pom: pom, err: err}
	}
}

// enqueue marks the coordinate visited and schedules its fetch. The
// check-and-mark is a single critical section, so a coordinate is fetched at
// most once even when several parents discover it concurrently.
func (c *crawler) enqueue(j job) bool {
	id := j.coord.String()

	c.mu.Lock()
	if c.visited[id] {
		c.mu.Unlock()
		return false
	}
	c.visited[id] = true
	c.mu.Unlock()

	atomic.AddInt64(&c.pending, 1)

	c.senders.Add(1)
	go func() {
		defer c.senders.Done()
		select {
		case c.jobs <- j:
		case <-c.ctx.Done():
			atomic.AddInt64(&c.pending, -1)
		}
	}()
	return true
}

func (c *crawler) collect() error {
	for {
		select {
		case r := <-c.results:
			c.handle(r)
			if atomic.AddInt64(&c.pending, -1) == 0 {
				return nil
			}
		case <-c.ctx.Done():
			return c.ctx.Err()
		}
	}
}

func (c *crawler) handle(r result) {
	id := r.coord.String()
	c.g.Ensure(id)

	if r.err != nil {
		// Missing or unparseable descriptors are expected (metadata-only
		// artifacts, BOMs); the coordinate stays in the graph as a leaf.
		c.opts.Logger("descriptor unavailable: %s: %v", id, r.err)
		return
	}

	for _, dep := range r.pom.DirectDependencies() {
		c.g.AddEdge(id, dep)

		if r.depth >= c.opts.MaxDepth {
			continue
		}
		coord, err := maven.ParseCoordinate(dep)
		if err != nil {
			c.opts.Logger("skipping dependency of %s: %v", id, err)
			continue
		}
		c.enqueue(job{coord: coord, depth: r.depth + 1})
	}
}
