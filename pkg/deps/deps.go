// Package deps builds transitive dependency graphs of Maven artifacts by
// crawling POM descriptors breadth-first with a bounded worker pool.
package deps

import "time"

const (
	DefaultRepository  = "https://repo.maven.apache.org/maven2/" // Maven Central
	DefaultMaxDepth    = 3                                       // Default traversal depth
	DefaultConcurrency = 8                                       // Default parallel fetches
	DefaultCacheTTL    = 24 * time.Hour                          // Default HTTP cache duration
)

// Options configures dependency resolution behavior.
type Options struct {
	Repository  string               // Repository base URL (default: Maven Central)
	MaxDepth    int                  // Maximum depth to traverse; 0 fetches only the root (negative: default)
	Concurrency int                  // Parallel descriptor fetches (default: 8)
	Refresh     bool                 // Bypass the HTTP response cache
	Logger      func(string, ...any) // Progress/warning callback (optional)
}

// WithDefaults returns a copy of Options with unset values replaced by
// defaults. MaxDepth 0 is a meaningful value (root only) and is kept.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Repository == "" {
		opts.Repository = DefaultRepository
	}
	if opts.MaxDepth < 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}
