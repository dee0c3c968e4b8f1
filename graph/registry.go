package graph

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pubmedx/config"
	"pubmedx/metrics"
	"pubmedx/types"
)

// RegistryConfig configures a Registry. Zero values fall back to the
// defaults in the config package.
type RegistryConfig struct {
	MaxArticles  int
	CrawlTimeout time.Duration
}

// Registry owns every crawl job in the process. Jobs live in memory only;
// deleting one cancels its crawl and forgets the graph.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job

	fetcher      Fetcher
	maxArticles  int
	crawlTimeout time.Duration
}

// NewRegistry creates a Registry that crawls through fetcher.
func NewRegistry(fetcher Fetcher, cfg RegistryConfig) *Registry {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = config.DefaultMaxArticles
	}
	if cfg.CrawlTimeout <= 0 {
		cfg.CrawlTimeout = config.DefaultCrawlTimeout
	}
	return &Registry{
		jobs:         make(map[string]*Job),
		fetcher:      fetcher,
		maxArticles:  cfg.MaxArticles,
		crawlTimeout: cfg.CrawlTimeout,
	}
}

// Create registers a crawl job for seedPMID and starts it in the
// background. A maxDepth outside [1, DepthCeiling] is clamped.
func (r *Registry) Create(seedPMID string, maxDepth int) *Job {
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	if maxDepth > config.DepthCeiling {
		maxDepth = config.DepthCeiling
	}

	job := newJob(uuid.New().String(), seedPMID, maxDepth)
	ctx, cancel := context.WithTimeout(context.Background(), r.crawlTimeout)
	job.cancel = cancel

	r.mu.Lock()
	r.jobs[job.id] = job
	r.mu.Unlock()

	metrics.JobsCreated.Inc()
	metrics.JobsActive.Inc()
	log.Printf("graph created id=%s seed=%s depth=%d", job.id, seedPMID, maxDepth)

	builder := newBuilder(r.fetcher, job, r.maxArticles)
	go func() {
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("crawl panic graph=%s: %v", job.id, rec)
				job.fail(fmt.Sprintf("internal fault: %v", rec))
			}
			metrics.JobsActive.Dec()
			metrics.JobsFinished.WithLabelValues(string(job.State())).Inc()
		}()
		builder.Run(ctx)
	}()

	return job
}

// Get returns the job for id.
func (r *Registry) Get(id string) (*Job, error) {
	r.mu.RLock()
	job, ok := r.jobs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return job, nil
}

// Status returns the progress snapshot for id.
func (r *Registry) Status(id string) (types.StatusResponse, error) {
	job, err := r.Get(id)
	if err != nil {
		return types.StatusResponse{}, err
	}
	return job.Status(), nil
}

// Data returns the finished graph for id.
func (r *Registry) Data(id string) (*types.GraphData, error) {
	job, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return job.Data()
}

// List returns summaries of all jobs, oldest first.
func (r *Registry) List() []types.JobSummary {
	r.mu.RLock()
	jobs := make([]*Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job)
	}
	r.mu.RUnlock()

	summaries := make([]types.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, job.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].GraphID < summaries[j].GraphID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries
}

// Delete removes the job for id, cancelling its crawl if still running.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	job, ok := r.jobs[id]
	if ok {
		delete(r.jobs, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if job.cancel != nil {
		job.cancel()
	}
	log.Printf("graph deleted id=%s", id)
	return nil
}
