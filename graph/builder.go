package graph

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"pubmedx/config"
	"pubmedx/metrics"
	"pubmedx/types"
)

// Fetcher is the slice of the PubMed client the crawler needs.
type Fetcher interface {
	Summary(ctx context.Context, pmid string) (*types.Article, error)
	Links(ctx context.Context, pmid string) (*types.ArticleLinks, error)
}

type queueItem struct {
	pmid  string
	layer int
}

// Builder runs one breadth-first crawl over the citation neighbourhood of
// a seed article, accumulating nodes and typed edges on its job until the
// frontier empties, the article cap is hit, or the context ends.
type Builder struct {
	fetcher     Fetcher
	job         *Job
	maxArticles int
}

func newBuilder(fetcher Fetcher, job *Job, maxArticles int) *Builder {
	return &Builder{fetcher: fetcher, job: job, maxArticles: maxArticles}
}

// Run executes the crawl and leaves the job in a terminal state.
func (b *Builder) Run(ctx context.Context) {
	job := b.job
	job.setState(StateInProgress)
	log.Printf("crawl start graph=%s seed=%s depth=%d", job.id, job.seedPMID, job.maxDepth)

	visited := map[string]struct{}{job.seedPMID: {}}
	queue := []queueItem{{pmid: job.seedPMID, layer: 0}}

	// The seed exists from the first moment of the crawl; a failed fetch
	// later leaves this placeholder in place.
	job.addNode(types.Node{
		ID:     job.seedPMID,
		Title:  config.PlaceholderTitlePrefix + job.seedPMID,
		IsSeed: true,
	})

	for len(queue) > 0 {
		if ctx.Err() != nil {
			job.fail(fmt.Sprintf("crawl aborted: %v", ctx.Err()))
			log.Printf("crawl abort graph=%s: %v", job.id, ctx.Err())
			return
		}

		item := queue[0]
		queue = queue[1:]

		// Articles discovered at the depth boundary get their metadata
		// resolved but are never expanded, so no article can be discovered
		// beyond maxDepth.
		expand := item.layer < job.maxDepth

		article, links, err := b.fetchArticle(ctx, item.pmid, expand)
		if ctx.Err() != nil {
			job.fail(fmt.Sprintf("crawl aborted: %v", ctx.Err()))
			log.Printf("crawl abort graph=%s: %v", job.id, ctx.Err())
			return
		}
		if err != nil {
			if item.pmid == job.seedPMID {
				job.fail(fmt.Sprintf("seed article unavailable: %v", err))
				log.Printf("crawl failed graph=%s: seed %s unavailable: %v", job.id, job.seedPMID, err)
				return
			}
			log.Printf("crawl graph=%s pmid=%s metadata unavailable: %v (keeping placeholder)", job.id, item.pmid, err)
		}
		if article != nil {
			job.resolveNode(item.pmid, article)
		}

		if links != nil {
			b.addNeighbors(visited, &queue, item, links)
		}

		job.markProcessed()
		metrics.ArticlesProcessed.Inc()

		if job.limitWasReached() {
			log.Printf("crawl graph=%s reached article limit (%d)", job.id, b.maxArticles)
			break
		}
	}

	if job.limitWasReached() {
		job.finish(StateCompletedWithLimit)
	} else {
		job.finish(StateCompleted)
	}

	status := job.Status()
	log.Printf("crawl done graph=%s status=%s articles=%d processed=%d",
		job.id, status.Status, status.TotalArticles, status.ProcessedArticles)
}

// fetchArticle fetches an article's metadata and, when the node may be
// expanded, its link lists. The two calls run in parallel. A metadata
// failure is returned for the caller to decide on; a link failure only
// suppresses expansion from this node.
func (b *Builder) fetchArticle(ctx context.Context, pmid string, expand bool) (*types.Article, *types.ArticleLinks, error) {
	var (
		article    *types.Article
		links      *types.ArticleLinks
		summaryErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := b.fetcher.Summary(gctx, pmid)
		if err != nil {
			if gctx.Err() != nil {
				return err
			}
			summaryErr = err
			return nil
		}
		article = a
		return nil
	})
	if expand {
		g.Go(func() error {
			l, err := b.fetcher.Links(gctx, pmid)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				log.Printf("crawl graph=%s pmid=%s links unavailable: %v (treating as none)", b.job.id, pmid, err)
				return nil
			}
			links = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return article, links, summaryErr
}

// addNeighbors records typed edges for item's link lists and enqueues
// newly discovered articles one layer down. When the article cap blocks a
// new node the limit flag is set and the neighbour skipped; edges between
// articles already in the graph are still recorded.
func (b *Builder) addNeighbors(visited map[string]struct{}, queue *[]queueItem, item queueItem, links *types.ArticleLinks) {
	for _, ref := range links.References {
		b.addNeighbor(visited, queue, item, ref, types.EdgeTypeReference)
	}
	for _, citer := range links.Citations {
		b.addNeighbor(visited, queue, item, citer, types.EdgeTypeCitation)
	}
}

func (b *Builder) addNeighbor(visited map[string]struct{}, queue *[]queueItem, item queueItem, neighbor, edgeType string) {
	job := b.job
	if neighbor == "" || neighbor == item.pmid {
		return
	}

	if _, seen := visited[neighbor]; seen {
		job.addEdge(types.Edge{Source: item.pmid, Target: neighbor, Type: edgeType})
		return
	}

	if job.nodeCount() >= b.maxArticles {
		job.setLimitReached()
		return
	}

	visited[neighbor] = struct{}{}
	job.addNode(types.Node{
		ID:    neighbor,
		Title: config.PlaceholderTitlePrefix + neighbor,
	})
	job.addEdge(types.Edge{Source: item.pmid, Target: neighbor, Type: edgeType})
	*queue = append(*queue, queueItem{pmid: neighbor, layer: item.layer + 1})
}
