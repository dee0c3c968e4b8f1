package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"pubmedx/config"
	"pubmedx/types"
)

// fakeFetcher serves canned summaries and link lists. Unknown PMIDs get a
// synthesized article and no links, so large crawls need no per-article
// setup. With block set, calls hang until the context ends.
type fakeFetcher struct {
	mu          sync.Mutex
	articles    map[string]*types.Article
	links       map[string]*types.ArticleLinks
	summaryErrs map[string]error
	calls       []string
	block       bool
	delay       time.Duration
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		articles:    make(map[string]*types.Article),
		links:       make(map[string]*types.ArticleLinks),
		summaryErrs: make(map[string]error),
	}
}

func (f *fakeFetcher) setLinks(pmid string, references, citations []string) {
	f.links[pmid] = &types.ArticleLinks{
		PMID:       pmid,
		References: references,
		Citations:  citations,
	}
}

func (f *fakeFetcher) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) sawCall(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeFetcher) Summary(ctx context.Context, pmid string) (*types.Article, error) {
	f.record("summary:" + pmid)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	failure := f.summaryErrs[pmid]
	article := f.articles[pmid]
	f.mu.Unlock()

	if failure != nil {
		return nil, failure
	}
	if article != nil {
		return article, nil
	}
	return &types.Article{
		PMID:    pmid,
		Title:   "Article " + pmid,
		Authors: []string{"Author " + pmid},
		Journal: "Test Journal",
		PubDate: "2020",
	}, nil
}

func (f *fakeFetcher) Links(ctx context.Context, pmid string) (*types.ArticleLinks, error) {
	f.record("links:" + pmid)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	links := f.links[pmid]
	f.mu.Unlock()

	if links != nil {
		return links, nil
	}
	return &types.ArticleLinks{PMID: pmid}, nil
}

// runCrawl builds a graph synchronously for deterministic assertions.
func runCrawl(fetcher Fetcher, seed string, maxDepth, maxArticles int) *Job {
	job := newJob("test-graph", seed, maxDepth)
	builder := newBuilder(fetcher, job, maxArticles)
	builder.Run(context.Background())
	return job
}

func countEdges(t *testing.T, data *types.GraphData, edgeType string) int {
	t.Helper()
	n := 0
	for _, e := range data.Edges {
		if e.Type == edgeType {
			n++
		}
	}
	return n
}

func TestCrawlDepthOneBuildsSeedNeighbourhood(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("32284615", []string{"11", "12", "13"}, []string{"21", "22"})

	job := runCrawl(fetcher, "32284615", 1, 50)

	if job.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", job.State())
	}

	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if len(data.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(data.Nodes))
	}
	if len(data.Edges) != 5 {
		t.Fatalf("expected 5 edges, got %d", len(data.Edges))
	}
	if got := countEdges(t, data, types.EdgeTypeReference); got != 3 {
		t.Fatalf("expected 3 reference edges, got %d", got)
	}
	if got := countEdges(t, data, types.EdgeTypeCitation); got != 2 {
		t.Fatalf("expected 2 citation edges, got %d", got)
	}
	for _, e := range data.Edges {
		if e.Source != "32284615" {
			t.Fatalf("expected all edges to originate at the seed, got %+v", e)
		}
	}

	seen := make(map[string]types.Node)
	for _, n := range data.Nodes {
		seen[n.ID] = n
	}
	seedNode, ok := seen["32284615"]
	if !ok || !seedNode.IsSeed {
		t.Fatalf("expected seed node flagged is_seed, got %+v", seedNode)
	}
	if seedNode.Title != "Article 32284615" {
		t.Fatalf("expected resolved seed title, got %q", seedNode.Title)
	}
	if neighbour := seen["11"]; strings.HasPrefix(neighbour.Title, config.PlaceholderTitlePrefix) {
		t.Fatalf("expected neighbour metadata resolved, got placeholder %q", neighbour.Title)
	}

	status := job.Status()
	if status.ProcessedArticles != 6 {
		t.Fatalf("expected 6 processed articles, got %d", status.ProcessedArticles)
	}
	if status.LimitReached {
		t.Fatal("limit must not be reached for a small crawl")
	}
	if data.Metadata.TotalArticles != 6 || data.Metadata.TotalRelationships != 5 {
		t.Fatalf("metadata counts wrong: %+v", data.Metadata)
	}
	if data.Metadata.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
}

func TestCrawlHonorsArticleCap(t *testing.T) {
	references := make([]string, 200)
	for i := range references {
		references[i] = fmt.Sprintf("90%03d", i)
	}

	fetcher := newFakeFetcher()
	fetcher.setLinks("100", references, nil)

	job := runCrawl(fetcher, "100", 2, 50)

	if job.State() != StateCompletedWithLimit {
		t.Fatalf("expected completed_with_limit, got %s", job.State())
	}

	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if len(data.Nodes) != 50 {
		t.Fatalf("expected exactly 50 nodes, got %d", len(data.Nodes))
	}
	if len(data.Edges) != 49 {
		t.Fatalf("expected 49 edges, got %d", len(data.Edges))
	}
	if !data.Metadata.LimitReached {
		t.Fatal("expected limit_reached in metadata")
	}

	// The crawl stops once the cap is hit, so queued neighbours keep their
	// placeholder metadata.
	for _, n := range data.Nodes[1:] {
		if !strings.HasPrefix(n.Title, config.PlaceholderTitlePrefix) {
			t.Fatalf("expected placeholder title for unexpanded node, got %q", n.Title)
		}
	}

	if status := job.Status(); status.ProcessedArticles != 1 {
		t.Fatalf("expected only the seed processed, got %d", status.ProcessedArticles)
	}
}

func TestCrawlSeedFetchFailureFailsJob(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.summaryErrs["100"] = errors.New("upstream down")

	job := runCrawl(fetcher, "100", 2, 50)

	if job.State() != StateError {
		t.Fatalf("expected error state, got %s", job.State())
	}

	status := job.Status()
	if !strings.Contains(status.Error, "seed article unavailable") {
		t.Fatalf("expected seed failure detail, got %q", status.Error)
	}
	if status.CompletedAt == nil {
		t.Fatal("expected failed job to carry a completion timestamp")
	}

	if _, err := job.Data(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady for failed job, got %v", err)
	}
}

func TestCrawlKeepsPlaceholderForFailedNeighbour(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("100", []string{"200"}, nil)
	fetcher.summaryErrs["200"] = errors.New("summary unavailable")

	job := runCrawl(fetcher, "100", 1, 50)

	if job.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", job.State())
	}

	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if len(data.Nodes) != 2 || len(data.Edges) != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d/%d", len(data.Nodes), len(data.Edges))
	}

	for _, n := range data.Nodes {
		if n.ID == "200" && n.Title != config.PlaceholderTitlePrefix+"200" {
			t.Fatalf("expected placeholder title for failed fetch, got %q", n.Title)
		}
	}
}

func TestCrawlDeduplicatesRepeatedLinks(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("100", []string{"200", "200", "100"}, []string{"200"})
	fetcher.setLinks("200", []string{"100"}, nil)

	job := runCrawl(fetcher, "100", 2, 50)

	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if len(data.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(data.Nodes))
	}
	// seed->200 reference, seed->200 citation, 200->seed reference. The
	// repeated reference and the self link must not appear.
	if len(data.Edges) != 3 {
		t.Fatalf("expected 3 distinct edges, got %d: %+v", len(data.Edges), data.Edges)
	}
	for _, e := range data.Edges {
		if e.Source == e.Target {
			t.Fatalf("self edge must be skipped: %+v", e)
		}
	}
}

func TestCrawlRespectsDepthBoundary(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("1", []string{"2"}, nil)
	fetcher.setLinks("2", []string{"3"}, nil)
	fetcher.setLinks("3", []string{"4"}, nil)

	job := runCrawl(fetcher, "1", 2, 50)

	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	ids := make(map[string]bool)
	for _, n := range data.Nodes {
		ids[n.ID] = true
	}
	if !ids["1"] || !ids["2"] || !ids["3"] {
		t.Fatalf("expected nodes 1..3, got %v", ids)
	}
	if ids["4"] {
		t.Fatal("node beyond the depth boundary must not be discovered")
	}

	// Depth-boundary nodes get metadata but are never asked for links.
	if !fetcher.sawCall("summary:3") {
		t.Fatal("expected metadata fetch for the boundary node")
	}
	if fetcher.sawCall("links:3") {
		t.Fatal("boundary node must not be expanded")
	}
}

func TestCrawlContextCancellationFailsJob(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("1", []string{"2", "3"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := newJob("test-graph", "1", 1)
	builder := newBuilder(fetcher, job, 50)
	builder.Run(ctx)

	if job.State() != StateError {
		t.Fatalf("expected error state, got %s", job.State())
	}
	if status := job.Status(); !strings.Contains(status.Error, "crawl aborted") {
		t.Fatalf("expected abort detail, got %q", status.Error)
	}
}

func TestGraphDataRoundTripsThroughJSON(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("100", []string{"200"}, []string{"300"})

	job := runCrawl(fetcher, "100", 1, 50)

	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	blob, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded types.GraphData
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(decoded.Nodes, data.Nodes) {
		t.Fatalf("nodes changed across the round trip:\nbefore %+v\nafter  %+v", data.Nodes, decoded.Nodes)
	}
	if !reflect.DeepEqual(decoded.Edges, data.Edges) {
		t.Fatalf("edges changed across the round trip:\nbefore %+v\nafter  %+v", data.Edges, decoded.Edges)
	}

	before, after := data.Metadata, decoded.Metadata
	if after.GraphID != before.GraphID || after.SeedPMID != before.SeedPMID || after.Status != before.Status {
		t.Fatalf("metadata identity changed: before %+v, after %+v", before, after)
	}
	if after.MaxDepth != before.MaxDepth || after.TotalArticles != before.TotalArticles ||
		after.TotalRelationships != before.TotalRelationships || after.LimitReached != before.LimitReached {
		t.Fatalf("metadata counts changed: before %+v, after %+v", before, after)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("created_at changed: before %v, after %v", before.CreatedAt, after.CreatedAt)
	}
	if before.CompletedAt == nil || after.CompletedAt == nil || !after.CompletedAt.Equal(*before.CompletedAt) {
		t.Fatalf("completed_at changed: before %v, after %v", before.CompletedAt, after.CompletedAt)
	}
}
