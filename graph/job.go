package graph

import (
	"sync"
	"time"

	"pubmedx/types"
)

// State is the lifecycle stage of a crawl job.
type State string

const (
	StatePending            State = "pending"
	StateInProgress         State = "in_progress"
	StateCompleted          State = "completed"
	StateCompletedWithLimit State = "completed_with_limit"
	StateError              State = "error"
)

// Terminal reports whether a job in s has stopped crawling.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateCompletedWithLimit, StateError:
		return true
	}
	return false
}

// Ready reports whether graph data may be served for a job in s.
func (s State) Ready() bool {
	return s == StateCompleted || s == StateCompletedWithLimit
}

type edgeKey struct {
	source string
	target string
	kind   string
}

// Job is a single crawl and the citation graph it accumulates. The crawl
// goroutine mutates it while API handlers read snapshots, so every access
// goes through the job's mutex. Nodes and edges only ever accumulate;
// counters never decrease.
type Job struct {
	mu sync.Mutex

	id       string
	seedPMID string
	maxDepth int

	state     State
	errDetail string

	nodes     map[string]*types.Node
	nodeOrder []string
	edges     []types.Edge
	edgeSeen  map[edgeKey]struct{}

	processed    int
	limitReached bool

	createdAt   time.Time
	completedAt *time.Time

	cancel func()
}

func newJob(id, seedPMID string, maxDepth int) *Job {
	return &Job{
		id:        id,
		seedPMID:  seedPMID,
		maxDepth:  maxDepth,
		state:     StatePending,
		nodes:     make(map[string]*types.Node),
		edgeSeen:  make(map[edgeKey]struct{}),
		createdAt: time.Now().UTC(),
	}
}

// ID returns the job's graph id.
func (j *Job) ID() string {
	return j.id
}

// SeedPMID returns the article the crawl started from.
func (j *Job) SeedPMID() string {
	return j.seedPMID
}

// State returns the job's current lifecycle state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// setState moves the job to s unless it already reached a terminal state.
func (j *Job) setState(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state.Terminal() {
		return
	}
	j.state = s
}

// finish moves the job to the terminal state s and stamps completion.
func (j *Job) finish(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state.Terminal() {
		return
	}
	j.state = s
	now := time.Now().UTC()
	j.completedAt = &now
}

// fail moves the job to the error state with a human-readable detail.
func (j *Job) fail(detail string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state.Terminal() {
		return
	}
	j.state = StateError
	j.errDetail = detail
	now := time.Now().UTC()
	j.completedAt = &now
}

// addNode inserts node if its id is new and reports whether it did.
func (j *Job) addNode(node types.Node) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, exists := j.nodes[node.ID]; exists {
		return false
	}
	stored := node
	j.nodes[node.ID] = &stored
	j.nodeOrder = append(j.nodeOrder, node.ID)
	return true
}

// resolveNode fills a node's placeholder metadata from a fetched article.
func (j *Job) resolveNode(pmid string, article *types.Article) {
	j.mu.Lock()
	defer j.mu.Unlock()
	node, ok := j.nodes[pmid]
	if !ok || article == nil {
		return
	}
	if article.Title != "" {
		node.Title = article.Title
	}
	node.Authors = article.Authors
	node.Journal = article.Journal
	node.PubDate = article.PubDate
	node.Abstract = article.Abstract
}

// addEdge inserts e unless the same (source, target, type) triple exists.
func (j *Job) addEdge(e types.Edge) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	key := edgeKey{source: e.Source, target: e.Target, kind: e.Type}
	if _, exists := j.edgeSeen[key]; exists {
		return false
	}
	j.edgeSeen[key] = struct{}{}
	j.edges = append(j.edges, e)
	return true
}

// nodeCount returns the number of nodes accumulated so far.
func (j *Job) nodeCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.nodes)
}

// markProcessed counts one fully expanded article.
func (j *Job) markProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.processed++
}

// setLimitReached records that the article cap stopped the crawl.
func (j *Job) setLimitReached() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.limitReached = true
}

// limitWasReached reports whether the article cap stopped the crawl.
func (j *Job) limitWasReached() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.limitReached
}

// Status returns a point-in-time progress snapshot.
func (j *Job) Status() types.StatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	return types.StatusResponse{
		GraphID:           j.id,
		SeedPMID:          j.seedPMID,
		Status:            string(j.state),
		ProcessedArticles: j.processed,
		TotalArticles:     len(j.nodes),
		LimitReached:      j.limitReached,
		CreatedAt:         j.createdAt,
		CompletedAt:       j.completedAt,
		Error:             j.errDetail,
	}
}

// Summary returns the compact listing entry for the job.
func (j *Job) Summary() types.JobSummary {
	j.mu.Lock()
	defer j.mu.Unlock()
	return types.JobSummary{
		GraphID:       j.id,
		SeedPMID:      j.seedPMID,
		Status:        string(j.state),
		MaxDepth:      j.maxDepth,
		TotalArticles: len(j.nodes),
		CreatedAt:     j.createdAt,
	}
}

// Data exports the finished graph. Jobs that have not completed, including
// failed ones, answer ErrNotReady; the caller reads failures from Status.
func (j *Job) Data() (*types.GraphData, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.state.Ready() {
		return nil, ErrNotReady
	}

	nodes := make([]types.Node, 0, len(j.nodeOrder))
	for _, id := range j.nodeOrder {
		node := *j.nodes[id]
		node.Authors = append([]string(nil), node.Authors...)
		nodes = append(nodes, node)
	}
	edges := append([]types.Edge(nil), j.edges...)

	return &types.GraphData{
		Nodes: nodes,
		Edges: edges,
		Metadata: types.GraphMetadata{
			GraphID:            j.id,
			SeedPMID:           j.seedPMID,
			Status:             string(j.state),
			MaxDepth:           j.maxDepth,
			TotalArticles:      len(nodes),
			TotalRelationships: len(edges),
			LimitReached:       j.limitReached,
			CreatedAt:          j.createdAt,
			CompletedAt:        j.completedAt,
		},
	}, nil
}
