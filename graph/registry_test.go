package graph

import (
	"errors"
	"sync"
	"testing"
	"time"

	"pubmedx/config"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestRegistryLifecycle(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("100", []string{"200"}, []string{"300"})
	registry := NewRegistry(fetcher, RegistryConfig{})

	job := registry.Create("100", 1)
	if job.ID() == "" {
		t.Fatal("expected a graph id")
	}

	waitFor(t, 2*time.Second, func() bool { return job.State().Terminal() })

	status, err := registry.Status(job.ID())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Status != string(StateCompleted) {
		t.Fatalf("expected completed, got %s", status.Status)
	}
	if status.SeedPMID != "100" {
		t.Fatalf("expected seed 100, got %s", status.SeedPMID)
	}

	data, err := registry.Data(job.ID())
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if data.Metadata.GraphID != job.ID() {
		t.Fatalf("expected graph id %s, got %s", job.ID(), data.Metadata.GraphID)
	}
	if len(data.Nodes) != 3 || len(data.Edges) != 2 {
		t.Fatalf("unexpected graph shape: %d nodes, %d edges", len(data.Nodes), len(data.Edges))
	}

	list := registry.List()
	if len(list) != 1 || list[0].GraphID != job.ID() {
		t.Fatalf("unexpected listing: %+v", list)
	}

	if err := registry.Delete(job.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := registry.Get(job.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := registry.Delete(job.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestRegistryUnknownGraph(t *testing.T) {
	registry := NewRegistry(newFakeFetcher(), RegistryConfig{})

	if _, err := registry.Status("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := registry.Data("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := registry.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryDataNotReadyWhileRunning(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.block = true
	registry := NewRegistry(fetcher, RegistryConfig{})

	job := registry.Create("100", 1)
	defer registry.Delete(job.ID())

	waitFor(t, 2*time.Second, func() bool { return fetcher.callCount() >= 1 })

	if _, err := registry.Data(job.ID()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady while running, got %v", err)
	}

	status, err := registry.Status(job.ID())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Status != string(StateInProgress) && status.Status != string(StatePending) {
		t.Fatalf("expected a running state, got %s", status.Status)
	}
}

func TestRegistryDeleteCancelsRunningCrawl(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.block = true
	registry := NewRegistry(fetcher, RegistryConfig{})

	job := registry.Create("100", 1)
	waitFor(t, 2*time.Second, func() bool { return fetcher.callCount() >= 1 })

	if err := registry.Delete(job.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The crawl observes the cancelled context and stops issuing fetches.
	waitFor(t, 2*time.Second, func() bool { return job.State().Terminal() })

	if _, err := registry.Get(job.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	calls := fetcher.callCount()
	time.Sleep(50 * time.Millisecond)
	if fetcher.callCount() != calls {
		t.Fatal("fetches continued after the job was deleted")
	}
}

func TestRegistryCrawlTimeout(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.block = true
	registry := NewRegistry(fetcher, RegistryConfig{CrawlTimeout: 30 * time.Millisecond})

	job := registry.Create("100", 1)
	defer registry.Delete(job.ID())

	waitFor(t, 2*time.Second, func() bool { return job.State() == StateError })

	status, _ := registry.Status(job.ID())
	if status.Error == "" {
		t.Fatal("expected timeout detail in status")
	}
}

func TestRegistryClampsDepth(t *testing.T) {
	fetcher := newFakeFetcher()
	registry := NewRegistry(fetcher, RegistryConfig{})

	tall := registry.Create("100", 99)
	if tall.Summary().MaxDepth != config.DepthCeiling {
		t.Fatalf("expected depth clamped to %d, got %d", config.DepthCeiling, tall.Summary().MaxDepth)
	}

	unset := registry.Create("100", 0)
	if unset.Summary().MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("expected default depth %d, got %d", config.DefaultMaxDepth, unset.Summary().MaxDepth)
	}

	waitFor(t, 2*time.Second, func() bool {
		return tall.State().Terminal() && unset.State().Terminal()
	})
}

func TestRegistryProgressIsMonotonic(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.delay = time.Millisecond
	fetcher.setLinks("100", []string{"1", "2", "3", "4", "5", "6", "7", "8"}, nil)
	registry := NewRegistry(fetcher, RegistryConfig{})

	job := registry.Create("100", 1)

	lastProcessed, lastTotal := 0, 0
	for !job.State().Terminal() {
		status := job.Status()
		if status.ProcessedArticles < lastProcessed {
			t.Fatalf("processed went backwards: %d -> %d", lastProcessed, status.ProcessedArticles)
		}
		if status.TotalArticles < lastTotal {
			t.Fatalf("total went backwards: %d -> %d", lastTotal, status.TotalArticles)
		}
		lastProcessed = status.ProcessedArticles
		lastTotal = status.TotalArticles
		time.Sleep(time.Millisecond)
	}

	final := job.Status()
	if final.ProcessedArticles != 9 || final.TotalArticles != 9 {
		t.Fatalf("expected 9 processed and 9 total, got %d/%d", final.ProcessedArticles, final.TotalArticles)
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setLinks("100", []string{"200"}, nil)
	registry := NewRegistry(fetcher, RegistryConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job := registry.Create("100", 1)

			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) && !job.State().Terminal() {
				time.Sleep(2 * time.Millisecond)
			}
			if !job.State().Terminal() {
				t.Errorf("job %s did not finish in time", job.ID())
				return
			}

			if _, err := registry.Status(job.ID()); err != nil {
				t.Errorf("Status failed: %v", err)
			}
			if err := registry.Delete(job.ID()); err != nil {
				t.Errorf("Delete failed: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				registry.List()
				time.Sleep(time.Millisecond)
			}
		}
	}()

	wg.Wait()
	close(done)

	if remaining := registry.List(); len(remaining) != 0 {
		t.Fatalf("expected empty registry, got %d jobs", len(remaining))
	}
}
