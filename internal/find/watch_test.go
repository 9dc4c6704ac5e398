package vexyglob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatchChanges(t *testing.T) {
	tmpDir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events := make(chan Result, 20)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		handler := func(ctx context.Context, res Result) error {
			events <- res
			return nil
		}
		wg.Done()
		err := WatchChanges(ctx, Options{Root: tmpDir, Pattern: "*.txt"}, handler)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			t.Errorf("WatchChanges: %v", err)
		}
	}()

	wg.Wait()
	// Give the watcher a moment to register the root.
	time.Sleep(200 * time.Millisecond)

	matching := filepath.Join(tmpDir, "hello.txt")
	if err := os.WriteFile(matching, []byte("hello"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// A non-matching file must never reach the handler.
	if err := os.WriteFile(filepath.Join(tmpDir, "skip.log"), []byte("skip"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var gotMatching bool
	deadline := time.After(5 * time.Second)
	for !gotMatching {
		select {
		case res := <-events:
			if res.Path == matching {
				gotMatching = true
			} else {
				t.Errorf("unexpected event for %s", res.Path)
			}
		case <-deadline:
			t.Fatal("no event received for matching file")
		}
	}

	cancel()
}

func TestWatchChangesHandlerError(t *testing.T) {
	tmpDir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sentinel := errors.New("stop now")
	done := make(chan error, 1)
	go func() {
		done <- WatchChanges(ctx, Options{Root: tmpDir}, func(ctx context.Context, res Result) error {
			return sentinel
		})
	}()

	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(tmpDir, "trigger.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, sentinel) {
			t.Errorf("expected handler error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WatchChanges did not return after handler error")
	}
}

func TestWatchChangesInvalidOptions(t *testing.T) {
	err := WatchChanges(context.Background(), Options{
		Root:      t.TempDir(),
		Traversal: TraversalBFS,
	}, func(ctx context.Context, res Result) error { return nil })

	var uerr *UnsupportedOperationError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedOperationError, got %v", err)
	}
}
