package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const initialMenu = `
[[items]]
key = "a"
label = "Alpha"
`

const updatedMenu = `
[[items]]
key = "a"
label = "Alpha"

[[items]]
key = "b"
label = "Beta"
`

func TestWatcherReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	if err := os.WriteFile(path, []byte(initialMenu), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(updatedMenu), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-w.Events():
		if evt.Err != nil {
			t.Fatalf("unexpected reload error: %v", evt.Err)
		}
		if len(evt.Definition.Items) != 2 {
			t.Fatalf("expected 2 items after reload, got %d", len(evt.Definition.Items))
		}
		if evt.Path != path {
			t.Fatalf("expected path %q, got %q", path, evt.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsInvalidDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	if err := os.WriteFile(path, []byte(initialMenu), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte("items = 3\nbogus = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-w.Events():
		if evt.Err == nil {
			t.Fatal("expected an error for an invalid definition")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing.toml"), 10*time.Millisecond)
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatal("expected events channel to be closed")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	ctx := context.Background()
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait(ctx)
	th.wait(ctx)
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected second wait to be throttled, elapsed %s", elapsed)
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(ctx) {
		t.Fatal("nil throttle should never block")
	}
}

func TestThrottleWaitStopsOnCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	if !th.wait(context.Background()) {
		t.Fatal("first wait should take the free slot")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if th.wait(ctx) {
		t.Fatal("expected cancelled wait to report false")
	}
}
