package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xtding233/parabola/internal/config"
)

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "parabola.yaml", "version: \"1\"\n")

	changed := make(chan string, 4)
	w, err := config.NewWatcher(base, 10*time.Millisecond, func(p string) { changed <- p })
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// let the priming scan run before touching anything
	time.Sleep(50 * time.Millisecond)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(base, future, future); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-changed:
		if p != base {
			t.Fatalf("changed %s", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for base file")
	}

	local := writeFile(t, dir, "parabola.local.yaml", "version: \"2\"\n")
	select {
	case p := <-changed:
		if p != local {
			t.Fatalf("changed %s", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for new override")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("run returned %v", err)
	}
}

func TestWatcherRejectsRemote(t *testing.T) {
	for _, src := range []string{"", "https://example.test/parabola.yaml"} {
		if _, err := config.NewWatcher(src, time.Second, nil); !errors.Is(err, config.ErrNotWatchable) {
			t.Fatalf("%q: %v", src, err)
		}
	}
	if _, err := config.NewWatcher(filepath.Join(t.TempDir(), "x.yaml"), 0, nil); err != nil {
		t.Fatal(err)
	}
}
