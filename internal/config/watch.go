package config

import (
	"context"
	"errors"
	"os"
	"time"
)

var ErrNotWatchable = errors.New("remote config sources cannot be watched")

// Watcher polls the modification times of a config source (the base file
// and its .local override) and calls onChange when either moves forward.
type Watcher struct {
	paths     []string
	interval  time.Duration
	onChange  func(path string)
	lastMTime map[string]time.Time
}

func NewWatcher(source string, interval time.Duration, onChange func(string)) (*Watcher, error) {
	p := Paths{Source: source}
	if source == "" || p.IsRemote() {
		return nil, ErrNotWatchable
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		paths:     []string{p.BasePath(), p.LocalPath()},
		interval:  interval,
		onChange:  onChange,
		lastMTime: make(map[string]time.Time),
	}, nil
}

// Run polls until ctx is done. The first scan only primes the cache.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.scan(true)
	for {
		select {
		case <-ticker.C:
			w.scan(false)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing files (usually the optional override) are skipped
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		// a file that appears after priming counts as a change
		if (!ok && !prime) || (ok && mt.After(last)) {
			if w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
