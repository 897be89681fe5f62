package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// MemoryURL selects the in-memory backend without trying a durable one.
const MemoryURL = "memory"

// Options controls backend selection.
type Options struct {
	// URL is a mongodb:// or mongodb+srv:// connection string, a
	// badger://<dir> location, or MemoryURL.
	URL string
	// Timeout bounds the durable backend's connectivity check.
	Timeout time.Duration
}

// Open selects the store backend once for the life of the process. When
// the durable backend cannot be reached the in-memory backend is returned
// instead, seeded with the example post; the failure is logged, not
// returned.
func Open(ctx context.Context, opts Options, logger *slog.Logger) Backend {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if strings.TrimSpace(opts.URL) == "" || opts.URL == MemoryURL {
		logger.Info("using in-memory storage")
		return NewMemoryRepository(SeedPost())
	}

	logger.Info("connecting to store", "url", redact(opts.URL))
	backend, err := openDurable(ctx, opts)
	if err != nil {
		logger.Warn("durable store not available, using in-memory storage", "error", err)
		return NewMemoryRepository(SeedPost())
	}
	if err := seedIfEmpty(ctx, backend); err != nil {
		logger.Warn("failed to seed store", "backend", backend.Name(), "error", err)
	}
	logger.Info("store connected", "backend", backend.Name())
	return backend
}

func openDurable(ctx context.Context, opts Options) (Backend, error) {
	switch {
	case strings.HasPrefix(opts.URL, "mongodb://"), strings.HasPrefix(opts.URL, "mongodb+srv://"):
		return OpenMongo(ctx, opts.URL, opts.Timeout)
	case strings.HasPrefix(opts.URL, "badger://"):
		dir := strings.TrimPrefix(opts.URL, "badger://")
		if dir == "" {
			return nil, fmt.Errorf("badger url %q has no directory", opts.URL)
		}
		return OpenBadger(dir)
	default:
		return nil, fmt.Errorf("unsupported store url %q", redact(opts.URL))
	}
}

func seedIfEmpty(ctx context.Context, backend Backend) error {
	n, err := backend.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return backend.Create(ctx, SeedPost())
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
