package registry

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync/atomic"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many directory entries are loaded at once.
const DefaultConcurrency = 8

// listing is one scan result. Its pointer identity tells Get whether the id
// index is current.
type listing struct {
	integrations []descriptor.IntegrationDescriptor
}

// index maps ids to descriptors for the listing it was built from.
type index struct {
	from *listing
	byID map[string]descriptor.IntegrationDescriptor
	ids  []string // in listing order
}

// Registry is the cached, queryable collection of integration descriptors
// found in one directory. It is safe for concurrent use.
type Registry struct {
	dir         string
	logger      *zap.Logger
	builders    map[string]Builder
	concurrency int

	latest atomic.Pointer[listing]
	memo   atomic.Pointer[index]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report skipped files and descriptors.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBuilders registers the builders that back code-kind descriptor files,
// keyed by logical file name.
func WithBuilders(builders map[string]Builder) Option {
	return func(r *Registry) {
		for name, b := range builders {
			r.builders[name] = b
		}
	}
}

// WithConcurrency bounds the number of entries loaded in parallel.
func WithConcurrency(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New returns a Registry over dir. Nothing is read until the first List or Get.
func New(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:         dir,
		logger:      zap.NewNop(),
		builders:    make(map[string]Builder),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the directory the registry scans.
func (r *Registry) Dir() string {
	return r.dir
}

// List scans the directory and replaces the cached listing. Entries are
// loaded in parallel but returned in directory order. Files that cannot be
// loaded and descriptors that fail to normalize are logged and skipped; when
// two descriptors share an id the first one wins. List fails only when the
// directory itself cannot be read, in which case the cache is left as is.
func (r *Registry) List(ctx context.Context) ([]descriptor.IntegrationDescriptor, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.logger.Error("error occurred when trying to read integrations directory",
			zap.String("dir", r.dir), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDirectoryAccess, err)
	}

	results := make([][]descriptor.IntegrationDescriptor, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.loadEntry(entry.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", r.dir, err)
	}

	l := &listing{integrations: r.dedupe(entries, results)}
	r.latest.Store(l)
	r.logger.Debug("integrations listed", zap.Int("count", len(l.integrations)))

	return slices.Clone(l.integrations), nil
}

// dedupe concatenates the per-entry results, keeping the first descriptor
// seen for each id.
func (r *Registry) dedupe(entries []os.DirEntry, results [][]descriptor.IntegrationDescriptor) []descriptor.IntegrationDescriptor {
	var out []descriptor.IntegrationDescriptor
	firstFile := make(map[string]string)

	for i, batch := range results {
		file := entries[i].Name()
		for _, d := range batch {
			if kept, dup := firstFile[d.ID]; dup {
				r.logger.Error("there are multiple integrations having the same id, the one we met first stays",
					zap.String("id", d.ID),
					zap.String("kept", kept),
					zap.String("skipped", file))
				continue
			}
			firstFile[d.ID] = file
			out = append(out, d)
		}
	}
	return out
}

// Get returns the descriptor with the given id, scanning the directory first
// if nothing has been listed yet. It returns a *NotFoundError for unknown ids.
func (r *Registry) Get(ctx context.Context, id string) (descriptor.IntegrationDescriptor, error) {
	l := r.latest.Load()
	if l == nil {
		if _, err := r.List(ctx); err != nil {
			return descriptor.IntegrationDescriptor{}, err
		}
		l = r.latest.Load()
	}

	idx := r.memo.Load()
	if idx == nil || idx.from != l {
		idx = buildIndex(l)
		r.memo.Store(idx)
	}

	d, ok := idx.byID[id]
	if !ok {
		return descriptor.IntegrationDescriptor{}, &NotFoundError{ID: id, Known: slices.Clone(idx.ids)}
	}
	return d, nil
}

func buildIndex(l *listing) *index {
	idx := &index{
		from: l,
		byID: make(map[string]descriptor.IntegrationDescriptor, len(l.integrations)),
		ids:  make([]string, 0, len(l.integrations)),
	}
	for _, d := range l.integrations {
		if _, ok := idx.byID[d.ID]; ok {
			continue
		}
		idx.byID[d.ID] = d
		idx.ids = append(idx.ids, d.ID)
	}
	return idx
}
