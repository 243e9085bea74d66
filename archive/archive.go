package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/knntune/blobstore"
	"github.com/hupe1980/knntune/report"
	"github.com/hupe1980/knntune/resource"
)

type options struct {
	registry    Registry
	controller  *resource.Controller
	compression report.Compression
	maxRetries  int
}

// Option configures an Archive.
type Option func(*options)

// WithRegistry sets the registry that tracks the latest run.
// The default is a fresh MemoryRegistry.
func WithRegistry(r Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithResourceController rate limits report reads and writes.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.controller = rc }
}

// WithCompression sets the report compression. Default: zstd.
func WithCompression(c report.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithMaxRetries sets how often a commit is retried after losing a race.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// Archive stores reports and commits them as an experiment's latest run.
type Archive struct {
	store blobstore.BlobStore
	opts  options
}

// New creates an archive on top of store.
func New(store blobstore.BlobStore, optFns ...Option) *Archive {
	opts := options{
		compression: report.CompressionZstd,
		maxRetries:  3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.registry == nil {
		opts.registry = NewMemoryRegistry()
	}
	return &Archive{store: store, opts: opts}
}

// Registry returns the registry in use.
func (a *Archive) Registry() Registry { return a.opts.registry }

// Save writes r to the blob store and commits it as the latest run of its
// experiment. It returns the committed entry and the encoded size.
func (a *Archive) Save(ctx context.Context, r *report.Report) (Entry, int, error) {
	var buf bytes.Buffer
	w := resource.NewRateLimitedWriter(ctx, &buf, a.opts.controller)
	if err := report.Encode(w, r, a.opts.compression); err != nil {
		return Entry{}, 0, err
	}

	key := r.Key()
	if err := a.store.Put(ctx, key, buf.Bytes()); err != nil {
		return Entry{}, 0, fmt.Errorf("archive: put %s: %w", key, err)
	}

	e, err := a.commit(ctx, r.Experiment, key)
	if err != nil {
		return Entry{}, 0, err
	}
	return e, buf.Len(), nil
}

func (a *Archive) commit(ctx context.Context, experiment, key string) (Entry, error) {
	for attempt := 0; ; attempt++ {
		var next uint64 = 1
		latest, err := a.opts.registry.Latest(ctx, experiment)
		switch {
		case err == nil:
			next = latest.Version + 1
		case !errors.Is(err, ErrNoRuns):
			return Entry{}, err
		}

		e := Entry{Experiment: experiment, Version: next, Key: key}
		err = a.opts.registry.Commit(ctx, e)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, ErrConcurrentModification) || attempt >= a.opts.maxRetries {
			return Entry{}, err
		}
		if err := ctx.Err(); err != nil {
			return Entry{}, err
		}
	}
}

// Load reads the report stored under key.
func (a *Archive) Load(ctx context.Context, key string) (*report.Report, error) {
	data, err := blobstore.ReadAll(ctx, a.store, key)
	if err != nil {
		return nil, fmt.Errorf("archive: read %s: %w", key, err)
	}
	return report.Decode(resource.NewRateLimitedReader(ctx, bytes.NewReader(data), a.opts.controller))
}

// Latest loads the most recently committed report of an experiment.
func (a *Archive) Latest(ctx context.Context, experiment string) (*report.Report, Entry, error) {
	e, err := a.opts.registry.Latest(ctx, experiment)
	if err != nil {
		return nil, Entry{}, err
	}
	r, err := a.Load(ctx, e.Key)
	if err != nil {
		return nil, Entry{}, err
	}
	return r, e, nil
}

// History returns the committed runs of an experiment, newest first.
func (a *Archive) History(ctx context.Context, experiment string, limit int) ([]Entry, error) {
	return a.opts.registry.History(ctx, experiment, limit)
}

// Runs lists the report blobs stored for an experiment, including ones
// whose commit failed.
func (a *Archive) Runs(ctx context.Context, experiment string) ([]string, error) {
	return a.store.List(ctx, experiment+"/")
}
