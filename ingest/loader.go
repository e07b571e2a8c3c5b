package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index/badger"
	"github.com/poiesic/taxonomist/index/openfda"
)

const (
	DefaultBatchSize      = 500
	DefaultMaxAttempts    = 3
	DefaultRetryBaseDelay = 100 * time.Millisecond
)

// TaxonomyStore receives taxonomy entries.
type TaxonomyStore interface {
	Put(ctx context.Context, entries ...*core.TaxonomyEntry) error
}

// CorpusStore receives corpus records.
type CorpusStore interface {
	Put(ctx context.Context, records ...*core.CorpusRecord) error
}

// CheckpointStore persists how far each document has been loaded.
type CheckpointStore interface {
	LoadCheckpoint(ctx context.Context, source string) (*badger.Checkpoint, error)
	SaveCheckpoint(ctx context.Context, checkpoint *badger.Checkpoint) error
}

// Stats summarises a load.
type Stats struct {
	Documents int // Bulk documents read
	Read      int // Records decoded
	Stored    int // Records written
	Skipped   int // Records rejected by validation
	Resumed   int // Records skipped because a checkpoint covered them
}

func (s *Stats) add(o Stats) {
	s.Documents += o.Documents
	s.Read += o.Read
	s.Stored += o.Stored
	s.Skipped += o.Skipped
	s.Resumed += o.Resumed
}

// Loader writes bulk documents into the mirror.
type Loader struct {
	taxonomy       TaxonomyStore
	corpus         CorpusStore
	checkpoints    CheckpointStore
	pool           *ants.Pool
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the number of documents decoded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if l.pool != nil {
			l.pool.Release()
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithBatchSize sets the number of records written per transaction.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		l.batchSize = size
		return nil
	}
}

// WithRetry sets how batch writes are retried.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(l *Loader) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		l.maxAttempts = maxAttempts
		l.retryBaseDelay = baseDelay
		return nil
	}
}

// WithCheckpoints enables resuming interrupted loads.
func WithCheckpoints(store CheckpointStore) Option {
	return func(l *Loader) error {
		l.checkpoints = store
		return nil
	}
}

// WithProgress reports stored records to w every interval records.
func WithProgress(w io.Writer, interval int) Option {
	return func(l *Loader) error {
		l.progress = w
		l.reportInterval = interval
		return nil
	}
}

// NewLoader creates a new loader.
func NewLoader(taxonomy TaxonomyStore, corpus CorpusStore, opts ...Option) (*Loader, error) {
	if taxonomy == nil {
		return nil, ErrTaxonomyStoreRequired
	}
	if corpus == nil {
		return nil, ErrCorpusStoreRequired
	}

	l := &Loader{
		taxonomy:       taxonomy,
		corpus:         corpus,
		batchSize:      DefaultBatchSize,
		maxAttempts:    DefaultMaxAttempts,
		retryBaseDelay: DefaultRetryBaseDelay,
		reportInterval: DefaultBatchSize,
		logger:         slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	if l.pool == nil {
		poolSize := runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
		pool, err := ants.NewPool(poolSize)
		if err != nil {
			return nil, err
		}
		l.pool = pool
	}

	return l, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// Load reads every file into the given collection. Files are processed
// concurrently; records within a document are written in order. Errors of
// individual files are joined and returned after all files finished.
func (l *Loader) Load(ctx context.Context, collection core.Collection, paths ...string) (*Stats, error) {
	if collection != core.CollectionTaxonomy && collection != core.CollectionCorpus {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	var tracker *ProgressTracker
	if l.progress != nil {
		tracker = NewProgressTracker(l.progress, len(paths), l.reportInterval)
		tracker.Start()
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		stats Stats
		errs  []error
	)
	record := func(s Stats, err error) {
		mu.Lock()
		defer mu.Unlock()
		stats.add(s)
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, path := range paths {
		wg.Add(1)
		err := l.pool.Submit(func() {
			defer wg.Done()
			s, err := l.loadFile(ctx, collection, path, tracker)
			tracker.FileDone()
			if err != nil {
				l.logger.Error("error loading file", "path", path, "err", err)
				err = fmt.Errorf("%s: %w", path, err)
			}
			record(s, err)
		})
		if err != nil {
			wg.Done()
			record(Stats{}, fmt.Errorf("%s: %w", path, err))
		}
	}
	wg.Wait()

	tracker.Finish()
	l.logger.Info("load finished",
		"collection", string(collection),
		"documents", stats.Documents,
		"stored", stats.Stored,
		"skipped", stats.Skipped,
		"resumed", stats.Resumed)

	return &stats, errors.Join(errs...)
}

func (l *Loader) loadFile(ctx context.Context, collection core.Collection, path string, tracker *ProgressTracker) (Stats, error) {
	var stats Stats
	abs, err := filepath.Abs(path)
	if err != nil {
		return stats, err
	}
	err = openDocuments(abs, func(name string, r io.Reader) error {
		source := checkpointSource(collection, name)
		var s Stats
		var err error
		switch collection {
		case core.CollectionTaxonomy:
			s, err = loadDocument(ctx, l, source, r, tracker, classificationEntry, l.taxonomy.Put)
		default:
			s, err = loadDocument(ctx, l, source, r, tracker, clearanceRecord, l.corpus.Put)
		}
		stats.add(s)
		return err
	})
	return stats, err
}

// checkpointSource names the checkpoint of one document. name is the
// document's absolute path, with the member name appended for archives.
func checkpointSource(collection core.Collection, name string) string {
	return string(collection) + ":" + name
}

func classificationEntry(rec openfda.ClassificationRecord) (*core.TaxonomyEntry, error) {
	entry := rec.Entry()
	return entry, core.ValidateTaxonomyEntry(entry)
}

func clearanceRecord(rec openfda.ClearanceRecord) (*core.CorpusRecord, error) {
	record := rec.Record()
	return record, core.ValidateCorpusRecord(record)
}

// loadDocument decodes one document and writes its valid records in batches.
// The checkpoint is advanced after every stored batch.
func loadDocument[R, T any](
	ctx context.Context,
	l *Loader,
	source string,
	r io.Reader,
	tracker *ProgressTracker,
	convert func(R) (*T, error),
	put func(context.Context, ...*T) error,
) (Stats, error) {
	stats := Stats{Documents: 1}

	var offset uint64
	if l.checkpoints != nil {
		cp, err := l.checkpoints.LoadCheckpoint(ctx, source)
		if err != nil {
			return stats, err
		}
		if cp != nil {
			offset = cp.Offset
			l.logger.Debug("resuming document", "source", source, "offset", offset)
		}
	}

	var read uint64
	batch := make([]*T, 0, l.batchSize)
	flush := func() error {
		if len(batch) > 0 {
			policy := writePolicy{maxAttempts: l.maxAttempts, baseDelay: l.retryBaseDelay, logger: l.logger}
			err := policy.write(ctx, source, func() error {
				return put(ctx, batch...)
			})
			if err != nil {
				return fmt.Errorf("failed to store batch after %d attempts: %w", l.maxAttempts, err)
			}
			stats.Stored += len(batch)
			tracker.Stored(len(batch))
			batch = batch[:0]
		}
		if l.checkpoints != nil && read > offset {
			return l.checkpoints.SaveCheckpoint(ctx, &badger.Checkpoint{Source: source, Offset: read})
		}
		return nil
	}

	err := decodeResults(r, func(rec R) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		read++
		stats.Read++
		if read <= offset {
			stats.Resumed++
			return nil
		}

		item, err := convert(rec)
		if err != nil {
			stats.Skipped++
			l.logger.Debug("skipping invalid record", "source", source, "index", read, "err", err)
			return nil
		}
		batch = append(batch, item)
		if len(batch) >= l.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, flush()
}
