// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package taxonomist

import (
	"log/slog"

	"github.com/poiesic/taxonomist/index"
	"github.com/poiesic/taxonomist/index/badger"
	"github.com/poiesic/taxonomist/index/openfda"
	"github.com/poiesic/taxonomist/ingest"
	"github.com/poiesic/taxonomist/resolve"
)

// Engine owns the indexes a resolver searches.
type Engine struct {
	config      *Config
	backend     *badger.Backend
	taxonomy    index.TaxonomyIndex
	corpus      index.CorpusIndex
	mirrorTax   *badger.TaxonomyIndex
	mirrorCorp  *badger.CorpusIndex
	checkpoints *badger.CheckpointStore
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	inMemory bool
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInMemoryMirror backs the engine with an empty in-memory mirror.
func WithInMemoryMirror() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the indexes named by cfg. A mirror path selects the local
// mirror; otherwise the openFDA endpoints are used.
func NewEngine(cfg *Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	e := &Engine{config: cfg, logger: options.logger}

	if cfg.Mirror.Path == "" && !options.inMemory {
		client := openfda.NewClient(
			openfda.WithBaseURL(cfg.OpenFDA.BaseURL),
			openfda.WithAPIKey(cfg.OpenFDA.APIKey),
			openfda.WithRateLimit(cfg.OpenFDA.RateLimit),
			openfda.WithTimeout(cfg.OpenFDA.GetTimeout()),
			openfda.WithLimit(cfg.OpenFDA.Limit),
			openfda.WithLogger(options.logger),
		)
		e.taxonomy = client.Taxonomy()
		e.corpus = client.Corpus()
		return e, nil
	}

	backend, err := badger.OpenBackend(cfg.Mirror.Path, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}
	e.backend = backend
	e.mirrorTax = badger.NewTaxonomyIndex(backend, cfg.Mirror.PageSize)
	e.mirrorCorp = badger.NewCorpusIndex(backend, cfg.Mirror.PageSize)
	e.checkpoints = badger.NewCheckpointStore(backend)
	e.taxonomy = e.mirrorTax
	e.corpus = e.mirrorCorp
	return e, nil
}

// Close releases the mirror, if one is open.
func (e *Engine) Close() error {
	if e.backend == nil {
		return nil
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing mirror", "err", err)
		return err
	}
	return nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// UsesMirror reports whether the engine searches the local mirror.
func (e *Engine) UsesMirror() bool {
	return e.backend != nil
}

// TaxonomyIndex returns the index searched for taxonomy entries.
func (e *Engine) TaxonomyIndex() index.TaxonomyIndex {
	return e.taxonomy
}

// CorpusIndex returns the index searched for corpus records.
func (e *Engine) CorpusIndex() index.CorpusIndex {
	return e.corpus
}

// NewResolver creates a resolver configured from the engine configuration.
// Extra options are applied after the configured ones.
func (e *Engine) NewResolver(opts ...resolve.Option) (*resolve.Resolver, error) {
	all := append(e.config.ResolverOptions(), resolve.WithLogger(e.logger))
	return resolve.NewResolver(e.taxonomy, e.corpus, append(all, opts...)...)
}

// NewLoader creates a loader writing into the mirror. Loads resume from
// checkpoints kept in the mirror.
func (e *Engine) NewLoader(opts ...ingest.Option) (*ingest.Loader, error) {
	if e.backend == nil {
		return nil, ErrMirrorRequired
	}
	all := []ingest.Option{ingest.WithCheckpoints(e.checkpoints), ingest.WithLogger(e.logger)}
	return ingest.NewLoader(e.mirrorTax, e.mirrorCorp, append(all, opts...)...)
}
