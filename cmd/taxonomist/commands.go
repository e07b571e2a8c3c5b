package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/ingest"
	"github.com/poiesic/taxonomist/resolve"
	"github.com/urfave/cli/v2"
)

func resolveCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}
	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	resolver, err := engine.NewResolver()
	if err != nil {
		return fmt.Errorf("failed to create resolver: %w", err)
	}

	var outcome *core.Outcome
	if c.Bool("trace") {
		outcome, err = resolver.ResolveWithMonitor(c.Context, query, filters, newTraceMonitor(c.App.ErrWriter))
	} else {
		outcome, err = resolver.Resolve(c.Context, query, filters)
	}
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	writeOutcome(c.App.Writer, outcome)
	writeCalls(c.App.Writer, outcome.Calls)
	return nil
}

type batchResult struct {
	query   string
	outcome *core.Outcome
	err     error
}

func batchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query file is required")
	}
	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return err
	}
	workers := c.Int("workers")
	if workers <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	queries, err := readQueries(c.Args().First())
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	resolver, err := engine.NewResolver()
	if err != nil {
		return fmt.Errorf("failed to create resolver: %w", err)
	}

	results, err := resolveAll(c.Context, resolver, queries, filters, workers)
	if err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}
		fmt.Fprintf(c.App.Writer, "== %s\n", r.query)
		if r.err != nil {
			failed++
			fmt.Fprintf(c.App.Writer, "error: %v\n", r.err)
			continue
		}
		writeOutcome(c.App.Writer, r.outcome)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}

// resolveAll resolves every query on a worker pool. Results keep the order
// of queries.
func resolveAll(ctx context.Context, resolver *resolve.Resolver, queries []string, filters core.Filters, workers int) ([]batchResult, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]batchResult, len(queries))
	var wg sync.WaitGroup
	for i, query := range queries {
		results[i].query = query
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i].outcome, results[i].err = resolver.Resolve(ctx, query, filters)
		})
		if err != nil {
			wg.Done()
			results[i].err = err
		}
	}
	wg.Wait()
	return results, nil
}

// readQueries returns the non-blank lines of a file.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open query file: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			queries = append(queries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	return queries, nil
}

func ingestCommand(c *cli.Context) error {
	collection := core.Collection(strings.ToLower(c.String("collection")))
	if collection != core.CollectionTaxonomy && collection != core.CollectionCorpus {
		return fmt.Errorf("collection must be one of taxonomy, corpus")
	}
	if c.NArg() == 0 {
		return fmt.Errorf("at least one document is required")
	}
	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	loader, err := engine.NewLoader(
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithRetry(c.Int("max-retries"), ingest.DefaultRetryBaseDelay),
		ingest.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}
	defer loader.Release()

	fmt.Fprintf(c.App.ErrWriter, "Mirror: %s\n", engine.Config().Mirror.Path)
	fmt.Fprintf(c.App.ErrWriter, "Collection: %s\n", collection)
	fmt.Fprintln(c.App.ErrWriter)

	stats, err := loader.Load(c.Context, collection, c.Args().Slice()...)
	if stats != nil {
		fmt.Fprintf(c.App.Writer, "documents=%d read=%d stored=%d skipped=%d resumed=%d\n",
			stats.Documents, stats.Read, stats.Stored, stats.Skipped, stats.Resumed)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}
