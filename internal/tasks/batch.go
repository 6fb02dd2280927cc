package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/desertthunder/songrec/internal/formatter"
	"github.com/desertthunder/songrec/internal/shared"
)

// BatchOpts contains configuration for batch recommendation exports.
type BatchOpts struct {
	Format     formatter.Format // Export format: json, csv, markdown, txt
	OutputDir  string           // Output directory (default: recommendations_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
	RateLimit  float64          // Requests per second (default: 5)
}

// SeedResult is the outcome for one seed song in a batch.
type SeedResult struct {
	Seed  string `json:"seed"`
	Songs int    `json:"songs"`
	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

// Success reports whether the seed was exported.
func (r SeedResult) Success() bool { return r.Error == "" }

// BatchResult summarizes a batch run. Results are in seed order.
type BatchResult struct {
	Total           int          `json:"total"`
	Succeeded       int          `json:"succeeded"`
	Failed          int          `json:"failed"`
	OutputDirectory string       `json:"output_directory"`
	ManifestPath    string       `json:"-"`
	Results         []SeedResult `json:"results"`
}

// Batch fetches recommendations for every seed and writes one export file per seed.
//
// Requests are rate limited and run on a bounded number of workers. A failing seed is
// recorded in its [SeedResult] and does not stop the others. Cancelling ctx stops dispatch;
// undispatched seeds are reported as failed.
func (e *Engine) Batch(ctx context.Context, progress chan<- ProgressUpdate, seeds []string, opts BatchOpts) (*BatchResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: client not initialized", shared.ErrServiceUnavailable)
	}

	seeds = cleanSeeds(seeds)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seed songs", shared.ErrMissingArgument)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("recommendations_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &BatchResult{
		Total:           len(seeds),
		OutputDirectory: opts.OutputDir,
		Results:         make([]SeedResult, len(seeds)),
	}
	dispatched := make([]bool, len(seeds))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	var (
		mu        sync.Mutex
		completed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.NumWorkers)

	var dispatchErr error
	for i, seed := range seeds {
		if err := limiter.Wait(gctx); err != nil {
			dispatchErr = err
			break
		}
		dispatched[i] = true

		g.Go(func() error {
			res := e.exportSeed(gctx, i, seed, opts)

			mu.Lock()
			result.Results[i] = res
			completed++
			step := completed
			mu.Unlock()

			if res.Success() {
				e.sendProgress(progress, exportCompletedUpdate(step, len(seeds), seed, res.File))
			} else {
				e.sendProgress(progress, exportFailedUpdate(step, len(seeds), seed, fmt.Errorf("%s", res.Error)))
			}
			return nil
		})
	}
	g.Wait()

	for i, seed := range seeds {
		if !dispatched[i] {
			result.Results[i] = SeedResult{Seed: seed, Error: fmt.Sprintf("not started: %v", dispatchErr)}
		}
		if result.Results[i].Success() {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	manifest, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("batch completed but failed to encode manifest: %w", err)
	}
	path, err := formatter.WriteFile(opts.OutputDir, "batch_manifest.json", manifest)
	if err != nil {
		return result, fmt.Errorf("batch completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = path

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// exportSeed runs one recommendation and writes its export file.
func (e *Engine) exportSeed(ctx context.Context, index int, seed string, opts BatchOpts) SeedResult {
	res := SeedResult{Seed: seed}

	rec, err := e.Recommend(ctx, nil, seed)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Songs = len(rec.Songs)

	data, err := formatter.Export(formatter.Recommendations{Seed: seed, Songs: rec.Songs}, opts.Format)
	if err != nil {
		res.Error = fmt.Sprintf("export failed: %v", err)
		return res
	}

	name := fmt.Sprintf("%03d-%s", index+1, formatter.RecommendationsFilename(seed, opts.Format))
	path, err := formatter.WriteFile(opts.OutputDir, name, data)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.File = path
	return res
}

// cleanSeeds trims seeds and drops blanks and duplicates, keeping the first occurrence.
func cleanSeeds(seeds []string) []string {
	seen := make(map[string]bool, len(seeds))
	out := make([]string, 0, len(seeds))
	for _, s := range seeds {
		s = strings.TrimSpace(s)
		key := shared.NormalizeQuery(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
