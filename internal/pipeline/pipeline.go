package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/AnyUserName/pngfixture/internal/encoder"
	"github.com/AnyUserName/pngfixture/internal/fixture"
	"github.com/AnyUserName/pngfixture/internal/manifest"
)

// Config holds all parameters for a batch run.
type Config struct {
	// BaseDir is the directory manifest keys are made relative to.
	BaseDir  string
	Workers  int
	Verbose  bool
	Registry *encoder.Registry
}

// Pipeline generates a batch of fixtures in parallel.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Registry == nil {
		cfg.Registry = encoder.NewRegistry()
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	return &Pipeline{cfg: cfg}
}

type result struct {
	res fixture.Result
	err error
}

// Run generates every request and returns a manifest of the results.
// All requests are attempted; if any fail, the joined errors are returned
// and no manifest is produced.
func (p *Pipeline) Run(reqs []fixture.Request) (*manifest.Manifest, error) {
	p.logf("%s, %d fixtures, %d workers", p.cfg.Registry, len(reqs), p.cfg.Workers)

	results := make([]result, len(reqs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, req := range reqs {
		wg.Add(1)
		go func(idx int, r fixture.Request) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			res, err := fixture.Generate(p.cfg.Registry, r)
			if err != nil {
				results[idx].err = fmt.Errorf("%s: %w", r.Out, err)
				return
			}
			results[idx].res = res
			p.logf("wrote %s (%dx%d #%s, %d bytes)", res.Path, res.Width, res.Height, res.Color, res.Size)
		}(i, req)
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%d of %d fixtures failed: %w", len(errs), len(reqs), errors.Join(errs...))
	}

	m := manifest.New()
	for _, r := range results {
		key, err := p.manifestKey(r.res.Path)
		if err != nil {
			return nil, err
		}
		m.Fixtures[key] = manifest.Fixture{
			Format: r.res.Format,
			Width:  r.res.Width,
			Height: r.res.Height,
			Color:  r.res.Color,
			Size:   r.res.Size,
			Hash:   r.res.Hash,
		}
	}
	m.ComputeStats()
	return m, nil
}

// manifestKey returns path relative to BaseDir with forward slashes.
func (p *Pipeline) manifestKey(path string) (string, error) {
	absBase, err := filepath.Abs(p.cfg.BaseDir)
	if err != nil {
		return "", fmt.Errorf("resolve base dir: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[pngfixture] "+format+"\n", args...)
	}
}
