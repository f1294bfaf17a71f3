// Package bench times tree generation, JSON encoding and the two search
// strategies over synthetic trees and reports the results.
package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/go-treesearch"
	"github.com/njchilds90/go-treesearch/internal/config"
	"github.com/njchilds90/go-treesearch/internal/generate"
	"github.com/njchilds90/go-treesearch/internal/report"
	"github.com/njchilds90/go-treesearch/internal/usage"
)

// missingTarget never occurs in a generated tree, so both searches walk
// every node.
var missingTarget = treesearch.String("~missing~")

// Run is the outcome of one benchmark iteration.
type Run struct {
	Name     string
	Measures report.Measures
	Usage    []usage.Usage
	Tree     treesearch.TreeStats
	// FoundIterative and FoundRecursive must agree; both are false for
	// the missing target.
	FoundIterative bool
	FoundRecursive bool
}

// Result collects every run of a benchmark.
type Result struct {
	ID     string
	Runs   []Run
	Report string
}

// Option configures a Harness.
type Option func(*Harness)

// WithOutput sets where progress and per-run tables are printed.
// Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(h *Harness) {
		h.out = w
	}
}

// WithProgress toggles the progress bar. Default is on.
func WithProgress(on bool) Option {
	return func(h *Harness) {
		h.progress = on
	}
}

// WithUsageSource replaces the /proc usage source.
func WithUsageSource(src usage.Source) Option {
	return func(h *Harness) {
		h.source = src
	}
}

// Harness runs benchmarks described by a config.
type Harness struct {
	cfg      *config.Config
	out      io.Writer
	progress bool
	source   usage.Source
	sampler  *usage.Sampler
}

// New validates cfg and prepares a harness.
func New(cfg *config.Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Harness{cfg: cfg, out: os.Stdout, progress: true}
	for _, opt := range opts {
		opt(h)
	}

	var samplerOpts []usage.Option
	if h.source != nil {
		samplerOpts = append(samplerOpts, usage.WithSource(h.source))
	}
	s, err := usage.NewSampler(cfg.SampleInterval, samplerOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create usage sampler")
	}
	h.sampler = s
	return h, nil
}

// Run executes every iteration, writes one worksheet per iteration and
// saves the report. A failed iteration stops the benchmark; the runs
// completed so far are still saved.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	res := &Result{ID: uuid.New().String(), Report: h.cfg.Output}
	log := logrus.WithField("run_id", res.ID)

	wb, err := report.New(h.cfg.Output, report.Params{
		TreePath:       h.cfg.TreePath,
		SampleInterval: h.cfg.SampleInterval,
		Letters:        h.cfg.Letters,
		Depth:          h.cfg.Depth,
		Children:       h.cfg.Children,
	})
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if h.progress {
		bar = progressbar.NewOptions(h.cfg.Iterations,
			progressbar.OptionSetWriter(h.out),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	log.Infof("starting %d iterations: letters=%d depth=%d children=%d",
		h.cfg.Iterations, h.cfg.Letters, h.cfg.Depth, h.cfg.Children)

	var runErr error
	for i := 0; i < h.cfg.Iterations; i++ {
		run, err := h.runOnce(ctx, i)
		if err != nil {
			runErr = errors.Wrapf(err, "iteration %d failed", i+1)
			break
		}
		if err := wb.AppendWorksheet(run.Name, run.Measures, run.Usage); err != nil {
			runErr = err
			break
		}
		res.Runs = append(res.Runs, run)
		log.WithField("nodes", run.Tree.Nodes).Debugf("%s done", run.Name)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Warnf("failed to advance progress bar: %v", err)
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(h.out)
	}

	for _, run := range res.Runs {
		if err := report.RenderTable(h.out, run.Name, run.Measures, run.Usage); err != nil {
			runErr = multierror.Append(runErr, err)
		}
	}

	if err := wb.Save(); err != nil {
		runErr = multierror.Append(runErr, err)
	} else {
		log.Infof("report written to %s", h.cfg.Output)
	}
	if runErr != nil {
		return res, runErr
	}
	return res, nil
}

// runOnce samples resource usage while one iteration is measured.
func (h *Harness) runOnce(ctx context.Context, i int) (Run, error) {
	sampleCtx, stop := context.WithCancel(ctx)
	defer stop()

	var samples []usage.Usage
	g := new(errgroup.Group)
	g.Go(func() error {
		s, err := h.sampler.Run(sampleCtx)
		samples = s
		return err
	})

	run, err := h.measure(ctx, i)
	stop()
	if werr := g.Wait(); werr != nil && err == nil {
		err = errors.Wrap(werr, "usage sampling failed")
	}
	run.Usage = samples
	return run, err
}

func (h *Harness) measure(ctx context.Context, i int) (Run, error) {
	run := Run{Name: fmt.Sprintf("Run %d", i+1), Measures: report.Measures{}}

	start := time.Now()
	tree, err := generate.Generate(h.cfg.Letters, h.cfg.Depth, h.cfg.Children, generate.WithSeed(h.cfg.Seed+int64(i)))
	if err != nil {
		return run, err
	}
	run.Measures[report.MeasureGenerate] = time.Since(start)
	if err := ctx.Err(); err != nil {
		return run, err
	}

	start = time.Now()
	data, err := treesearch.Marshal(tree)
	if err != nil {
		return run, errors.Wrap(err, "failed to serialize tree")
	}
	run.Measures[report.MeasureSerialize] = time.Since(start)

	if h.cfg.TreePath != "" {
		path := treePath(h.cfg.TreePath, i)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return run, errors.Wrapf(err, "failed to write tree to %s", path)
		}
	}
	if err := ctx.Err(); err != nil {
		return run, err
	}

	start = time.Now()
	parsed, err := treesearch.Unmarshal(data)
	if err != nil {
		return run, errors.Wrap(err, "failed to deserialize tree")
	}
	run.Measures[report.MeasureDeserialize] = time.Since(start)
	if err := ctx.Err(); err != nil {
		return run, err
	}

	start = time.Now()
	run.FoundIterative = treesearch.Search(parsed, missingTarget)
	run.Measures[report.MeasureIterateIterative] = time.Since(start)

	start = time.Now()
	run.FoundRecursive = searchDepthFirst(parsed, missingTarget)
	run.Measures[report.MeasureIterateRecursive] = time.Since(start)

	run.Tree = treesearch.Stats(parsed)
	return run, nil
}

// treePath inserts the 1-based run number before the extension:
// tree.json becomes tree-1.json.
func treePath(base string, i int) string {
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), i+1, ext)
}
