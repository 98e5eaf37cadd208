package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"beatmark/internal/config"
	"beatmark/internal/export"
	"beatmark/internal/fileutil"
	"beatmark/internal/logging"
	"beatmark/internal/services"
)

// Exporter runs one analysis. *export.Pipeline is the production
// implementation.
type Exporter interface {
	Run(ctx context.Context, req export.Request) (*export.Result, error)
}

// Failure pairs a media file with the error that stopped its analysis.
type Failure struct {
	Path string
	Err  error
}

// Summary reports the outcome of a batch run. Per-file failures do not
// abort the batch; they are collected here.
type Summary struct {
	Results  []export.Result
	Failures []Failure
}

// Runner walks a directory and analyzes every recognized media file with
// a bounded worker pool. A lock file in the state directory prevents two
// batch runs from competing for the same machine.
type Runner struct {
	cfg      *config.Config
	exporter Exporter
	logger   *slog.Logger
}

// New constructs a Runner. A nil logger disables logging.
func New(cfg *config.Config, exporter Exporter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		exporter: exporter,
		logger:   logging.WithComponent(logger, "batch"),
	}
}

// Run analyzes every media file under dir. Results and failures are
// ordered by path so repeated runs are comparable.
func (r *Runner) Run(ctx context.Context, dir string) (*Summary, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "batch", "run", dir, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "batch", "run", dir+" is not a directory", nil)
	}

	release, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	paths, err := r.scan(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		r.logger.Warn("no media files found", "dir", dir)
		return &Summary{}, nil
	}
	r.logger.Info("batch started", "dir", dir, "files", len(paths), "jobs", r.jobs())

	summary := r.process(ctx, paths)
	r.logger.Info("batch finished",
		"succeeded", len(summary.Results),
		"failed", len(summary.Failures))
	return summary, nil
}

func (r *Runner) jobs() int {
	if r.cfg.Batch.Jobs > 0 {
		return r.cfg.Batch.Jobs
	}
	return 1
}

func (r *Runner) acquireLock() (func(), error) {
	if err := fileutil.EnsureDir(r.cfg.Paths.StateDir); err != nil {
		return nil, err
	}
	lockPath := filepath.Join(r.cfg.Paths.StateDir, "batch.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another batch run is already in progress (lock %s)", lockPath)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release batch lock", "error", err)
		}
	}, nil
}

func (r *Runner) scan(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if r.cfg.RecognizesExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *Runner) process(ctx context.Context, paths []string) *Summary {
	type outcome struct {
		index  int
		result *export.Result
		err    error
	}

	work := make(chan int)
	outcomes := make([]outcome, len(paths))

	var wg sync.WaitGroup
	for worker := 0; worker < r.jobs(); worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range work {
				path := paths[index]
				result, err := r.exporter.Run(ctx, export.Request{AudioPath: path})
				if err != nil {
					r.logger.Error("analysis failed", "path", path, "error", err)
				}
				outcomes[index] = outcome{index: index, result: result, err: err}
			}
		}()
	}

	for index := range paths {
		if ctx.Err() != nil {
			break
		}
		work <- index
	}
	close(work)
	wg.Wait()

	summary := &Summary{}
	for index, out := range outcomes {
		switch {
		case out.err != nil:
			summary.Failures = append(summary.Failures, Failure{Path: paths[index], Err: out.err})
		case out.result != nil:
			summary.Results = append(summary.Results, *out.result)
		}
	}
	return summary
}
