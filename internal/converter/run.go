package converter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

// Run converts every eligible image under opts.Source into a squared copy
// under opts.Destination. Per-file failures are collected and returned; only
// configuration and traversal errors abort the run. Cancelling ctx stops new
// work while in-flight conversions finish.
func Run(ctx context.Context, opts Options, log *zap.Logger, updates chan<- ProgressUpdate) (Summary, []Failure, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}

	summary := Summary{}
	var failures []Failure

	absSrc, err := filepath.Abs(opts.Source)
	if err != nil {
		return summary, nil, err
	}
	info, err := os.Stat(absSrc)
	if err != nil {
		return summary, nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return summary, nil, fmt.Errorf("source %s is not a directory", absSrc)
	}

	absDst, err := filepath.Abs(opts.Destination)
	if err != nil {
		return summary, nil, err
	}
	if err := os.MkdirAll(absDst, 0o755); err != nil {
		return summary, nil, fmt.Errorf("destination directory: %w", err)
	}

	rules := NewRules(opts.ExcludeExtensions, opts.ExcludeNames)

	jobs := make(chan Job)
	results := make(chan Result)

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, jobs, results, log)
		}()
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			summary.Attempted++
			if res.Err != nil {
				summary.Failed++
				failures = append(failures, Failure{RelPath: res.RelPath, Err: res.Err})
				send(updates, ProgressUpdate{AttemptedDelta: 1, FailedDelta: 1})
				continue
			}
			summary.Converted++
			summary.BytesWritten += res.BytesWritten
			send(updates, ProgressUpdate{AttemptedDelta: 1, ConvertedDelta: 1, BytesDelta: res.BytesWritten})
		}
	}()

	skippedCount := make(chan int, 1)
	producerErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		skipped := 0

		sendJob := func(job Job) error {
			select {
			case jobs <- job:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		visit := func(fullPath, relPath string) error {
			name := filepath.Base(relPath)
			if rules.Excluded(name) {
				skipped++
				log.Debug("excluded by filter", zap.String("path", relPath))
				send(updates, ProgressUpdate{SkippedDelta: 1})
				return nil
			}
			if !imgutil.DecodableExtension(filepath.Ext(name)) {
				skipped++
				log.Debug("unsupported extension", zap.String("path", relPath))
				send(updates, ProgressUpdate{SkippedDelta: 1})
				return nil
			}

			destDir := absDst
			if opts.Mirror && opts.Recursive {
				destDir = filepath.Join(absDst, filepath.Dir(relPath))
			}
			stem := strings.TrimSuffix(name, filepath.Ext(name))

			send(updates, ProgressUpdate{EligibleDelta: 1})
			return sendJob(Job{
				Request: Request{
					SourcePath: fullPath,
					DestBase:   filepath.Join(destDir, stem),
					Size:       opts.Size,
					Format:     opts.Format,
					Background: opts.Background,
					Quality:    opts.Quality,
					AutoOrient: opts.AutoOrient,
				},
				RelPath: relPath,
			})
		}

		err := walkSource(ctx, absSrc, absDst, opts.Recursive, visit)
		skippedCount <- skipped
		producerErr <- err
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	summary.Skipped = <-skippedCount

	if err := <-producerErr; err != nil && !errors.Is(err, context.Canceled) {
		return summary, failures, err
	}
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return summary, failures, err
	}

	return summary, failures, nil
}

func worker(ctx context.Context, jobs <-chan Job, results chan<- Result, log *zap.Logger) {
	for job := range jobs {
		if ctx.Err() != nil {
			return
		}

		res := transformFile(job, log)
		if res.Err != nil {
			log.Warn("conversion failed",
				zap.String("path", job.RelPath),
				zap.Error(res.Err),
			)
		} else {
			log.Debug("converted",
				zap.String("path", job.RelPath),
				zap.String("output", res.OutputPath),
				zap.Int64("bytes", res.BytesWritten),
			)
		}
		results <- res
	}
}

// walkSource yields every regular file under absSrc as (fullPath, relPath).
// In recursive mode the destination subtree is pruned when it lies strictly
// inside the source, so fresh outputs are never re-read as inputs.
func walkSource(ctx context.Context, absSrc, absDst string, recursive bool, visit func(fullPath, relPath string) error) error {
	if !recursive {
		entries, err := os.ReadDir(absSrc)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !entry.Type().IsRegular() {
				continue
			}
			if err := visit(filepath.Join(absSrc, entry.Name()), entry.Name()); err != nil {
				return err
			}
		}
		return nil
	}

	srcClean := filepath.Clean(absSrc)
	dstClean := filepath.Clean(absDst)
	pruneDst := absDst != "" && dstClean != srcClean && isWithin(dstClean, srcClean)

	fsys := os.DirFS(absSrc)
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if pruneDst && isWithin(filepath.Join(absSrc, path), dstClean) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return visit(filepath.Join(absSrc, path), path)
	})
}

// isWithin reports whether path sits at or below root.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return !strings.HasPrefix(rel, "..")
}

func send(updates chan<- ProgressUpdate, update ProgressUpdate) {
	if updates != nil {
		updates <- update
	}
}
