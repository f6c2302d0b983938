package barrel

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"autobarrel/pkg/discovery"
)

// readJob is one file to read; index is its position in the input.
type readJob struct {
	index int
	path  string
}

type readResult struct {
	index int
	text  string
	err   error
}

// ReadSourcesConcurrently reads every file with a worker pool. Texts
// come back in the order of files, whatever order the reads finish in.
func ReadSourcesConcurrently(ctx context.Context, files []discovery.CandidateFile, reader SourceReader, maxWorkers int, logger *zap.Logger) ([]string, error) {
	jobs := make(chan readJob, len(files))
	results := make(chan readResult, len(files))
	var wg sync.WaitGroup

	// Default to one worker per CPU, never more than there are files
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}
	if maxWorkers > len(files) {
		maxWorkers = len(files)
	}

	// Start workers
	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(ctx, w, jobs, results, reader, &wg, logger.With(zap.Int("workerID", w)))
	}

	// Send jobs
	for i, file := range files {
		jobs <- readJob{index: i, path: file.AbsolutePath}
	}
	close(jobs)

	// Close results once every worker is done
	go func() {
		wg.Wait()
		close(results)
	}()

	// Place each text at its file's index so read order does not matter
	texts := make([]string, len(files))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		texts[res.index] = res.text
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Debug("All files read", zap.Int("files", len(texts)))
	return texts, nil
}

// worker reads files from the jobs channel until it is closed.
func worker(ctx context.Context, id int, jobs <-chan readJob, results chan<- readResult, reader SourceReader, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for job := range jobs {
		// Drain remaining jobs without reading once the context is done
		if err := ctx.Err(); err != nil {
			results <- readResult{index: job.index, err: err}
			continue
		}

		text, err := reader.ReadText(job.path)
		if err != nil {
			logger.Error("Worker failed to read file",
				zap.String("filePath", job.path),
				zap.Error(err))
		}
		results <- readResult{index: job.index, text: text, err: err}
	}

	logger.Debug("Worker finished", zap.Int("workerID", id))
}
