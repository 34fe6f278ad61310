package services

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/repositories"
)

// progressWriter persists snapshots on a single background goroutine.
// Only the newest pending snapshot is kept; older ones are dropped.
type progressWriter struct {
	repo    repositories.ProgressRepository
	logger  *ServiceLogger
	timeout time.Duration

	pending  chan *models.UserProgress
	flushReq chan chan error
	done     chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	lastErr error
}

func newProgressWriter(repo repositories.ProgressRepository, logger *ServiceLogger, timeout time.Duration) *progressWriter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	w := &progressWriter{
		repo:     repo,
		logger:   logger,
		timeout:  timeout,
		pending:  make(chan *models.UserProgress, 1),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Enqueue schedules a snapshot for writing without blocking the caller.
func (w *progressWriter) Enqueue(progress *models.UserProgress) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Logger().Warn("Dropping progress write after shutdown")
		return
	}

	for {
		select {
		case w.pending <- progress:
			return
		default:
		}
		// Replace the stale snapshot.
		select {
		case <-w.pending:
		default:
		}
	}
}

// Flush blocks until every enqueued snapshot is written and returns the last write error.
func (w *progressWriter) Flush(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case w.flushReq <- reply:
	case <-w.done:
		return w.lastError()
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending snapshot and stops the goroutine.
func (w *progressWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.wg.Wait()
	return w.lastError()
}

func (w *progressWriter) run() {
	defer w.wg.Done()
	for {
		select {
		case progress := <-w.pending:
			w.write(progress)
		case reply := <-w.flushReq:
			w.drain()
			reply <- w.lastError()
		case <-w.done:
			w.drain()
			return
		}
	}
}

func (w *progressWriter) drain() {
	select {
	case progress := <-w.pending:
		w.write(progress)
	default:
	}
}

func (w *progressWriter) write(progress *models.UserProgress) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			w.logger.LogRecovery(ctx, "save_progress", r, debug.Stack())
		}
	}()

	start := time.Now()
	err := w.repo.Save(ctx, progress)

	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		w.logger.Logger().Warn("Failed to persist progress",
			"error", err,
			"duration", time.Since(start))
		return
	}
	w.logger.Logger().Debug("Progress persisted",
		"completed_quizzes", len(progress.CompletedQuizIDs),
		"total_score", progress.TotalScore,
		"duration", time.Since(start))
}

func (w *progressWriter) lastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}
