package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

// gatedRepository blocks every Save until the gate is opened
type gatedRepository struct {
	mu      sync.Mutex
	gate    chan struct{}
	entered chan struct{}
	saved   []int
}

func newGatedRepository() *gatedRepository {
	return &gatedRepository{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 16),
	}
}

func (r *gatedRepository) Load(context.Context) (*models.UserProgress, error) {
	return models.NewUserProgress(), nil
}

func (r *gatedRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	r.entered <- struct{}{}
	<-r.gate
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, progress.TotalScore)
	return nil
}

func (r *gatedRepository) Saved() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.saved...)
}

func progressWithScore(score int) *models.UserProgress {
	p := models.NewUserProgress()
	p.TotalScore = score
	return p
}

func TestProgressWriter_CoalescesPendingWrites(t *testing.T) {
	repo := newGatedRepository()
	writer := newProgressWriter(repo, NewServiceLogger(testLogger(), LogConfig{Service: "test"}), time.Second)
	defer writer.Close()

	writer.Enqueue(progressWithScore(1))
	<-repo.entered // first write is in flight

	writer.Enqueue(progressWithScore(2))
	writer.Enqueue(progressWithScore(3))
	writer.Enqueue(progressWithScore(4))
	close(repo.gate)

	require.NoError(t, writer.Flush(context.Background()))
	assert.Equal(t, []int{1, 4}, repo.Saved())
}

func TestProgressWriter_CloseDrainsPending(t *testing.T) {
	repo := newGatedRepository()
	close(repo.gate)
	writer := newProgressWriter(repo, NewServiceLogger(testLogger(), LogConfig{Service: "test"}), time.Second)

	writer.Enqueue(progressWithScore(7))
	require.NoError(t, writer.Close())
	assert.Equal(t, []int{7}, repo.Saved())

	// Writes after shutdown are dropped.
	writer.Enqueue(progressWithScore(8))
	assert.Equal(t, []int{7}, repo.Saved())
	assert.NoError(t, writer.Close())
}

func TestProgressWriter_FlushHonoursContext(t *testing.T) {
	repo := newGatedRepository()
	writer := newProgressWriter(repo, NewServiceLogger(testLogger(), LogConfig{Service: "test"}), time.Second)

	writer.Enqueue(progressWithScore(1))
	<-repo.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, writer.Flush(ctx), context.DeadlineExceeded)

	close(repo.gate)
	require.NoError(t, writer.Close())
}
