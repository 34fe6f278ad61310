package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/quizzone/internal/catalog"
	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/repositories"
	"github.com/SAP-F-2025/quizzone/internal/repositories/memory"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

// ===== CLOCK =====

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick delivers one tick to every live ticker and waits until each is received.
func (c *fakeClock) Tick() {
	c.mu.Lock()
	now := c.now
	tickers := append([]*fakeTicker(nil), c.tickers...)
	c.mu.Unlock()

	for _, t := range tickers {
		select {
		case t.c <- now:
		case <-t.stopped:
		}
	}
}

func (c *fakeClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, t := range c.tickers {
		select {
		case <-t.stopped:
		default:
			count++
		}
	}
	return count
}

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.c
}

func (t *fakeTicker) Stop() {
	t.once.Do(func() { close(t.stopped) })
}

// ===== REPOSITORY MOCK =====

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).(*models.UserProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// ===== FIXTURES =====

var testStart = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newQuestion(id string, points int, correct int) models.Question {
	return models.Question{
		ID:                 id,
		Text:               "Question " + id,
		Type:               models.MultipleChoice,
		Options:            []string{"A", "B", "C"},
		CorrectAnswerIndex: correct,
		Explanation:        "Because " + id,
		Points:             points,
	}
}

func newQuiz(id string, category models.QuizCategory, questions ...models.Question) models.Quiz {
	return models.Quiz{
		ID:                   id,
		Title:                "Quiz " + id,
		Category:             category,
		Difficulty:           models.DifficultyEasy,
		Questions:            questions,
		EstimatedTimeMinutes: 1,
		Description:          "Test quiz " + id,
	}
}

func testCatalog(t *testing.T, quizzes ...models.Quiz) catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(quizzes, nil, time.UTC, validator.New())
	require.NoError(t, err)
	return cat
}

func defaultTestQuizzes() []models.Quiz {
	return []models.Quiz{
		newQuiz("finance-1", models.CategoryFinance, newQuestion("f1", 10, 0), newQuestion("f2", 20, 1)),
		newQuiz("finance-2", models.CategoryFinance, newQuestion("g1", 10, 0)),
		newQuiz("movies-1", models.CategoryEntertainment, newQuestion("m1", 10, 2)),
	}
}

func memoryProgressRepository() repositories.ProgressRepository {
	return repositories.NewProgressRepository(memory.NewKeyValueMemory(), "UserProgress")
}

type progressFixture struct {
	service   ProgressService
	repo      repositories.ProgressRepository
	clock     *fakeClock
	publisher *events.MockEventPublisher
	catalog   catalog.Catalog
}

func newProgressFixture(t *testing.T, repo repositories.ProgressRepository) *progressFixture {
	t.Helper()
	if repo == nil {
		repo = memoryProgressRepository()
	}
	f := &progressFixture{
		repo:      repo,
		clock:     newFakeClock(testStart),
		publisher: events.NewMockEventPublisher(testLogger()),
		catalog:   testCatalog(t, defaultTestQuizzes()...),
	}
	f.service = NewProgressService(repo, f.catalog, f.publisher, testLogger(), validator.New(), ProgressServiceConfig{
		Location: time.UTC,
		Clock:    f.clock,
	})
	t.Cleanup(func() { _ = f.service.Close() })
	return f
}

func (f *progressFixture) quiz(t *testing.T, id string) *models.Quiz {
	t.Helper()
	quiz, ok := f.catalog.QuizByID(id)
	require.True(t, ok, "quiz %s not in catalog", id)
	return quiz
}

type sessionFixture struct {
	*progressFixture
	session SessionService
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	pf := newProgressFixture(t, nil)
	session := NewSessionService(pf.catalog, pf.service, pf.publisher, testLogger(), validator.New(), SessionServiceConfig{
		Clock: pf.clock,
	})
	t.Cleanup(func() { _ = session.Close() })
	return &sessionFixture{progressFixture: pf, session: session}
}
