package events

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestNewProgressEvent(t *testing.T) {
	at := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	event := NewProgressEvent(EventQuizCompleted, QuizCompletedEvent{QuizID: "q1", Score: 30}, at)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventQuizCompleted, event.Type)
	assert.Equal(t, at, event.Timestamp)
	assert.Equal(t, "quizzone", event.Source)

	other := NewProgressEvent(EventQuizCompleted, nil, at)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestNewMessage(t *testing.T) {
	event := NewProgressEvent(EventStreakUpdated, StreakUpdatedEvent{PreviousStreak: 1, Streak: 2, DaysSinceLast: 1}, time.Now())

	msg, err := newMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "streak.updated", msg.Metadata.Get("event_type"))
	assert.Contains(t, string(msg.Payload), `"streak":2`)
}

func TestMockEventPublisher(t *testing.T) {
	ctx := context.Background()
	mock := NewMockEventPublisher(testLogger())

	require.NoError(t, mock.PublishProgressEvent(ctx, NewProgressEvent(EventQuizStarted, nil, time.Now())))
	require.NoError(t, mock.PublishProgressEvent(ctx, NewProgressEvent(EventQuizCompleted, nil, time.Now())))

	assert.Len(t, mock.GetPublishedEvents(), 2)
	assert.Len(t, mock.EventsOfType(EventQuizCompleted), 1)

	mock.Err = errors.New("broker down")
	assert.Error(t, mock.PublishProgressEvent(ctx, NewProgressEvent(EventQuizStarted, nil, time.Now())))
	assert.Len(t, mock.GetPublishedEvents(), 2)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}

func TestGoChannelEventPublisher_Subscribe(t *testing.T) {
	publisher := NewGoChannelEventPublisher(PublisherConfig{
		TopicName: "progress",
		Logger:    testLogger(),
	})
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	sent := NewProgressEvent(EventAchievementUnlocked, AchievementUnlockedEvent{AchievementID: "first-steps"}, time.Now())
	require.NoError(t, publisher.PublishProgressEvent(ctx, sent))

	select {
	case event := <-received:
		require.NotNil(t, event)
		assert.Equal(t, sent.ID, event.ID)
		assert.Equal(t, EventAchievementUnlocked, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}
