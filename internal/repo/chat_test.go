package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
	"github.com/TripTune-Project/TripTune-Backend-sub001/testutil"
)

// Chat tests run against a real document store and skip when
// TEST_MONGODB_URL is not set. Each test gets a throwaway database, so no
// cross-test cleanup is needed.

func TestChatRepo_Insert(t *testing.T) {
	r := repo.NewChatRepo(testutil.NewMongoDatabase(t))
	ctx := context.Background()

	scheduleID := uuid.New()
	memberID := uuid.New()

	got, err := r.Insert(ctx, domain.ChatMessage{
		ScheduleID: scheduleID,
		MemberID:   memberID,
		Nickname:   "wanderer",
		Text:       "점심 어디서 먹을까요?",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID, "ID should be store-generated")
	assert.Equal(t, scheduleID, got.ScheduleID)
	assert.Equal(t, memberID, got.MemberID)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be stamped on insert")
}

func TestChatRepo_ListBySchedule(t *testing.T) {
	r := repo.NewChatRepo(testutil.NewMongoDatabase(t))
	ctx := context.Background()

	scheduleID := uuid.New()
	memberID := uuid.New()

	for i := 1; i <= 3; i++ {
		_, err := r.Insert(ctx, domain.ChatMessage{
			ScheduleID: scheduleID,
			MemberID:   memberID,
			Nickname:   "wanderer",
			Text:       fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}
	// A message on another schedule must not leak in.
	_, err := r.Insert(ctx, domain.ChatMessage{
		ScheduleID: uuid.New(), MemberID: memberID, Nickname: "wanderer", Text: "elsewhere",
	})
	require.NoError(t, err)

	msgs, total, err := r.ListBySchedule(ctx, scheduleID, domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, msgs, 2)
	assert.Equal(t, "message 3", msgs[0].Text, "newest first")
	assert.Equal(t, "message 2", msgs[1].Text)

	second, _, err := r.ListBySchedule(ctx, scheduleID, domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "message 1", second[0].Text)
}

func TestChatRepo_CountBySchedule(t *testing.T) {
	r := repo.NewChatRepo(testutil.NewMongoDatabase(t))
	ctx := context.Background()

	scheduleID := uuid.New()

	n, err := r.CountBySchedule(ctx, scheduleID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = r.Insert(ctx, domain.ChatMessage{
		ScheduleID: scheduleID, MemberID: uuid.New(), Nickname: "wanderer", Text: "hello",
	})
	require.NoError(t, err)

	n, err = r.CountBySchedule(ctx, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestChatRepo_DeleteBySchedule(t *testing.T) {
	r := repo.NewChatRepo(testutil.NewMongoDatabase(t))
	ctx := context.Background()

	scheduleID := uuid.New()
	otherID := uuid.New()

	for _, id := range []uuid.UUID{scheduleID, scheduleID, otherID} {
		_, err := r.Insert(ctx, domain.ChatMessage{
			ScheduleID: id, MemberID: uuid.New(), Nickname: "wanderer", Text: "hello",
		})
		require.NoError(t, err)
	}

	require.NoError(t, r.DeleteBySchedule(ctx, scheduleID))

	n, err := r.CountBySchedule(ctx, scheduleID)
	require.NoError(t, err)
	assert.Zero(t, n, "schedule history fully removed")

	n, err = r.CountBySchedule(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "other schedules untouched")

	// Deleting an already-empty history is not an error.
	assert.NoError(t, r.DeleteBySchedule(ctx, scheduleID))
}
