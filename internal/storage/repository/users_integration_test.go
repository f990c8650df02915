package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmycode/docmycode/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: "hashedpassword",
		Role:         "user",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	user, err := storage.GetUserByUsername(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, uid, user.UUID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, 0, user.RequestsToday)
	assert.Nil(t, user.LastRequestDate)
}

func TestStorage_GetUserByUsername_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetUserByUsername(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStorage_ConsumeDailyQuota(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	ctx := context.Background()
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	limit := 10

	t.Run("первый запрос дня начинает счет с единицы", func(t *testing.T) {
		factory.CreateUser(t, "fresh", "fresh@example.com", "hashedpassword", "user")

		used, err := storage.ConsumeDailyQuota(ctx, "fresh", limit, today)
		require.NoError(t, err)
		assert.Equal(t, 1, used)
		verify.VerifyQuotaState(t, "fresh", 1)
	})

	t.Run("счетчик вчерашнего дня сбрасывается", func(t *testing.T) {
		factory.CreateUserWithQuota(t, "stale", "stale@example.com", 10, yesterday)

		used, err := storage.ConsumeDailyQuota(ctx, "stale", limit, today)
		require.NoError(t, err)
		assert.Equal(t, 1, used)
		verify.VerifyQuotaState(t, "stale", 1)
	})

	t.Run("лимит разрешает ровно десять запросов", func(t *testing.T) {
		factory.CreateUser(t, "heavy", "heavy@example.com", "hashedpassword", "user")

		for i := 1; i <= limit; i++ {
			used, err := storage.ConsumeDailyQuota(ctx, "heavy", limit, today)
			require.NoError(t, err)
			assert.Equal(t, i, used)
		}

		_, err := storage.ConsumeDailyQuota(ctx, "heavy", limit, today)
		assert.ErrorIs(t, err, models.ErrDailyLimitReached)
		verify.VerifyQuotaState(t, "heavy", 10)
	})

	t.Run("конкурентные запросы не превышают лимит", func(t *testing.T) {
		factory.CreateUserWithQuota(t, "racer", "racer@example.com", 9, today)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = storage.ConsumeDailyQuota(ctx, "racer", limit, today)
			}(i)
		}
		wg.Wait()

		allowed := 0
		denied := 0
		for _, err := range results {
			switch {
			case err == nil:
				allowed++
			case errors.Is(err, models.ErrDailyLimitReached):
				denied++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, allowed)
		assert.Equal(t, 1, denied)
		verify.VerifyQuotaState(t, "racer", 10)
	})

	t.Run("несуществующий пользователь получает отказ", func(t *testing.T) {
		_, err := storage.ConsumeDailyQuota(ctx, "ghost", limit, today)
		assert.ErrorIs(t, err, models.ErrDailyLimitReached)
	})
}
