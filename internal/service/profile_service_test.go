// internal/service/profile_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBProfile(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for profile service testing: " + err.Error())
	}
	err = db.AutoMigrate(&model.User{}, &model.Workout{}, &model.Badge{}, &model.UserBadge{})
	if err != nil {
		panic("failed to migrate database for profile service testing: " + err.Error())
	}
	return db
}

func newTestProfileService(db *gorm.DB) ProfileService {
	return NewProfileService(
		db,
		repository.NewGormUserRepository(),
		repository.NewGormBadgeRepository(),
		testConfigWorkout(),
	)
}

func Test_profileService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProfile(t)
	svc := newTestProfileService(db)

	user := &model.User{
		UserID:       uuid.New(),
		Username:     "taro",
		Email:        "taro@example.com",
		PasswordHash: "hash",
		XP:           130,
		Level:        2,
		StreakCount:  1,
	}
	require.NoError(t, db.Create(user).Error)

	badge := &model.Badge{
		BadgeID:       uuid.New(),
		Name:          "First Workout",
		Description:   "初めてのワークアウトを記録した",
		CriteriaKind:  model.CriteriaTotalWorkouts,
		CriteriaValue: 1,
	}
	require.NoError(t, db.Create(badge).Error)
	require.NoError(t, db.Create(&model.UserBadge{
		UserBadgeID: uuid.New(),
		UserID:      user.UserID,
		BadgeID:     badge.BadgeID,
		EarnedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}).Error)

	dashboard, err := svc.GetDashboard(ctx, user.UserID)
	require.NoError(t, err)

	assert.Equal(t, "taro", dashboard.Username)
	assert.Equal(t, 130, dashboard.XP)
	assert.Equal(t, 2, dashboard.Level)
	require.Len(t, dashboard.Badges, 1)
	assert.Equal(t, "First Workout", dashboard.Badges[0].Name)
}

func Test_profileService_GetDashboard_UserNotFound(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProfile(t)
	svc := newTestProfileService(db)

	_, err := svc.GetDashboard(ctx, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_profileService_GetGamificationStatus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProfile(t)
	svc := newTestProfileService(db)

	// XP 130: レベル2 (レベル1で100消化、レベル2内に30)。
	// レベル2を抜けるには400必要なので、残りは370。
	user := &model.User{
		UserID:       uuid.New(),
		Username:     "taro",
		Email:        "taro@example.com",
		PasswordHash: "hash",
		XP:           130,
		Level:        2,
		StreakCount:  3,
	}
	require.NoError(t, db.Create(user).Error)

	status, err := svc.GetGamificationStatus(ctx, user.UserID)
	require.NoError(t, err)

	assert.Equal(t, 130, status.XP)
	assert.Equal(t, 2, status.Level)
	assert.Equal(t, 3, status.StreakCount)
	assert.Equal(t, 400, status.NextLevelXP)
	assert.Equal(t, 370, status.XPToNextLevel)
}

func Test_profileService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProfile(t)
	svc := newTestProfileService(db)

	users := []*model.User{
		{UserID: uuid.New(), Username: "low", Email: "low@example.com", PasswordHash: "h", XP: 50},
		{UserID: uuid.New(), Username: "high", Email: "high@example.com", PasswordHash: "h", XP: 600},
		{UserID: uuid.New(), Username: "mid", Email: "mid@example.com", PasswordHash: "h", XP: 130},
	}
	for _, u := range users {
		require.NoError(t, db.Create(u).Error)
	}

	entries, err := svc.GetLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// XP降順
	assert.Equal(t, "high", entries[0].Username)
	assert.Equal(t, "mid", entries[1].Username)
	assert.Equal(t, "low", entries[2].Username)
	// レベルはXPから導出 (600 → レベル3)
	assert.Equal(t, 3, entries[0].Level)
}

func Test_profileService_GetLeaderboard_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProfile(t)

	cfg := testConfigWorkout()
	cfg.App.LeaderboardLimit = 2
	svc := NewProfileService(db, repository.NewGormUserRepository(), repository.NewGormBadgeRepository(), cfg)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&model.User{
			UserID:       uuid.New(),
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: "h",
			XP:           i * 100,
		}).Error)
	}

	entries, err := svc.GetLeaderboard(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
