// internal/service/workout_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/slabstech/flex-fit-server/internal/config"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDBWorkout(t *testing.T) *gorm.DB {
	// テストごとに独立したインメモリDBを使う
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	if err != nil {
		panic("failed to connect database for workout service testing: " + err.Error())
	}
	err = db.AutoMigrate(&model.User{}, &model.Workout{}, &model.Badge{}, &model.UserBadge{})
	if err != nil {
		panic("failed to migrate database for workout service testing: " + err.Error())
	}
	return db
}

func testConfigWorkout() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "FlexFit", LeaderboardLimit: 50},
		Gamification: config.GamificationConfig{
			BaseWorkoutXP:    50,
			XPPerMinute:      2,
			DailyCheckinXP:   20,
			LevelCoefficient: 100,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB) *model.User {
	user := &model.User{
		UserID:       uuid.New(),
		Username:     "taro",
		Email:        "taro@example.com",
		PasswordHash: "hash",
		XP:           0,
		Level:        1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTestBadges(t *testing.T, db *gorm.DB) {
	badges := []model.Badge{
		{BadgeID: uuid.New(), Name: "First Workout", CriteriaKind: model.CriteriaTotalWorkouts, CriteriaValue: 1},
		{BadgeID: uuid.New(), Name: "Week Warrior", CriteriaKind: model.CriteriaStreak, CriteriaValue: 7},
		{BadgeID: uuid.New(), Name: "Century Club", CriteriaKind: model.CriteriaTotalWorkouts, CriteriaValue: 100},
	}
	for _, b := range badges {
		require.NoError(t, db.Create(&b).Error)
	}
}

func newTestWorkoutService(db *gorm.DB, now func() time.Time) *workoutService {
	svc := NewWorkoutService(
		db,
		repository.NewGormUserRepository(),
		repository.NewGormWorkoutRepository(),
		repository.NewGormBadgeRepository(),
		&LogMailer{},
		testConfigWorkout(),
	).(*workoutService)
	svc.now = now
	return svc
}

func Test_workoutService_LogWorkout_FirstWorkout(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	seedTestBadges(t, db)
	user := createTestUser(t, db)

	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestWorkoutService(db, func() time.Time { return day1 })

	resp, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{
		WorkoutType: "cardio",
		DurationMin: 30,
	})
	require.NoError(t, err)

	// 50 (固定) + 2*30 (時間) + 20 (チェックイン) = 130
	assert.Equal(t, 130, resp.Gamification.XPGained)
	assert.Equal(t, 1, resp.Gamification.StreakCount)
	assert.True(t, resp.Gamification.LevelUp)
	require.NotNil(t, resp.Gamification.NewLevel)
	assert.Equal(t, 2, *resp.Gamification.NewLevel)
	assert.Equal(t, []string{"First Workout"}, resp.Gamification.NewBadges)

	// DB上のユーザーも更新されている
	var updated model.User
	require.NoError(t, db.First(&updated, "user_id = ?", user.UserID).Error)
	assert.Equal(t, 130, updated.XP)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 1, updated.StreakCount)
	assert.Equal(t, 1, updated.TotalWorkouts)
	require.NotNil(t, updated.LastCheckinDate)
}

func Test_workoutService_LogWorkout_SameDayNoCheckinBonus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	seedTestBadges(t, db)
	user := createTestUser(t, db)

	day1Morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	day1Evening := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	svc := newTestWorkoutService(db, func() time.Time { return day1Morning })
	_, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 30})
	require.NoError(t, err)

	// 同日2回目: チェックインボーナスなし、ストリークも増えない
	svc.now = func() time.Time { return day1Evening }
	resp, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "strength", DurationMin: 10})
	require.NoError(t, err)

	assert.Equal(t, 70, resp.Gamification.XPGained) // 50 + 2*10
	assert.Equal(t, 1, resp.Gamification.StreakCount)
	// 獲得済みのバッジは再報告されない
	assert.Empty(t, resp.Gamification.NewBadges)
}

func Test_workoutService_LogWorkout_StreakContinuesNextDay(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	seedTestBadges(t, db)
	user := createTestUser(t, db)

	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestWorkoutService(db, func() time.Time { return day1 })
	_, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 5})
	require.NoError(t, err)

	// 翌日: ストリーク継続
	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	resp, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Gamification.StreakCount)

	// 3日空けるとリセット
	svc.now = func() time.Time { return day1.AddDate(0, 0, 5) }
	resp, err = svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Gamification.StreakCount)
}

func Test_workoutService_LogWorkout_StreakBadgeAtSevenDays(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	seedTestBadges(t, db)
	user := createTestUser(t, db)

	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestWorkoutService(db, func() time.Time { return day1 })

	var lastResp *model.LogWorkoutResponse
	for i := 0; i < 7; i++ {
		day := day1.AddDate(0, 0, i)
		svc.now = func() time.Time { return day }
		resp, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 10})
		require.NoError(t, err)
		lastResp = resp
	}

	assert.Equal(t, 7, lastResp.Gamification.StreakCount)
	assert.Contains(t, lastResp.Gamification.NewBadges, "Week Warrior")
}

func Test_workoutService_LogWorkout_UserNotFound(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	seedTestBadges(t, db)

	svc := newTestWorkoutService(db, time.Now)

	_, err := svc.LogWorkout(ctx, uuid.New(), &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 30})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_workoutService_LogWorkout_UnknownBadgeCriteriaFails(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	user := createTestUser(t, db)

	// 不正な条件種別のバッジ定義を混入させる
	broken := model.Badge{BadgeID: uuid.New(), Name: "Broken", CriteriaKind: "calories_total", CriteriaValue: 1}
	require.NoError(t, db.Create(&broken).Error)

	svc := newTestWorkoutService(db, time.Now)

	_, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 30})
	require.Error(t, err)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)

	// トランザクションごとロールバックされ、ワークアウトは残らない
	var count int64
	require.NoError(t, db.Model(&model.Workout{}).Where("user_id = ?", user.UserID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func Test_workoutService_GetHistory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWorkout(t)
	seedTestBadges(t, db)
	user := createTestUser(t, db)

	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestWorkoutService(db, func() time.Time { return day1 })

	_, err := svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "cardio", DurationMin: 30})
	require.NoError(t, err)

	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	_, err = svc.LogWorkout(ctx, user.UserID, &model.LogWorkoutRequest{WorkoutType: "strength", DurationMin: 45})
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// 新しい順
	assert.Equal(t, "strength", history[0].WorkoutType)
	assert.Equal(t, "cardio", history[1].WorkoutType)
}
