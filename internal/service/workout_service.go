package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/slabstech/flex-fit-server/internal/config"
	"github.com/slabstech/flex-fit-server/internal/gamification"
	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name WorkoutService --output ./mocks --outpkg mocks --case=underscore

// WorkoutService インターフェース
type WorkoutService interface {
	LogWorkout(ctx context.Context, userID uuid.UUID, req *model.LogWorkoutRequest) (*model.LogWorkoutResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]*model.WorkoutResponse, error)
}

type workoutService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	badgeRepo   repository.BadgeRepository
	mailer      Mailer
	rules       gamification.Rules
	cfg         *config.Config
	now         func() time.Time // テストで時刻を固定するために差し替え可能
}

// NewWorkoutService は WorkoutService の新しいインスタンスを生成します
func NewWorkoutService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	badgeRepo repository.BadgeRepository,
	mailer Mailer,
	cfg *config.Config,
) WorkoutService {
	return &workoutService{
		db:          db,
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		badgeRepo:   badgeRepo,
		mailer:      mailer,
		rules: gamification.Rules{
			BaseWorkoutXP:    cfg.Gamification.BaseWorkoutXP,
			XPPerMinute:      cfg.Gamification.XPPerMinute,
			DailyCheckinXP:   cfg.Gamification.DailyCheckinXP,
			LevelCoefficient: cfg.Gamification.LevelCoefficient,
		},
		cfg: cfg,
		now: time.Now,
	}
}

// LogWorkout はワークアウト1件を記録し、XP・ストリーク・レベル・バッジを
// 単一トランザクション内で更新します。ユーザー行を先頭でロックするため、
// 同一ユーザーの並行リクエストは直列化されます。
func (s *workoutService) LogWorkout(ctx context.Context, userID uuid.UUID, req *model.LogWorkoutRequest) (*model.LogWorkoutResponse, error) {
	logger := middleware.GetLogger(ctx)

	var (
		workout   *model.Workout
		result    model.GamificationResult
		levelUpTo int
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ユーザー行をロックして取得
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("User not found for workout", "user_id", userID.String())
				return model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to lock user row", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		// ワークアウト分のXPを計算
		xpGained, err := s.rules.XPForWorkout(req.DurationMin, req.Calories)
		if err != nil {
			logger.Warn("Invalid workout input", "error", err, "duration_min", req.DurationMin)
			return model.NewAppError("INVALID_INPUT", "運動時間は0より大きい値を指定してください。", "duration_min", model.ErrInvalidInput)
		}

		// ワークアウトを保存
		workout = &model.Workout{
			WorkoutID:   uuid.New(),
			UserID:      user.UserID,
			WorkoutType: req.WorkoutType,
			DurationMin: req.DurationMin,
			Calories:    req.Calories,
			CreatedAt:   s.now(),
		}
		if err := s.workoutRepo.Create(ctx, tx, workout); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ワークアウトの記録に失敗しました。", "", err)
		}

		oldLevel := s.rules.LevelForTotalXP(user.XP)

		user.XP += xpGained
		user.TotalWorkouts++

		// ストリーク遷移 (同日2回目以降は何も変えない)
		today := s.now()
		newStreak, transition := gamification.NextStreak(user.LastCheckinDate, user.StreakCount, today)
		if transition != gamification.StreakUnchanged {
			user.StreakCount = newStreak
			checkinDate := gamification.DateOf(today)
			user.LastCheckinDate = &checkinDate
			user.XP += s.rules.DailyCheckinXP
			xpGained += s.rules.DailyCheckinXP
		}

		// レベルは合計XPからの導出値として再計算する
		newLevel := s.rules.LevelForTotalXP(user.XP)
		user.Level = newLevel

		// バッジ判定
		defs, err := s.badgeRepo.FindAll(ctx, tx)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "バッジ定義の取得に失敗しました。", "", err)
		}
		earned, err := s.badgeRepo.FindEarnedBadgeIDs(ctx, tx, user.UserID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "獲得済みバッジの取得に失敗しました。", "", err)
		}
		progress := gamification.Progress{
			StreakCount:   user.StreakCount,
			TotalWorkouts: user.TotalWorkouts,
		}
		newBadges, err := gamification.EvaluateBadges(progress, earned, defs)
		if err != nil {
			// 未知の条件種別はデータ不整合。握りつぶさずエラーにする
			logger.Error("Badge evaluation failed", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "バッジの判定に失敗しました。", "", fmt.Errorf("badge evaluation: %w", err))
		}

		badgeNames := make([]string, 0, len(newBadges))
		for _, badge := range newBadges {
			userBadge := &model.UserBadge{
				UserBadgeID: uuid.New(),
				UserID:      user.UserID,
				BadgeID:     badge.BadgeID,
				EarnedAt:    s.now(),
			}
			if err := s.badgeRepo.CreateUserBadge(ctx, tx, userBadge); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "バッジの付与に失敗しました。", "", err)
			}
			badgeNames = append(badgeNames, badge.Name)
		}

		if err := s.userRepo.Update(ctx, tx, user); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの更新に失敗しました。", "", err)
		}

		result = model.GamificationResult{
			StreakCount: user.StreakCount,
			XPGained:    xpGained,
			LevelUp:     newLevel > oldLevel,
			NewBadges:   badgeNames,
		}
		if newLevel > oldLevel {
			levelUpTo = newLevel
			result.NewLevel = &levelUpTo
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Workout logged",
		"user_id", userID.String(),
		"workout_id", workout.WorkoutID.String(),
		"xp_earned", result.XPGained,
		"level_up", result.LevelUp,
		"new_badges", len(result.NewBadges),
	)

	// バッジ獲得通知はコミット後に非同期で送る
	if len(result.NewBadges) > 0 {
		go s.sendBadgeNotification(userID, result.NewBadges)
	}

	return &model.LogWorkoutResponse{
		WorkoutID:    workout.WorkoutID,
		WorkoutType:  workout.WorkoutType,
		DurationMin:  workout.DurationMin,
		Calories:     workout.Calories,
		CreatedAt:    workout.CreatedAt,
		Gamification: result,
	}, nil
}

// GetHistory はユーザーのワークアウト履歴を新しい順に返します
func (s *workoutService) GetHistory(ctx context.Context, userID uuid.UUID) ([]*model.WorkoutResponse, error) {
	workouts, err := s.workoutRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "履歴の取得に失敗しました。", "", err)
	}

	responses := make([]*model.WorkoutResponse, 0, len(workouts))
	for _, w := range workouts {
		responses = append(responses, &model.WorkoutResponse{
			WorkoutID:   w.WorkoutID,
			WorkoutType: w.WorkoutType,
			DurationMin: w.DurationMin,
			Calories:    w.Calories,
			CreatedAt:   w.CreatedAt,
		})
	}
	return responses, nil
}

func (s *workoutService) sendBadgeNotification(userID uuid.UUID, badgeNames []string) {
	ctx := context.Background()
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		slog.Default().Warn("Failed to load user for badge notification", "error", err, "user_id", userID.String())
		return
	}
	subject := "【FlexFit】新しいバッジを獲得しました！"
	body := user.Username + " さん、おめでとうございます！\n\n獲得したバッジ: " + strings.Join(badgeNames, ", ")
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		slog.Default().Warn("Failed to send badge notification", "error", err, "user_id", userID.String())
	}
}
