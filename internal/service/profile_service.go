package service

import (
	"context"
	"errors"

	"github.com/slabstech/flex-fit-server/internal/config"
	"github.com/slabstech/flex-fit-server/internal/gamification"
	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ProfileService --output ./mocks --outpkg mocks --case=underscore

// ProfileService インターフェース
type ProfileService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error)
	GetGamificationStatus(ctx context.Context, userID uuid.UUID) (*model.GamificationStatusResponse, error)
	GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error)
}

type profileService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
	rules     gamification.Rules
	cfg       *config.Config
}

// NewProfileService は ProfileService の新しいインスタンスを生成します
func NewProfileService(db *gorm.DB, userRepo repository.UserRepository, badgeRepo repository.BadgeRepository, cfg *config.Config) ProfileService {
	return &profileService{
		db:        db,
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		rules: gamification.Rules{
			BaseWorkoutXP:    cfg.Gamification.BaseWorkoutXP,
			XPPerMinute:      cfg.Gamification.XPPerMinute,
			DailyCheckinXP:   cfg.Gamification.DailyCheckinXP,
			LevelCoefficient: cfg.Gamification.LevelCoefficient,
		},
		cfg: cfg,
	}
}

// GetDashboard はプロフィールと獲得済みバッジをまとめて返します
func (s *profileService) GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("User not found for dashboard", "user_id", userID.String())
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	userBadges, err := s.badgeRepo.FindEarnedWithBadge(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "バッジの取得に失敗しました。", "", err)
	}

	badges := make([]model.BadgeResponse, 0, len(userBadges))
	for _, ub := range userBadges {
		if ub.Badge == nil {
			// バッジ定義が消えている獲得記録は表示しない
			logger.Warn("User badge without badge definition", "badge_id", ub.BadgeID.String())
			continue
		}
		badges = append(badges, model.BadgeResponse{
			Name:        ub.Badge.Name,
			Description: ub.Badge.Description,
			IconURL:     ub.Badge.IconURL,
			EarnedAt:    ub.EarnedAt,
		})
	}

	return &model.DashboardResponse{
		UserResponse: s.toUserResponse(user),
		Badges:       badges,
	}, nil
}

// GetGamificationStatus は現在のXP・レベル・次レベルまでの残りXPを返します
func (s *profileService) GetGamificationStatus(ctx context.Context, userID uuid.UUID) (*model.GamificationStatusResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("User not found for gamification status", "user_id", userID.String())
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	level, intoLevel, required := s.rules.ProgressWithinLevel(user.XP)

	return &model.GamificationStatusResponse{
		XP:              user.XP,
		Level:           level,
		StreakCount:     user.StreakCount,
		LastCheckinDate: user.LastCheckinDate,
		NextLevelXP:     required,
		XPToNextLevel:   required - intoLevel,
	}, nil
}

// GetLeaderboard はXP降順の上位ユーザーを返します
func (s *profileService) GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	users, err := s.userRepo.ListTopByXP(ctx, s.db, s.cfg.App.LeaderboardLimit)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リーダーボードの取得に失敗しました。", "", err)
	}

	entries := make([]*model.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, &model.LeaderboardEntry{
			Username:    user.Username,
			Level:       s.rules.LevelForTotalXP(user.XP),
			XP:          user.XP,
			StreakCount: user.StreakCount,
		})
	}
	return entries, nil
}

func (s *profileService) toUserResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		// レベルは常にXPから再計算した値を返す
		Level:         s.rules.LevelForTotalXP(user.XP),
		XP:            user.XP,
		StreakCount:   user.StreakCount,
		TotalWorkouts: user.TotalWorkouts,
		CreatedAt:     user.CreatedAt,
	}
}
