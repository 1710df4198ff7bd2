package repository

import (
	"fmt"
	"log/slog"

	"github.com/slabstech/flex-fit-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultBadges は起動時に投入する標準バッジ定義です。
var defaultBadges = []model.Badge{
	{
		Name:          "First Workout",
		Description:   "初めてのワークアウトを記録した",
		IconURL:       "/static/badges/first_workout.png",
		CriteriaKind:  model.CriteriaTotalWorkouts,
		CriteriaValue: 1,
	},
	{
		Name:          "Week Warrior",
		Description:   "7日連続でチェックインした",
		IconURL:       "/static/badges/week_warrior.png",
		CriteriaKind:  model.CriteriaStreak,
		CriteriaValue: 7,
	},
	{
		Name:          "Century Club",
		Description:   "通算100回のワークアウトを達成した",
		IconURL:       "/static/badges/century_club.png",
		CriteriaKind:  model.CriteriaTotalWorkouts,
		CriteriaValue: 100,
	},
}

// SeedDefaultBadges は標準バッジを冪等に投入します (Name 基準の FirstOrCreate)。
// 未知の条件種別を含む定義は設定ミスとして起動を止めます。
func SeedDefaultBadges(db *gorm.DB, logger *slog.Logger) error {
	for _, badge := range defaultBadges {
		if !badge.CriteriaKind.Valid() {
			return fmt.Errorf("seed: badge %q has unknown criteria kind %q", badge.Name, badge.CriteriaKind)
		}
		badge.BadgeID = uuid.New()
		result := db.Where("name = ?", badge.Name).FirstOrCreate(&badge)
		if result.Error != nil {
			logger.Error("Error seeding badge", "error", result.Error, "name", badge.Name)
			return fmt.Errorf("seed: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			logger.Info("Seeded badge", "name", badge.Name)
		}
	}
	return nil
}
