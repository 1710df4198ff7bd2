// internal/gamification/streak_test.go
package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	tests := []struct {
		name           string
		lastCheckin    *time.Time
		streakCount    int
		wantCount      int
		wantTransition StreakTransition
	}{
		{
			name:           "初回チェックインは1にリセット",
			lastCheckin:    nil,
			streakCount:    0,
			wantCount:      1,
			wantTransition: StreakReset,
		},
		{
			name:           "前日チェックイン済みなら継続 (+1)",
			lastCheckin:    &yesterday,
			streakCount:    4,
			wantCount:      5,
			wantTransition: StreakContinued,
		},
		{
			name:           "3日空いたら1にリセット (0ではない)",
			lastCheckin:    &threeDaysAgo,
			streakCount:    10,
			wantCount:      1,
			wantTransition: StreakReset,
		},
		{
			name:           "同日2回目は何も変わらない",
			lastCheckin:    &today,
			streakCount:    7,
			wantCount:      7,
			wantTransition: StreakUnchanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, transition := NextStreak(tt.lastCheckin, tt.streakCount, today)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantTransition, transition)
		})
	}
}

// 時刻が違っても同じ暦日なら no-op になること
func TestNextStreak_SameDayDifferentClock(t *testing.T) {
	morning := time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	count, transition := NextStreak(&morning, 3, evening)
	assert.Equal(t, 3, count)
	assert.Equal(t, StreakUnchanged, transition)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2025, 6, 15, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), DateOf(ts))
}
