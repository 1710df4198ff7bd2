// internal/gamification/curve_test.go
package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules_XPRequiredForLevel(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name  string
		level int
		want  int
	}{
		{name: "レベル1は100XP", level: 1, want: 100},
		{name: "レベル2は400XP", level: 2, want: 400},
		{name: "レベル3は900XP", level: 3, want: 900},
		{name: "レベル10は10000XP", level: 10, want: 10000},
		{name: "レベル0は0XP", level: 0, want: 0},
		{name: "負のレベルは0XP", level: -3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.XPRequiredForLevel(tt.level))
		})
	}
}

func TestRules_LevelForTotalXP(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		totalXP int
		want    int
	}{
		{name: "XP0はレベル1", totalXP: 0, want: 1},
		{name: "XP99はレベル1", totalXP: 99, want: 1},
		{name: "XP100ちょうどでレベル2", totalXP: 100, want: 2},
		{name: "XP499はレベル2", totalXP: 499, want: 2},
		{name: "XP500(100+400)でレベル3", totalXP: 500, want: 3},
		{name: "XP1399はレベル3", totalXP: 1399, want: 3},
		{name: "XP1400(100+400+900)でレベル4", totalXP: 1400, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.LevelForTotalXP(tt.totalXP))
		})
	}
}

func TestRules_ProgressWithinLevel(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name          string
		totalXP       int
		wantLevel     int
		wantIntoLevel int
		wantRequired  int
	}{
		{name: "XP0はレベル1の開始地点", totalXP: 0, wantLevel: 1, wantIntoLevel: 0, wantRequired: 100},
		{name: "XP130はレベル2を30消化", totalXP: 130, wantLevel: 2, wantIntoLevel: 30, wantRequired: 400},
		{name: "XP500はレベル3の開始地点", totalXP: 500, wantLevel: 3, wantIntoLevel: 0, wantRequired: 900},
		{name: "XP1399はレベル3の残り1", totalXP: 1399, wantLevel: 3, wantIntoLevel: 899, wantRequired: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, intoLevel, required := rules.ProgressWithinLevel(tt.totalXP)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantIntoLevel, intoLevel)
			assert.Equal(t, tt.wantRequired, required)
		})
	}
}

// レベル導出が単調非減少で、常に1以上であること
func TestRules_LevelForTotalXP_Monotonic(t *testing.T) {
	rules := DefaultRules()

	prev := rules.LevelForTotalXP(0)
	assert.Equal(t, 1, prev)

	for xp := 1; xp <= 20000; xp += 7 {
		level := rules.LevelForTotalXP(xp)
		assert.GreaterOrEqual(t, level, 1, "xp=%d", xp)
		assert.GreaterOrEqual(t, level, prev, "xp=%d: レベルが下がった", xp)
		prev = level
	}
}

// 係数を差し替えてもカーブとして機能すること (Rulesを渡す設計の確認)
func TestRules_LevelForTotalXP_CustomCoefficient(t *testing.T) {
	rules := Rules{LevelCoefficient: 10}

	assert.Equal(t, 1, rules.LevelForTotalXP(9))
	assert.Equal(t, 2, rules.LevelForTotalXP(10))
	assert.Equal(t, 3, rules.LevelForTotalXP(10+40))
}
