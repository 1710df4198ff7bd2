// internal/gamification/curve.go
package gamification

// XPRequiredForLevel は指定レベルを「抜ける」ために必要なXPを返します。
// 2次カーブ: level 1 → 100, level 2 → 400, level 3 → 900 ... (係数100の場合)
func (r Rules) XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return r.LevelCoefficient * level * level
}

// LevelForTotalXP は累計XPからレベルを導出します。
// レベル1から始め、現在レベルの必要XPを残量から引ける間は引き続けて
// レベルを上げる貪欲法。単調非減少であり、XP 0 はレベル1になる
// (ループ条件 0 >= 100 が偽のため1周も回らない)。
func (r Rules) LevelForTotalXP(totalXP int) int {
	level, _, _ := r.ProgressWithinLevel(totalXP)
	return level
}

// ProgressWithinLevel は累計XPから、現在レベル・現在レベル内で消化済みのXP・
// 現在レベルを抜けるのに必要なXPの3つを返します。
func (r Rules) ProgressWithinLevel(totalXP int) (level, intoLevel, required int) {
	level = 1
	for totalXP >= r.XPRequiredForLevel(level) {
		totalXP -= r.XPRequiredForLevel(level)
		level++
	}
	return level, totalXP, r.XPRequiredForLevel(level)
}
