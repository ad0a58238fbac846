// Package leveling computes per-match experience awards and maintains the
// level curve. The curve is geometric: each level step costs a fixed factor
// more than the one before, and level is always recomputable from total
// experience alone.
package leveling

import (
	"math"
	"time"

	"github.com/mvidela/rallymetrics/internal/model"
)

// Award amounts and gates. Fixed at build time, not runtime-configurable.
const (
	BaseCompletionXP = 50
	WinBonusXP       = 25

	ComebackDeficit = 4
	ComebackBonusXP = 30

	ServeRunLength   = 3
	ServeRunBonusXP  = 10
	ServeRunBonusCap = 30

	LopsidedMargin  = 5
	LopsidedBonusXP = 20

	EnduranceThreshold = 45 * time.Minute
	EnduranceBonusXP   = 15
)

// Level curve: the step from level L to L+1 costs
// levelCostBase * levelCostGrowth^(L-1).
const (
	levelCostBase   = 100.0
	levelCostGrowth = 1.15
)

// Component is one labeled line of an award breakdown.
type Component struct {
	Label string
	XP    int
}

// Award is the experience granted for one completed match.
type Award struct {
	Total     int
	Breakdown []Component
}

// State is the player's experience standing. TotalXP and Level are the
// source of truth; XPIntoLevel and XPForNextLevel are re-derived from them
// and never stored independently.
type State struct {
	TotalXP        int
	Level          int
	XPIntoLevel    int
	XPForNextLevel int
}

// ComputeAward builds the experience award for a completed match. Every
// component is independently gated and labeled for the breakdown.
func ComputeAward(m *model.Match) Award {
	var a Award
	add := func(label string, xp int) {
		if xp <= 0 {
			return
		}
		a.Breakdown = append(a.Breakdown, Component{Label: label, XP: xp})
		a.Total += xp
	}

	add("Match completed", BaseCompletionXP)
	if m.Won() {
		add("Victory", WinBonusXP)
	}
	if m.Won() && deepestDeficit(m.Events) >= ComebackDeficit {
		add("Comeback win", ComebackBonusXP)
	}
	add("Serve streaks", serveRunBonus(m.Events))
	if m.Won() && m.PlayerScore >= m.Sport.RegulationScore() && m.Margin() >= LopsidedMargin {
		add("Dominant win", LopsidedBonusXP)
	}
	if m.Duration > EnduranceThreshold {
		add("Endurance", EnduranceBonusXP)
	}
	return a
}

// deepestDeficit is the largest margin the tracked side ever trailed by.
func deepestDeficit(events []model.PointEvent) int {
	worst := 0
	for _, e := range events {
		if d := -e.Diff(); d > worst {
			worst = d
		}
	}
	return worst
}

// serveRunBonus grants a fixed increment per run of ServeRunLength or more
// consecutive serve points won by the tracked side, capped regardless of how
// many qualifying runs occur.
func serveRunBonus(events []model.PointEvent) int {
	bonus := 0
	run := 0
	flush := func() {
		if run >= ServeRunLength {
			bonus += ServeRunBonusXP
		}
		run = 0
	}
	for _, e := range events {
		if e.IsServePoint && e.ScoringSide == model.SidePlayer && e.ServingSide == model.SidePlayer {
			run++
		} else {
			flush()
		}
	}
	flush()
	if bonus > ServeRunBonusCap {
		bonus = ServeRunBonusCap
	}
	return bonus
}

// stepCost is the experience needed to climb from the given level to the
// next one.
func stepCost(level int) int {
	return int(math.Round(levelCostBase * math.Pow(levelCostGrowth, float64(level-1))))
}

// CumulativeRequirement is the total experience needed to reach the given
// level from zero. Level 1 requires nothing; the function is pure and
// strictly increasing in level.
func CumulativeRequirement(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += stepCost(l)
	}
	return total
}

// LevelForExperience recomputes the unique level implied by a total
// experience figure.
func LevelForExperience(totalXP int) int {
	level := 1
	for totalXP >= CumulativeRequirement(level+1) {
		level++
	}
	return level
}

// Apply folds an award into the state, advancing the level across as many
// boundaries as the new total crosses, and re-derives the cached fields. A
// zero award leaves the state untouched.
func Apply(s *State, a Award) (leveledUp bool, levelsGained int) {
	if s.Level < 1 {
		s.Level = 1
	}
	if a.Total <= 0 {
		s.recompute()
		return false, 0
	}
	s.TotalXP += a.Total
	before := s.Level
	for s.TotalXP >= CumulativeRequirement(s.Level+1) {
		s.Level++
	}
	s.recompute()
	return s.Level > before, s.Level - before
}

// Normalize clamps the level and re-derives the cached fields. Stores call
// it after loading, since only TotalXP and Level are persisted.
func (s *State) Normalize() {
	if s.Level < 1 {
		s.Level = 1
	}
	s.recompute()
}

// recompute re-derives XPIntoLevel and XPForNextLevel from TotalXP and
// Level.
func (s *State) recompute() {
	floor := CumulativeRequirement(s.Level)
	ceil := CumulativeRequirement(s.Level + 1)
	s.XPIntoLevel = s.TotalXP - floor
	s.XPForNextLevel = ceil - floor
}
