// Package progress is the host-side glue between a finalized match and the
// persisted progression state: it accumulates lifetime counters, runs the
// achievement tracker and the leveling engine, and commits everything back
// through the store in one read-modify-write pass. Callers must serialize
// Record calls per profile; the package holds no global state.
package progress

import (
	"fmt"
	"time"

	"github.com/mvidela/rallymetrics/internal/achievements"
	"github.com/mvidela/rallymetrics/internal/insights"
	"github.com/mvidela/rallymetrics/internal/leveling"
	"github.com/mvidela/rallymetrics/internal/model"
)

// Store is the persistence contract the host supplies. The recorder reads
// prior state, applies the update, and writes the result back; atomicity
// across the three saves is the store's concern.
type Store interface {
	LoadStats() (LifetimeStats, error)
	SaveStats(LifetimeStats) error
	LoadProgress() (achievements.ProgressMap, error)
	SaveProgress(achievements.ProgressMap) error
	LoadExperience() (leveling.State, error)
	SaveExperience(leveling.State) error
}

// Result is everything one recorded match changed.
type Result struct {
	NewTiers          []achievements.TierAward
	TierPointsEarned  int
	AchievementPoints int // total across the whole progress map after the update
	Award             leveling.Award
	Experience        leveling.State
	LeveledUp         bool
	LevelsGained      int
	Stats             LifetimeStats
}

// Recorder applies finished matches to persisted progression state.
type Recorder struct {
	store    Store
	onChange func(*Result)
}

// NewRecorder builds a recorder over the given store. onChange, when
// non-nil, runs after a successful commit so the host can refresh derived
// display state; it must not mutate the result.
func NewRecorder(store Store, onChange func(*Result)) *Recorder {
	return &Recorder{store: store, onChange: onChange}
}

// Record folds one finished match into lifetime stats, achievement progress,
// and experience, then persists all three. now stamps progress records.
func (r *Recorder) Record(m *model.Match, now time.Time) (*Result, error) {
	stats, err := r.store.LoadStats()
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	progressMap, err := r.store.LoadProgress()
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if progressMap == nil {
		progressMap = make(achievements.ProgressMap)
	}
	xp, err := r.store.LoadExperience()
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}

	ins, _ := insights.Compute(m)
	stats.Absorb(m, ins)

	res := &Result{Stats: stats}
	for _, sig := range signals(stats) {
		_, award := achievements.Apply(sig.id, sig.value, progressMap, now)
		if award != nil {
			res.NewTiers = append(res.NewTiers, *award)
			res.TierPointsEarned += award.Points
		}
	}
	res.AchievementPoints = achievements.TotalPoints(progressMap)

	res.Award = leveling.ComputeAward(m)
	res.LeveledUp, res.LevelsGained = leveling.Apply(&xp, res.Award)
	res.Experience = xp

	if err := r.store.SaveStats(stats); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}
	if err := r.store.SaveProgress(progressMap); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	if err := r.store.SaveExperience(xp); err != nil {
		return nil, fmt.Errorf("save experience: %w", err)
	}

	if r.onChange != nil {
		r.onChange(res)
	}
	return res, nil
}

type signal struct {
	id    achievements.ID
	value int
}

// signals maps the lifetime counters onto catalog identifiers. Every value
// is cumulative (counts, totals, or best-ever figures), matching the
// tracker's no-regression contract.
func signals(s LifetimeStats) []signal {
	return []signal{
		{achievements.AchMatchesPlayed, s.MatchesPlayed},
		{achievements.AchMatchWins, s.MatchesWon},
		{achievements.AchPointsScored, s.PointsScored},
		{achievements.AchWinStreak, s.BestWinStreak},
		{achievements.AchDayStreak, s.BestDayStreak},
		{achievements.AchComebackWins, s.ComebackWins},
		{achievements.AchClutchPoints, s.ClutchPointsWon},
		{achievements.AchServeWinners, s.ServeWinners},
		{achievements.AchMarathons, s.MarathonMatches},
		{achievements.AchHotHand, s.LongestRun},
	}
}

// ResetAll wipes stats, progress, and experience back to the empty state.
// This is the only path that decreases any tracked value and exists solely
// for an explicit user-initiated wipe.
func (r *Recorder) ResetAll() error {
	progressMap, err := r.store.LoadProgress()
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	achievements.Reset(progressMap)
	if err := r.store.SaveProgress(progressMap); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := r.store.SaveStats(LifetimeStats{}); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if err := r.store.SaveExperience(leveling.State{Level: 1}); err != nil {
		return fmt.Errorf("save experience: %w", err)
	}
	return nil
}
