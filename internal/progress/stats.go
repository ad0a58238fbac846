package progress

import (
	"time"

	"github.com/mvidela/rallymetrics/internal/insights"
	"github.com/mvidela/rallymetrics/internal/model"
)

// marathonDuration marks a match as a long one for the endurance counters.
const marathonDuration = time.Hour

// LifetimeStats are the cumulative counters fed to the achievement tracker.
// Every field is monotonic outside an explicit reset; streak fields keep both
// the live value and the best ever observed.
type LifetimeStats struct {
	MatchesPlayed   int
	MatchesWon      int
	PointsScored    int
	ComebackWins    int
	ClutchPointsWon int
	ServeWinners    int
	LongestRun      int
	MarathonMatches int

	WinStreak     int
	BestWinStreak int

	DayStreak     int
	BestDayStreak int
	LastPlayedDay string // YYYY-MM-DD
}

// Absorb folds one finished match into the counters. ins may be nil when the
// match carried too few events for insights; the counters that depend on the
// point log simply keep their values.
func (s *LifetimeStats) Absorb(m *model.Match, ins *insights.Insights) {
	s.MatchesPlayed++
	s.PointsScored += m.PlayerScore

	if m.Won() {
		s.MatchesWon++
		s.WinStreak++
		if s.WinStreak > s.BestWinStreak {
			s.BestWinStreak = s.WinStreak
		}
	} else {
		s.WinStreak = 0
	}

	if m.Duration >= marathonDuration {
		s.MarathonMatches++
	}

	s.absorbDay(m.MatchDate)

	if ins == nil {
		return
	}
	s.ClutchPointsWon += ins.Clutch.GamePointsWon + ins.Clutch.BreakPointsWon
	if ins.Momentum.LongestPlayerRun > s.LongestRun {
		s.LongestRun = ins.Momentum.LongestPlayerRun
	}
	if m.Won() && ins.Momentum.BiggestOpponentLead >= comebackDeficit {
		s.ComebackWins++
	}
	for _, e := range m.Events {
		if e.ScoringSide == model.SidePlayer && e.Shot == model.ShotServe {
			s.ServeWinners++
		}
	}
}

// comebackDeficit mirrors the leveling gate: a win after trailing by this
// much counts as a comeback.
const comebackDeficit = 4

// absorbDay advances the consecutive-day play streak. Same-day matches do
// not extend it; a gap of more than one day restarts it.
func (s *LifetimeStats) absorbDay(day string) {
	switch {
	case day == s.LastPlayedDay:
		// Already counted today.
	case isNextDay(s.LastPlayedDay, day):
		s.DayStreak++
	default:
		s.DayStreak = 1
	}
	if day >= s.LastPlayedDay {
		s.LastPlayedDay = day
	}
	if s.DayStreak > s.BestDayStreak {
		s.BestDayStreak = s.DayStreak
	}
}

func isNextDay(prev, next string) bool {
	if prev == "" {
		return false
	}
	p, err := time.Parse("2006-01-02", prev)
	if err != nil {
		return false
	}
	n, err := time.Parse("2006-01-02", next)
	if err != nil {
		return false
	}
	return n.Sub(p) == 24*time.Hour
}
