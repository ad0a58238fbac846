package insights

import (
	"fmt"

	"github.com/mvidela/rallymetrics/internal/model"
)

// Highlight is one key moment extracted from the point log. PlayerScore and
// OpponentScore snapshot the score at the highlighted point.
type Highlight struct {
	Title         string
	Description   string
	PlayerScore   int
	OpponentScore int
	Positive      bool
}

const (
	highlightRunMin     = 3 // shortest run worth highlighting
	highlightDeficitMin = 3 // smallest comeback deficit worth highlighting
	lateClutchFloor     = 9 // both sides at or above this makes a point "late"
)

// extractHighlights walks the point log and emits highlights in a fixed
// priority order: longest tracked run, biggest comeback, latest clutch point,
// first serve winner, and — for a lost match — the opponent's longest run.
// Highlights are independent and may co-occur.
func extractHighlights(m *model.Match) []Highlight {
	var out []Highlight
	events := m.Events

	// 1. Longest tracked-side scoring run, reported at its final point.
	// Ties keep the earliest run.
	bestRun, bestRunEnd := 0, -1
	run := 0
	for i, e := range events {
		if e.ScoringSide == model.SidePlayer {
			run++
			if run > bestRun {
				bestRun = run
				bestRunEnd = i
			}
		} else {
			run = 0
		}
	}
	if bestRun >= highlightRunMin {
		e := events[bestRunEnd]
		out = append(out, Highlight{
			Title:         "On a roll",
			Description:   fmt.Sprintf("Scored %d straight points", bestRun),
			PlayerScore:   e.PlayerScore,
			OpponentScore: e.OpponentScore,
			Positive:      true,
		})
	}

	// 2. Largest deficit later converted into a lead, reported once at the
	// first point where the lead was retaken after that deficit was reached.
	maxDeficit := 0
	comebackDeficit, comebackIdx := 0, -1
	for i, e := range events {
		if d := -e.Diff(); d > maxDeficit {
			maxDeficit = d
		}
		if e.Diff() > 0 && maxDeficit >= highlightDeficitMin && maxDeficit > comebackDeficit {
			comebackDeficit = maxDeficit
			comebackIdx = i
		}
	}
	if comebackIdx >= 0 {
		e := events[comebackIdx]
		out = append(out, Highlight{
			Title:         "Comeback",
			Description:   fmt.Sprintf("Took the lead after trailing by %d", comebackDeficit),
			PlayerScore:   e.PlayerScore,
			OpponentScore: e.OpponentScore,
			Positive:      true,
		})
	}

	// 3. Most recent tracked-side point with both sides deep into the game,
	// scanned from the end backward.
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.ScoringSide == model.SidePlayer &&
			e.PlayerScore >= lateClutchFloor && e.OpponentScore >= lateClutchFloor {
			out = append(out, Highlight{
				Title:         "Clutch point",
				Description:   "Delivered late with the game on the line",
				PlayerScore:   e.PlayerScore,
				OpponentScore: e.OpponentScore,
				Positive:      true,
			})
			break
		}
	}

	// 4. First point won directly off a serve-type shot.
	for _, e := range events {
		if e.ScoringSide == model.SidePlayer && e.Shot == model.ShotServe {
			out = append(out, Highlight{
				Title:         "Serve winner",
				Description:   "Won the point outright on serve",
				PlayerScore:   e.PlayerScore,
				OpponentScore: e.OpponentScore,
				Positive:      true,
			})
			break
		}
	}

	// 5. Cautionary: the opponent's longest run in a lost match.
	if !m.Won() {
		oppRun, oppRunEnd := 0, -1
		run = 0
		for i, e := range events {
			if e.ScoringSide == model.SideOpponent {
				run++
				if run > oppRun {
					oppRun = run
					oppRunEnd = i
				}
			} else {
				run = 0
			}
		}
		if oppRun >= highlightRunMin {
			e := events[oppRunEnd]
			out = append(out, Highlight{
				Title:         "Opponent surge",
				Description:   fmt.Sprintf("Opponent ran off %d straight points", oppRun),
				PlayerScore:   e.PlayerScore,
				OpponentScore: e.OpponentScore,
				Positive:      false,
			})
		}
	}

	return out
}
