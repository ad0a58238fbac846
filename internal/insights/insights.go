// Package insights derives per-match performance insights from a match's
// chronological point log: serve efficiency, momentum, clutch conversion, and
// key-moment highlights. Everything here is a pure function of the match.
package insights

import "github.com/mvidela/rallymetrics/internal/model"

// minEvents is the smallest point log worth analyzing. Below it Compute
// returns no result rather than a zero-valued one.
const minEvents = 2

// ServePartition accumulates points served by one partition and how many of
// them the tracked side won.
type ServePartition struct {
	Served int
	Won    int
}

// WinRate is Won/Served, 0 for an empty partition.
func (p ServePartition) WinRate() float64 {
	if p.Served == 0 {
		return 0
	}
	return float64(p.Won) / float64(p.Served)
}

// ServeInsights partitions points by serving side. In doubles the tracked
// side splits into own serve and partner serve; in singles everything the
// tracked side served lands in OwnServe.
type ServeInsights struct {
	OwnServe      ServePartition
	PartnerServe  ServePartition
	OpponentServe ServePartition

	// OpponentServeLabel names tracked-side wins on the opponent's serve:
	// "side-outs defended" under rally scoring, "break points won" under the
	// server-advantage model. Driven by the sport flag, never re-derived
	// from score values.
	OpponentServeLabel string
}

// MomentumInsights captures scoring runs, lead changes, and biggest leads
// from a single left-to-right scan of the point log.
type MomentumInsights struct {
	LongestPlayerRun    int
	LongestOpponentRun  int
	LeadChanges         int
	BiggestPlayerLead   int
	BiggestOpponentLead int
}

// ClutchInsights counts high-pressure opportunities and conversions.
type ClutchInsights struct {
	GamePointsPlayed  int
	GamePointsWon     int
	BreakPointsPlayed int
	BreakPointsWon    int
}

// GamePointRate is the game-point conversion rate, 0 when none occurred.
func (c ClutchInsights) GamePointRate() float64 {
	if c.GamePointsPlayed == 0 {
		return 0
	}
	return float64(c.GamePointsWon) / float64(c.GamePointsPlayed)
}

// BreakPointRate is the break-point conversion rate, 0 when none occurred.
func (c ClutchInsights) BreakPointRate() float64 {
	if c.BreakPointsPlayed == 0 {
		return 0
	}
	return float64(c.BreakPointsWon) / float64(c.BreakPointsPlayed)
}

// Insights is the full per-match derivation.
type Insights struct {
	Serve      ServeInsights
	Momentum   MomentumInsights
	Clutch     ClutchInsights
	Highlights []Highlight
}

// Compute derives insights from the match's point log. The second return is
// false when the match carries fewer than two point events — not enough
// signal to derive anything meaningful.
func Compute(m *model.Match) (*Insights, bool) {
	if m == nil || len(m.Events) < minEvents {
		return nil, false
	}
	ins := &Insights{
		Serve:      computeServe(m),
		Momentum:   computeMomentum(m.Events),
		Clutch:     computeClutch(m),
		Highlights: extractHighlights(m),
	}
	return ins, true
}

func computeServe(m *model.Match) ServeInsights {
	var si ServeInsights
	if m.Sport.RallyScoring() {
		si.OpponentServeLabel = "side-outs defended"
	} else {
		si.OpponentServeLabel = "break points won"
	}

	for _, e := range m.Events {
		won := e.ScoringSide == model.SidePlayer
		switch e.ServingSide {
		case model.SidePlayer:
			part := &si.OwnServe
			if m.GameType == model.GameTypeDoubles && e.ServerRole == model.RolePartner {
				part = &si.PartnerServe
			}
			part.Served++
			if won {
				part.Won++
			}
		case model.SideOpponent:
			si.OpponentServe.Served++
			if won {
				si.OpponentServe.Won++
			}
		}
	}
	return si
}

func computeMomentum(events []model.PointEvent) MomentumInsights {
	var mo MomentumInsights
	var playerRun, opponentRun int
	var leader model.Side // SideNone until someone first leads

	for _, e := range events {
		// Runs: the opposing side's run resets the instant a side scores.
		switch e.ScoringSide {
		case model.SidePlayer:
			playerRun++
			opponentRun = 0
		case model.SideOpponent:
			opponentRun++
			playerRun = 0
		}
		if playerRun > mo.LongestPlayerRun {
			mo.LongestPlayerRun = playerRun
		}
		if opponentRun > mo.LongestOpponentRun {
			mo.LongestOpponentRun = opponentRun
		}

		// Lead tracking. A tie keeps the previous leader; the first event
		// that establishes a leader is not a change.
		diff := e.Diff()
		switch {
		case diff > 0:
			if leader == model.SideOpponent {
				mo.LeadChanges++
			}
			leader = model.SidePlayer
			if diff > mo.BiggestPlayerLead {
				mo.BiggestPlayerLead = diff
			}
		case diff < 0:
			if leader == model.SidePlayer {
				mo.LeadChanges++
			}
			leader = model.SideOpponent
			if -diff > mo.BiggestOpponentLead {
				mo.BiggestOpponentLead = -diff
			}
		}
	}
	return mo
}

func computeClutch(m *model.Match) ClutchInsights {
	var cl ClutchInsights
	floor := m.Sport.GamePointFloor()
	rally := m.Sport.RallyScoring()

	for _, e := range m.Events {
		won := e.ScoringSide == model.SidePlayer

		gamePoint := false
		if rally {
			// Rally scoring: late and tight.
			diff := e.Diff()
			if diff < 0 {
				diff = -diff
			}
			gamePoint = e.PlayerScore >= floor && e.OpponentScore >= floor && diff <= 1
		} else {
			// Server-advantage: deuce.
			gamePoint = e.PlayerScore >= floor && e.OpponentScore >= floor && e.PlayerScore == e.OpponentScore
		}
		if gamePoint {
			cl.GamePointsPlayed++
			if won {
				cl.GamePointsWon++
			}
		}

		// Break points exist only under the server-advantage model: the
		// opponent serves while the tracked side leads at or above the
		// sport's lead threshold.
		if !rally && e.ServingSide == model.SideOpponent &&
			e.PlayerScore >= m.Sport.BreakPointLead() && e.Diff() > 0 {
			cl.BreakPointsPlayed++
			if won {
				cl.BreakPointsWon++
			}
		}
	}
	return cl
}
