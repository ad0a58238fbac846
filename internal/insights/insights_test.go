package insights

import (
	"testing"

	"github.com/mvidela/rallymetrics/internal/model"
)

// pt builds a minimal point event: who scored and the running score after
// the point.
func pt(scorer model.Side, ps, os int) model.PointEvent {
	return model.PointEvent{ScoringSide: scorer, PlayerScore: ps, OpponentScore: os}
}

// served builds a point event with serve attribution.
func served(server, scorer model.Side, ps, os int) model.PointEvent {
	e := pt(scorer, ps, os)
	e.ServingSide = server
	return e
}

func pickleballMatch(events ...model.PointEvent) *model.Match {
	return &model.Match{
		Sport:    model.SportPickleball,
		GameType: model.GameTypeSingles,
		Outcome:  model.OutcomeWin,
		Events:   events,
	}
}

func padelMatch(events ...model.PointEvent) *model.Match {
	return &model.Match{
		Sport:    model.SportPadel,
		GameType: model.GameTypeSingles,
		Outcome:  model.OutcomeWin,
		Events:   events,
	}
}

func TestCompute_TooFewEvents(t *testing.T) {
	cases := []struct {
		name  string
		match *model.Match
	}{
		{"nil match", nil},
		{"no events", pickleballMatch()},
		{"one event", pickleballMatch(pt(model.SidePlayer, 1, 0))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if ins, ok := Compute(c.match); ok || ins != nil {
				t.Errorf("expected no result, got %+v", ins)
			}
		})
	}
}

func TestCompute_TwoEventsYieldResult(t *testing.T) {
	m := pickleballMatch(pt(model.SidePlayer, 1, 0), pt(model.SideOpponent, 1, 1))
	ins, ok := Compute(m)
	if !ok || ins == nil {
		t.Fatal("expected a result for a two-event match")
	}
}

func TestServe_EmptyPartitionRateIsZero(t *testing.T) {
	// No serve attribution at all — every partition empty.
	m := pickleballMatch(pt(model.SidePlayer, 1, 0), pt(model.SidePlayer, 2, 0))
	ins, _ := Compute(m)

	for name, p := range map[string]ServePartition{
		"own":      ins.Serve.OwnServe,
		"partner":  ins.Serve.PartnerServe,
		"opponent": ins.Serve.OpponentServe,
	} {
		if rate := p.WinRate(); rate != 0 {
			t.Errorf("%s partition: expected win rate 0 for empty partition, got %f", name, rate)
		}
	}
}

func TestServe_SinglesPartitions(t *testing.T) {
	m := pickleballMatch(
		served(model.SidePlayer, model.SidePlayer, 1, 0),   // won own serve
		served(model.SidePlayer, model.SideOpponent, 1, 1), // lost own serve
		served(model.SideOpponent, model.SidePlayer, 2, 1), // side-out defended
		served(model.SideOpponent, model.SideOpponent, 2, 2),
	)
	ins, _ := Compute(m)

	if got := ins.Serve.OwnServe; got.Served != 2 || got.Won != 1 {
		t.Errorf("own serve: want 2 served / 1 won, got %+v", got)
	}
	if got := ins.Serve.OpponentServe; got.Served != 2 || got.Won != 1 {
		t.Errorf("opponent serve: want 2 served / 1 won, got %+v", got)
	}
	if rate := ins.Serve.OwnServe.WinRate(); rate != 0.5 {
		t.Errorf("own serve win rate: want 0.5, got %f", rate)
	}
}

func TestServe_DoublesSplitsSelfAndPartner(t *testing.T) {
	self := served(model.SidePlayer, model.SidePlayer, 1, 0)
	self.ServerRole = model.RoleSelf
	partner := served(model.SidePlayer, model.SideOpponent, 1, 1)
	partner.ServerRole = model.RolePartner

	m := pickleballMatch(self, partner)
	m.GameType = model.GameTypeDoubles
	ins, _ := Compute(m)

	if got := ins.Serve.OwnServe; got.Served != 1 || got.Won != 1 {
		t.Errorf("own serve: want 1/1, got %+v", got)
	}
	if got := ins.Serve.PartnerServe; got.Served != 1 || got.Won != 0 {
		t.Errorf("partner serve: want 1/0, got %+v", got)
	}
}

func TestServe_OpponentServeLabelBySport(t *testing.T) {
	events := []model.PointEvent{pt(model.SidePlayer, 1, 0), pt(model.SidePlayer, 2, 0)}

	ins, _ := Compute(pickleballMatch(events...))
	if ins.Serve.OpponentServeLabel != "side-outs defended" {
		t.Errorf("pickleball label: got %q", ins.Serve.OpponentServeLabel)
	}

	ins, _ = Compute(padelMatch(events...))
	if ins.Serve.OpponentServeLabel != "break points won" {
		t.Errorf("padel label: got %q", ins.Serve.OpponentServeLabel)
	}
}

// Tracked side scores 1,2,3, opponent makes it 3-1, tracked scores to 4-1:
// longest tracked run 3, no lead change.
func TestMomentum_RunsAndLeads(t *testing.T) {
	m := pickleballMatch(
		pt(model.SidePlayer, 1, 0),
		pt(model.SidePlayer, 2, 0),
		pt(model.SidePlayer, 3, 0),
		pt(model.SideOpponent, 3, 1),
		pt(model.SidePlayer, 4, 1),
	)
	ins, _ := Compute(m)

	if ins.Momentum.LongestPlayerRun != 3 {
		t.Errorf("longest player run: want 3, got %d", ins.Momentum.LongestPlayerRun)
	}
	if ins.Momentum.LongestOpponentRun != 1 {
		t.Errorf("longest opponent run: want 1, got %d", ins.Momentum.LongestOpponentRun)
	}
	if ins.Momentum.LeadChanges != 0 {
		t.Errorf("lead changes: want 0, got %d", ins.Momentum.LeadChanges)
	}
	if ins.Momentum.BiggestPlayerLead != 3 {
		t.Errorf("biggest player lead: want 3, got %d", ins.Momentum.BiggestPlayerLead)
	}
}

func TestMomentum_LeadChangeThroughTie(t *testing.T) {
	// Player leads, tie, opponent leads — the transition through the tie is
	// one lead change; the initial lead establishment is none.
	m := pickleballMatch(
		pt(model.SidePlayer, 1, 0),
		pt(model.SideOpponent, 1, 1),
		pt(model.SideOpponent, 1, 2),
		pt(model.SidePlayer, 2, 2),
		pt(model.SidePlayer, 3, 2),
	)
	ins, _ := Compute(m)

	if ins.Momentum.LeadChanges != 2 {
		t.Errorf("lead changes: want 2, got %d", ins.Momentum.LeadChanges)
	}
}

func TestMomentum_Idempotent(t *testing.T) {
	m := pickleballMatch(
		pt(model.SidePlayer, 1, 0),
		pt(model.SideOpponent, 1, 1),
		pt(model.SidePlayer, 2, 1),
		pt(model.SidePlayer, 3, 1),
	)
	first, _ := Compute(m)
	second, _ := Compute(m)
	if first.Momentum != second.Momentum {
		t.Errorf("momentum not deterministic: %+v vs %+v", first.Momentum, second.Momentum)
	}
}

func TestClutch_RallyGamePoints(t *testing.T) {
	m := pickleballMatch(
		pt(model.SidePlayer, 10, 9),    // opponent below floor — not a game point
		pt(model.SideOpponent, 10, 10), // both at floor, diff 0 — played, lost
		pt(model.SidePlayer, 11, 10),   // played, won
	)
	ins, _ := Compute(m)

	if ins.Clutch.GamePointsPlayed != 2 {
		t.Errorf("game points played: want 2, got %d", ins.Clutch.GamePointsPlayed)
	}
	if ins.Clutch.GamePointsWon != 1 {
		t.Errorf("game points won: want 1, got %d", ins.Clutch.GamePointsWon)
	}
	if rate := ins.Clutch.GamePointRate(); rate != 0.5 {
		t.Errorf("conversion: want 0.5, got %f", rate)
	}
}

func TestClutch_DeuceGamePointsRequireTie(t *testing.T) {
	m := padelMatch(
		pt(model.SidePlayer, 3, 2),   // not tied — no opportunity
		pt(model.SideOpponent, 3, 3), // deuce — played, lost
		pt(model.SidePlayer, 4, 3),   // not tied
	)
	ins, _ := Compute(m)

	if ins.Clutch.GamePointsPlayed != 1 {
		t.Errorf("game points played: want 1, got %d", ins.Clutch.GamePointsPlayed)
	}
	if ins.Clutch.GamePointsWon != 0 {
		t.Errorf("game points won: want 0, got %d", ins.Clutch.GamePointsWon)
	}
}

func TestClutch_BreakPointsDeuceOnly(t *testing.T) {
	events := []model.PointEvent{
		served(model.SideOpponent, model.SidePlayer, 4, 2),   // leading at 4 on opp serve — won
		served(model.SideOpponent, model.SideOpponent, 4, 3), // still leading — played, lost
		served(model.SidePlayer, model.SidePlayer, 5, 3),     // own serve — not a break point
	}

	ins, _ := Compute(padelMatch(events...))
	if ins.Clutch.BreakPointsPlayed != 2 {
		t.Errorf("break points played: want 2, got %d", ins.Clutch.BreakPointsPlayed)
	}
	if ins.Clutch.BreakPointsWon != 1 {
		t.Errorf("break points won: want 1, got %d", ins.Clutch.BreakPointsWon)
	}

	// Rally scoring never produces break points.
	ins, _ = Compute(pickleballMatch(events...))
	if ins.Clutch.BreakPointsPlayed != 0 {
		t.Errorf("rally break points: want 0, got %d", ins.Clutch.BreakPointsPlayed)
	}
	if rate := ins.Clutch.BreakPointRate(); rate != 0 {
		t.Errorf("rally break rate: want 0, got %f", rate)
	}
}

func TestClutch_NoOpportunitiesRateZero(t *testing.T) {
	m := pickleballMatch(pt(model.SidePlayer, 1, 0), pt(model.SidePlayer, 2, 0))
	ins, _ := Compute(m)
	if ins.Clutch.GamePointRate() != 0 || ins.Clutch.BreakPointRate() != 0 {
		t.Error("expected zero conversion rates with no opportunities")
	}
}
