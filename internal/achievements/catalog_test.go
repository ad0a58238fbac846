package achievements

import "testing"

func TestCatalog_TierPointsStrictlyIncreasing(t *testing.T) {
	ranks := []Tier{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond}
	for i := 1; i < len(ranks); i++ {
		if ranks[i].Points() <= ranks[i-1].Points() {
			t.Errorf("tier %s points (%d) not greater than %s (%d)",
				ranks[i], ranks[i].Points(), ranks[i-1], ranks[i-1].Points())
		}
	}
}

func TestCatalog_RequirementsAscend(t *testing.T) {
	for _, def := range All() {
		if len(def.Requirements) == 0 {
			t.Errorf("%s: no requirements defined", def.ID)
			continue
		}
		for i := 1; i < len(def.Requirements); i++ {
			prev, cur := def.Requirements[i-1], def.Requirements[i]
			if cur.Tier <= prev.Tier {
				t.Errorf("%s: tier order broken at index %d", def.ID, i)
			}
			if cur.Threshold <= prev.Threshold {
				t.Errorf("%s: threshold order broken at index %d (%d <= %d)",
					def.ID, i, cur.Threshold, prev.Threshold)
			}
		}
	}
}

func TestCatalog_LookupKnownIDs(t *testing.T) {
	for _, def := range All() {
		got := GetDefinition(def.ID)
		if got.ID != def.ID {
			t.Errorf("lookup %s returned %s", def.ID, got.ID)
		}
	}
}

func TestCatalog_UnknownIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown identifier")
		}
	}()
	GetDefinition("no-such-achievement")
}

func TestCatalog_SpecialTotalOverride(t *testing.T) {
	def := GetDefinition(AchDayStreak)
	if def.TotalPoints() != 1000 {
		t.Errorf("day streak total: want the special 1000, got %d", def.TotalPoints())
	}

	// Per-tier awards below the capstone follow the generic rank rule; the
	// capstone award absorbs the remainder so the tiers sum to the special
	// total.
	lower := 0
	for _, r := range def.Requirements[:len(def.Requirements)-1] {
		if got := def.AwardPoints(r.Tier); got != r.Tier.Points() {
			t.Errorf("%s award: want %d, got %d", r.Tier, r.Tier.Points(), got)
		}
		lower += r.Tier.Points()
	}
	if got := def.AwardPoints(def.HighestTier()); got != 1000-lower {
		t.Errorf("capstone award: want %d, got %d", 1000-lower, got)
	}
}

func TestCatalog_GenericTotalIsTierSum(t *testing.T) {
	def := GetDefinition(AchMatchesPlayed)
	want := 0
	for _, r := range def.Requirements {
		want += r.Tier.Points()
	}
	if got := def.TotalPoints(); got != want {
		t.Errorf("total points: want %d, got %d", want, got)
	}
}

func TestCatalog_SubsetTierDefinitions(t *testing.T) {
	// Some identifiers intentionally define fewer than five tiers.
	def := GetDefinition(AchComebackWins)
	if len(def.Requirements) >= 5 {
		t.Skip("catalog changed; subset-tier case now covered elsewhere")
	}
	if def.HighestTier() == TierDiamond {
		t.Error("subset definition should not reach diamond")
	}
}
