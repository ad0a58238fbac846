// Package achievements holds the static achievement catalog and the
// monotonic progress tracker that detects tier crossings exactly once.
package achievements

import "fmt"

// Tier is one of five increasing achievement ranks.
type Tier int

const (
	TierNone     Tier = 0
	TierBronze   Tier = 1
	TierSilver   Tier = 2
	TierGold     Tier = 3
	TierPlatinum Tier = 4
	TierDiamond  Tier = 5
)

func (t Tier) String() string {
	switch t {
	case TierBronze:
		return "bronze"
	case TierSilver:
		return "silver"
	case TierGold:
		return "gold"
	case TierPlatinum:
		return "platinum"
	case TierDiamond:
		return "diamond"
	default:
		return "-"
	}
}

// Points is the fixed point value awarded for reaching this tier. Values are
// strictly increasing with rank.
func (t Tier) Points() int {
	switch t {
	case TierBronze:
		return 10
	case TierSilver:
		return 25
	case TierGold:
		return 50
	case TierPlatinum:
		return 100
	case TierDiamond:
		return 250
	default:
		return 0
	}
}

// ID names one achievement in the catalog.
type ID string

const (
	AchMatchesPlayed ID = "matches-played"
	AchMatchWins     ID = "match-wins"
	AchPointsScored  ID = "points-scored"
	AchWinStreak     ID = "win-streak"
	AchDayStreak     ID = "day-streak"
	AchComebackWins  ID = "comeback-wins"
	AchClutchPoints  ID = "clutch-points"
	AchServeWinners  ID = "serve-winners"
	AchMarathons     ID = "marathon-matches"
	AchHotHand       ID = "hot-hand"
)

// Category groups achievements for display.
type Category string

const (
	CategoryDedication  Category = "Dedication"
	CategoryVictory     Category = "Victory"
	CategoryPerformance Category = "Performance"
	CategoryEndurance   Category = "Endurance"
)

// Requirement pairs a tier with the counter threshold that unlocks it.
type Requirement struct {
	Tier        Tier
	Threshold   int
	Description string
}

// Definition is one catalog entry. Requirements are ordered by increasing
// tier and a definition may cover only a subset of the five tiers.
type Definition struct {
	ID           ID
	Category     Category
	Name         string
	Requirements []Requirement
}

// HighestTier is the top tier this definition actually defines.
func (d Definition) HighestTier() Tier {
	if len(d.Requirements) == 0 {
		return TierNone
	}
	return d.Requirements[len(d.Requirements)-1].Tier
}

// AwardPoints is the point value for crossing the given tier of this
// definition. For identifiers carrying a special total, the final tier's
// award is sized so the defined tiers together pay out exactly that figure;
// the override is checked before the per-rank rule.
func (d Definition) AwardPoints(t Tier) int {
	special, ok := specialTotals[d.ID]
	if !ok || t != d.HighestTier() {
		return t.Points()
	}
	lower := 0
	for _, r := range d.Requirements {
		if r.Tier < t {
			lower += r.Tier.Points()
		}
	}
	return special - lower
}

// TotalPoints is the point value of the fully-achieved definition: the
// special override when one exists, otherwise the sum over defined tiers.
func (d Definition) TotalPoints() int {
	if special, ok := specialTotals[d.ID]; ok {
		return special
	}
	sum := 0
	for _, r := range d.Requirements {
		sum += r.Tier.Points()
	}
	return sum
}

// specialTotals overrides the computed point value for identifiers that
// represent an outsized milestone. Kept as a table rather than a general
// rule on purpose.
var specialTotals = map[ID]int{
	AchDayStreak: 1000,
}

func tiers(descFmt string, thresholds ...int) []Requirement {
	ranks := []Tier{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond}
	reqs := make([]Requirement, 0, len(thresholds))
	for i, th := range thresholds {
		reqs = append(reqs, Requirement{
			Tier:        ranks[i],
			Threshold:   th,
			Description: fmt.Sprintf(descFmt, th),
		})
	}
	return reqs
}

// catalog is the exhaustive, build-time registry. Order here is display
// order.
var catalog = []Definition{
	{
		ID:           AchMatchesPlayed,
		Category:     CategoryDedication,
		Name:         "Court Regular",
		Requirements: tiers("Play %d matches", 5, 25, 75, 200, 500),
	},
	{
		ID:           AchMatchWins,
		Category:     CategoryVictory,
		Name:         "Winner's Circle",
		Requirements: tiers("Win %d matches", 3, 15, 50, 125, 300),
	},
	{
		ID:           AchPointsScored,
		Category:     CategoryPerformance,
		Name:         "Point Machine",
		Requirements: tiers("Score %d points", 50, 250, 1000, 3000, 8000),
	},
	{
		ID:           AchWinStreak,
		Category:     CategoryVictory,
		Name:         "Unstoppable",
		Requirements: tiers("Win %d matches in a row", 3, 5, 8, 12, 20),
	},
	{
		ID:           AchDayStreak,
		Category:     CategoryDedication,
		Name:         "Daily Grinder",
		Requirements: tiers("Play %d days in a row", 3, 7, 14, 30, 100),
	},
	{
		ID:           AchComebackWins,
		Category:     CategoryVictory,
		Name:         "Never Say Die",
		Requirements: tiers("Win %d matches after trailing by 4+", 1, 5, 15, 40),
	},
	{
		ID:           AchClutchPoints,
		Category:     CategoryPerformance,
		Name:         "Ice in the Veins",
		Requirements: tiers("Win %d game or break points", 5, 25, 75, 200, 500),
	},
	{
		ID:           AchServeWinners,
		Category:     CategoryPerformance,
		Name:         "Big Server",
		Requirements: tiers("Win %d points outright on serve", 5, 20, 60, 150),
	},
	{
		ID:           AchMarathons,
		Category:     CategoryEndurance,
		Name:         "Iron Legs",
		Requirements: tiers("Finish %d matches over an hour long", 1, 5, 15, 40, 100),
	},
	{
		ID:           AchHotHand,
		Category:     CategoryPerformance,
		Name:         "Hot Hand",
		Requirements: tiers("Record a %d-point scoring run", 5, 7, 9, 12),
	},
}

var byID = func() map[ID]Definition {
	m := make(map[ID]Definition, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// GetDefinition looks up a catalog entry. The catalog is exhaustive over the
// known identifiers at build time, so an unknown id is a programming error
// and panics.
func GetDefinition(id ID) Definition {
	d, ok := byID[id]
	if !ok {
		panic(fmt.Sprintf("achievements: unknown identifier %q", id))
	}
	return d
}

// All returns the catalog in display order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}
