// Package report renders match insights and progression state as terminal
// tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mvidela/rallymetrics/internal/achievements"
	"github.com/mvidela/rallymetrics/internal/insights"
	"github.com/mvidela/rallymetrics/internal/leveling"
	"github.com/mvidela/rallymetrics/internal/model"
	"github.com/mvidela/rallymetrics/internal/progress"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	d := time.Duration(s.DurationSeconds) * time.Second
	fmt.Fprintf(w, "\n%s %s  |  Date: %s  |  Score: %d – %d (%s)  |  Duration: %s  |  Hash: %s\n\n",
		s.Sport, s.GameType, s.MatchDate, s.PlayerScore, s.OpponentScore, s.Outcome,
		d, shortHash(s.Hash))
}

// PrintServeTable prints per-partition serve efficiency.
func PrintServeTable(w io.Writer, ins *insights.Insights, gameType model.GameType) {
	table := newTable(w)
	table.Header("PARTITION", "SERVED", "WON", "WIN%")

	appendPartition := func(name string, p insights.ServePartition) {
		table.Append(name, strconv.Itoa(p.Served), strconv.Itoa(p.Won),
			fmt.Sprintf("%.0f%%", p.WinRate()*100))
	}
	appendPartition("own serve", ins.Serve.OwnServe)
	if gameType == model.GameTypeDoubles {
		appendPartition("partner serve", ins.Serve.PartnerServe)
	}
	appendPartition("opponent serve ("+ins.Serve.OpponentServeLabel+")", ins.Serve.OpponentServe)
	table.Render()
}

// PrintMomentumTable prints runs, lead changes, and biggest leads.
func PrintMomentumTable(w io.Writer, ins *insights.Insights) {
	mo := ins.Momentum
	table := newTable(w)
	table.Header("SIDE", "LONGEST RUN", "BIGGEST LEAD")
	table.Append("you", strconv.Itoa(mo.LongestPlayerRun), strconv.Itoa(mo.BiggestPlayerLead))
	table.Append("opponent", strconv.Itoa(mo.LongestOpponentRun), strconv.Itoa(mo.BiggestOpponentLead))
	table.Render()
	fmt.Fprintf(w, "Lead changes: %d\n", mo.LeadChanges)
}

// PrintClutchTable prints clutch opportunity conversion.
func PrintClutchTable(w io.Writer, ins *insights.Insights) {
	cl := ins.Clutch
	table := newTable(w)
	table.Header("SITUATION", "PLAYED", "WON", "CONV%")
	table.Append("game points",
		strconv.Itoa(cl.GamePointsPlayed), strconv.Itoa(cl.GamePointsWon),
		fmt.Sprintf("%.0f%%", cl.GamePointRate()*100))
	table.Append("break points",
		strconv.Itoa(cl.BreakPointsPlayed), strconv.Itoa(cl.BreakPointsWon),
		fmt.Sprintf("%.0f%%", cl.BreakPointRate()*100))
	table.Render()
}

// PrintHighlights prints the key moments list, newest formatting decisions
// live here rather than in the insights package.
func PrintHighlights(w io.Writer, hs []insights.Highlight) {
	if len(hs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nKey moments:")
	for _, h := range hs {
		marker := "+"
		if !h.Positive {
			marker = "-"
		}
		fmt.Fprintf(w, "  %s %s — %s (at %d-%d)\n",
			marker, h.Title, h.Description, h.PlayerScore, h.OpponentScore)
	}
}

// PrintInsights prints all insight tables, or a note when the match carried
// too little point detail.
func PrintInsights(w io.Writer, ins *insights.Insights, gameType model.GameType) {
	if ins == nil {
		fmt.Fprintln(w, "No point-level detail recorded — insights unavailable.")
		return
	}
	PrintServeTable(w, ins, gameType)
	PrintMomentumTable(w, ins)
	PrintClutchTable(w, ins)
	PrintHighlights(w, ins.Highlights)
}

// PrintNewTiers announces tiers reached by the latest match.
func PrintNewTiers(w io.Writer, awards []achievements.TierAward) {
	if len(awards) == 0 {
		return
	}
	fmt.Fprintln(w, "\nAchievements unlocked:")
	for _, a := range awards {
		def := achievements.GetDefinition(a.ID)
		fmt.Fprintf(w, "  ★ %s — %s (+%d pts)\n", def.Name, a.Tier, a.Points)
	}
}

// PrintAwardBreakdown prints the experience award with its labeled
// components and the resulting standing.
func PrintAwardBreakdown(w io.Writer, award leveling.Award, xp leveling.State, leveledUp bool) {
	fmt.Fprintln(w, "\nExperience:")
	for _, c := range award.Breakdown {
		fmt.Fprintf(w, "  %-16s +%d XP\n", c.Label, c.XP)
	}
	fmt.Fprintf(w, "  Total: +%d XP\n", award.Total)
	if leveledUp {
		fmt.Fprintf(w, "  Level up! Now level %d\n", xp.Level)
	}
	fmt.Fprintf(w, "  Level %d — %d/%d XP into the next level\n",
		xp.Level, xp.XPIntoLevel, xp.XPForNextLevel)
}

// PrintAchievementTable prints the full catalog with per-identifier
// progress.
func PrintAchievementTable(w io.Writer, m achievements.ProgressMap) {
	table := newTable(w)
	table.Header("ACHIEVEMENT", "CATEGORY", "TIER", "PROGRESS", "NEXT")

	for _, def := range achievements.All() {
		rec := m[def.ID]
		tier := "—"
		value := 0
		if rec != nil {
			value = rec.CurrentValue
			if rec.HighestTier != achievements.TierNone {
				tier = rec.HighestTier.String()
			}
		}
		next := "complete"
		if req, ok := achievements.NextRequirement(def.ID, rec); ok {
			next = fmt.Sprintf("%s: %s", req.Tier, req.Description)
		}
		table.Append(def.Name, string(def.Category), tier, strconv.Itoa(value), next)
	}
	table.Render()
	fmt.Fprintf(w, "Achievement points: %d\n", achievements.TotalPoints(m))
}

// PrintProfileSummary prints lifetime counters and the experience standing.
func PrintProfileSummary(w io.Writer, stats progress.LifetimeStats, xp leveling.State) {
	table := newTable(w)
	table.Header("MATCHES", "WINS", "POINTS", "WIN STREAK", "DAY STREAK", "LONGEST RUN", "LEVEL", "XP")
	table.Append(
		strconv.Itoa(stats.MatchesPlayed),
		strconv.Itoa(stats.MatchesWon),
		strconv.Itoa(stats.PointsScored),
		fmt.Sprintf("%d (best %d)", stats.WinStreak, stats.BestWinStreak),
		fmt.Sprintf("%d (best %d)", stats.DayStreak, stats.BestDayStreak),
		strconv.Itoa(stats.LongestRun),
		strconv.Itoa(xp.Level),
		fmt.Sprintf("%d/%d", xp.XPIntoLevel, xp.XPForNextLevel),
	)
	table.Render()
}

// PrintCatalog prints every catalog definition with its tier ladder.
func PrintCatalog(w io.Writer) {
	table := newTable(w)
	table.Header("ACHIEVEMENT", "CATEGORY", "TIER", "REQUIREMENT", "PTS")
	for _, def := range achievements.All() {
		for _, req := range def.Requirements {
			table.Append(def.Name, string(def.Category), req.Tier.String(),
				req.Description, strconv.Itoa(def.AwardPoints(req.Tier)))
		}
	}
	table.Render()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
