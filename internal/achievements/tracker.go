package achievements

import "time"

// Progress is the per-identifier mutable record. Records are created lazily
// on the first qualifying signal and never deleted outside Reset.
type Progress struct {
	CurrentValue int
	HighestTier  Tier
	LastUpdated  time.Time
}

// ProgressMap is the player's full progress state, keyed by identifier. The
// host owns the canonical copy and must serialize updates per profile.
type ProgressMap map[ID]*Progress

// TierAward reports a tier crossing detected by Apply, with the point value
// the caller adds to its running total exactly once.
type TierAward struct {
	ID     ID
	Tier   Tier
	Points int
}

// Apply folds a new cumulative counter value into the progress map. Callers
// supply cumulative counters, not deltas: the stored value never regresses
// below a previously observed one. When the counter first meets a tier
// threshold above the recorded tier, the crossing is returned once with its
// point value; otherwise the second return is nil.
func Apply(id ID, newValue int, m ProgressMap, now time.Time) (*Progress, *TierAward) {
	def := GetDefinition(id)

	rec := m[id]
	if rec == nil {
		rec = &Progress{}
		m[id] = rec
	}
	if newValue > rec.CurrentValue {
		rec.CurrentValue = newValue
		rec.LastUpdated = now
	}

	// Highest defined tier whose threshold the counter meets.
	reached := TierNone
	for _, req := range def.Requirements {
		if rec.CurrentValue >= req.Threshold {
			reached = req.Tier
		}
	}
	if reached <= rec.HighestTier {
		return rec, nil
	}
	rec.HighestTier = reached
	return rec, &TierAward{ID: id, Tier: reached, Points: def.AwardPoints(reached)}
}

// NextRequirement returns the first unmet requirement for the record, or
// false when every defined tier has been reached.
func NextRequirement(id ID, rec *Progress) (Requirement, bool) {
	def := GetDefinition(id)
	current := TierNone
	value := 0
	if rec != nil {
		current = rec.HighestTier
		value = rec.CurrentValue
	}
	for _, req := range def.Requirements {
		if req.Tier > current && value < req.Threshold {
			return req, true
		}
	}
	return Requirement{}, false
}

// TotalPoints sums the points earned across the map: for each record, every
// defined tier at or below its highest reached tier, honoring the special
// final-tier overrides.
func TotalPoints(m ProgressMap) int {
	total := 0
	for id, rec := range m {
		if rec == nil || rec.HighestTier == TierNone {
			continue
		}
		def := GetDefinition(id)
		for _, req := range def.Requirements {
			if req.Tier <= rec.HighestTier {
				total += def.AwardPoints(req.Tier)
			}
		}
	}
	return total
}

// Reset clears every progress record. It is the only path that decreases a
// tracked value and is invoked solely on an explicit user-initiated wipe.
func Reset(m ProgressMap) {
	for id := range m {
		delete(m, id)
	}
}
