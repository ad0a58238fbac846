package model

import "time"

// Side identifies which side of the net an event belongs to, always from the
// tracked player's perspective.
type Side int

const (
	SideNone     Side = 0
	SidePlayer   Side = 1
	SideOpponent Side = 2
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "?"
	}
}

// Sport selects the scoring model a match was played under.
type Sport int

const (
	SportUnknown    Sport = 0
	SportPickleball Sport = 1
	SportPadel      Sport = 2
)

func (s Sport) String() string {
	switch s {
	case SportPickleball:
		return "pickleball"
	case SportPadel:
		return "padel"
	default:
		return "?"
	}
}

// RallyScoring reports whether any side can score regardless of who served.
// Padel uses the server-advantage (deuce) model.
func (s Sport) RallyScoring() bool {
	return s == SportPickleball
}

// RegulationScore is the score a side must reach to win a regulation game.
func (s Sport) RegulationScore() int {
	switch s {
	case SportPickleball:
		return 11
	case SportPadel:
		return 6
	default:
		return 11
	}
}

// GamePointFloor is the minimum score both sides must hold before an event
// counts as a game-point opportunity.
func (s Sport) GamePointFloor() int {
	if s.RallyScoring() {
		return 10
	}
	return 3
}

// BreakPointLead is the minimum tracked-side score required for a point on
// the opponent's serve to count as a break-point opportunity. Kept per-sport
// so longer game formats can raise it.
func (s Sport) BreakPointLead() int {
	return 3
}

// GameType distinguishes singles from doubles play.
type GameType int

const (
	GameTypeSingles GameType = 0
	GameTypeDoubles GameType = 1
)

func (g GameType) String() string {
	if g == GameTypeDoubles {
		return "doubles"
	}
	return "singles"
}

// ServerRole says who on the tracked side held serve for a doubles point.
type ServerRole int

const (
	RoleNone    ServerRole = 0
	RoleSelf    ServerRole = 1
	RolePartner ServerRole = 2
)

func (r ServerRole) String() string {
	switch r {
	case RoleSelf:
		return "self"
	case RolePartner:
		return "partner"
	default:
		return "-"
	}
}

// ShotType classifies the stroke that ended a point, when the source device
// recorded one.
type ShotType int

const (
	ShotUnknown  ShotType = 0
	ShotServe    ShotType = 1
	ShotForehand ShotType = 2
	ShotBackhand ShotType = 3
	ShotVolley   ShotType = 4
	ShotSmash    ShotType = 5
	ShotLob      ShotType = 6
	ShotDrop     ShotType = 7
	ShotDink     ShotType = 8
)

func (t ShotType) String() string {
	switch t {
	case ShotServe:
		return "serve"
	case ShotForehand:
		return "forehand"
	case ShotBackhand:
		return "backhand"
	case ShotVolley:
		return "volley"
	case ShotSmash:
		return "smash"
	case ShotLob:
		return "lob"
	case ShotDrop:
		return "drop"
	case ShotDink:
		return "dink"
	default:
		return "-"
	}
}

// Outcome is the match result from the tracked player's perspective.
type Outcome int

const (
	OutcomeLoss Outcome = 0
	OutcomeWin  Outcome = 1
)

func (o Outcome) String() string {
	if o == OutcomeWin {
		return "win"
	}
	return "loss"
}

// PointEvent is one scoring event within a match. Events arrive in strict
// chronological order and scores are the running totals after the point.
// At most one of PlayerScore/OpponentScore advances between consecutive
// events.
type PointEvent struct {
	ServingSide   Side       // SideNone if the device did not record serve
	ServerRole    ServerRole // meaningful only in doubles
	ScoringSide   Side
	PlayerScore   int
	OpponentScore int
	Shot          ShotType
	IsServePoint  bool
}

// Diff is the signed score differential after the point, positive when the
// tracked player leads.
func (e PointEvent) Diff() int {
	return e.PlayerScore - e.OpponentScore
}

// Match is a finished, immutable match record. Events may be empty when the
// source device captured no point-level detail.
type Match struct {
	Hash          string
	Sport         Sport
	GameType      GameType
	MatchDate     string // YYYY-MM-DD
	PlayerScore   int
	OpponentScore int
	Duration      time.Duration
	Outcome       Outcome
	Events        []PointEvent
}

// Won reports whether the tracked player won the match.
func (m *Match) Won() bool {
	return m.Outcome == OutcomeWin
}

// Margin is the final score differential from the tracked player's side.
func (m *Match) Margin() int {
	return m.PlayerScore - m.OpponentScore
}

// Summary returns the lightweight record used by list/show commands.
func (m *Match) Summary() MatchSummary {
	return MatchSummary{
		Hash:            m.Hash,
		Sport:           m.Sport,
		GameType:        m.GameType,
		MatchDate:       m.MatchDate,
		PlayerScore:     m.PlayerScore,
		OpponentScore:   m.OpponentScore,
		DurationSeconds: int(m.Duration / time.Second),
		Outcome:         m.Outcome,
		EventCount:      len(m.Events),
	}
}

// MatchSummary is a lightweight match record for list/show commands.
type MatchSummary struct {
	Hash            string
	Sport           Sport
	GameType        GameType
	MatchDate       string
	PlayerScore     int
	OpponentScore   int
	DurationSeconds int
	Outcome         Outcome
	EventCount      int
}
