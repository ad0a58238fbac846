// Package matchio loads finalized match records from the JSON files the
// tracking app exports. The file's sha256 hash is the match's idempotency
// key, so re-ingesting the same export is a no-op upstream.
package matchio

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mvidela/rallymetrics/internal/model"
)

type fileMatch struct {
	Sport           string      `json:"sport"`
	GameType        string      `json:"gameType"`
	Date            string      `json:"date"`
	PlayerScore     int         `json:"playerScore"`
	OpponentScore   int         `json:"opponentScore"`
	DurationSeconds int         `json:"durationSeconds"`
	Outcome         string      `json:"outcome"`
	Events          []fileEvent `json:"events"`
}

type fileEvent struct {
	ServingSide   string `json:"servingSide,omitempty"`
	ServerRole    string `json:"serverRole,omitempty"`
	ScoringSide   string `json:"scoringSide"`
	PlayerScore   int    `json:"playerScore"`
	OpponentScore int    `json:"opponentScore"`
	Shot          string `json:"shot,omitempty"`
	IsServePoint  bool   `json:"isServePoint"`
}

// LoadFile reads one exported match file into a Match.
func LoadFile(path string) (*model.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read match file: %w", err)
	}
	return Parse(data)
}

// Parse decodes an exported match record. The hash is computed over the raw
// bytes so identical exports map to the same match.
func Parse(data []byte) (*model.Match, error) {
	var fm fileMatch
	if err := json.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode match: %w", err)
	}

	sport, err := parseSport(fm.Sport)
	if err != nil {
		return nil, err
	}
	outcome, err := parseOutcome(fm.Outcome)
	if err != nil {
		return nil, err
	}
	if fm.PlayerScore < 0 || fm.OpponentScore < 0 {
		return nil, fmt.Errorf("negative final score %d-%d", fm.PlayerScore, fm.OpponentScore)
	}
	date := fm.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("bad match date %q: %w", fm.Date, err)
	}

	m := &model.Match{
		Hash:          fmt.Sprintf("%x", sha256.Sum256(data)),
		Sport:         sport,
		GameType:      parseGameType(fm.GameType),
		MatchDate:     date,
		PlayerScore:   fm.PlayerScore,
		OpponentScore: fm.OpponentScore,
		Duration:      time.Duration(fm.DurationSeconds) * time.Second,
		Outcome:       outcome,
	}

	for i, fe := range fm.Events {
		e, err := parseEvent(fe)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		m.Events = append(m.Events, e)
	}
	return m, nil
}

func parseEvent(fe fileEvent) (model.PointEvent, error) {
	var e model.PointEvent
	switch fe.ScoringSide {
	case "player":
		e.ScoringSide = model.SidePlayer
	case "opponent":
		e.ScoringSide = model.SideOpponent
	default:
		return e, fmt.Errorf("bad scoring side %q", fe.ScoringSide)
	}
	switch fe.ServingSide {
	case "player":
		e.ServingSide = model.SidePlayer
	case "opponent":
		e.ServingSide = model.SideOpponent
	case "":
		e.ServingSide = model.SideNone
	default:
		return e, fmt.Errorf("bad serving side %q", fe.ServingSide)
	}
	switch fe.ServerRole {
	case "self":
		e.ServerRole = model.RoleSelf
	case "partner":
		e.ServerRole = model.RolePartner
	case "":
		e.ServerRole = model.RoleNone
	default:
		return e, fmt.Errorf("bad server role %q", fe.ServerRole)
	}
	e.Shot = parseShot(fe.Shot)
	e.PlayerScore = fe.PlayerScore
	e.OpponentScore = fe.OpponentScore
	e.IsServePoint = fe.IsServePoint
	return e, nil
}

func parseSport(s string) (model.Sport, error) {
	switch s {
	case "pickleball":
		return model.SportPickleball, nil
	case "padel":
		return model.SportPadel, nil
	default:
		return model.SportUnknown, fmt.Errorf("unknown sport %q", s)
	}
}

func parseGameType(s string) model.GameType {
	if s == "doubles" {
		return model.GameTypeDoubles
	}
	return model.GameTypeSingles
}

func parseOutcome(s string) (model.Outcome, error) {
	switch s {
	case "win":
		return model.OutcomeWin, nil
	case "loss":
		return model.OutcomeLoss, nil
	default:
		return model.OutcomeLoss, fmt.Errorf("unknown outcome %q", s)
	}
}

func parseShot(s string) model.ShotType {
	switch s {
	case "serve":
		return model.ShotServe
	case "forehand":
		return model.ShotForehand
	case "backhand":
		return model.ShotBackhand
	case "volley":
		return model.ShotVolley
	case "smash":
		return model.ShotSmash
	case "lob":
		return model.ShotLob
	case "drop":
		return model.ShotDrop
	case "dink":
		return model.ShotDink
	default:
		return model.ShotUnknown
	}
}
