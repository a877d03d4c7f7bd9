package model

// ModeID identifies a board configuration
type ModeID string

const (
	ModeClassic   ModeID = "classic"
	ModeWordy     ModeID = "wordy"
	ModeChallenge ModeID = "challenge"
	ModeRush      ModeID = "rush"
)

// Mode is a named board configuration. The registry is fixed at compile
// time; sessions copy MaxAttempts and word length at creation and never
// re-read the registry afterwards.
type Mode struct {
	ID          ModeID
	Name        string
	BoardRows   int
	BoardCols   int
	MaxAttempts int
	Description string
}

// WordLength returns the secret word length for this mode
func (m Mode) WordLength() int {
	return m.BoardCols
}

var modes = map[ModeID]Mode{
	ModeClassic: {
		ID:          ModeClassic,
		Name:        "Classic",
		BoardRows:   6,
		BoardCols:   5,
		MaxAttempts: 6,
		Description: "Traditional 5x6 duel.",
	},
	ModeWordy: {
		ID:          ModeWordy,
		Name:        "Wordy",
		BoardRows:   6,
		BoardCols:   6,
		MaxAttempts: 6,
		Description: "Extended 6x6 duel.",
	},
	ModeChallenge: {
		ID:          ModeChallenge,
		Name:        "Challenge a Friend",
		BoardRows:   6,
		BoardCols:   5,
		MaxAttempts: 6,
		Description: "Direct match with friends (5x6).",
	},
	ModeRush: {
		ID:          ModeRush,
		Name:        "Rush",
		BoardRows:   6,
		BoardCols:   5,
		MaxAttempts: 6,
		Description: "Speed mode (5x6).",
	},
}

// LookupMode returns the mode for the given id
func LookupMode(id ModeID) (Mode, bool) {
	m, ok := modes[id]
	return m, ok
}

// Modes returns all registered modes
func Modes() []Mode {
	out := make([]Mode, 0, len(modes))
	for _, id := range []ModeID{ModeClassic, ModeWordy, ModeChallenge, ModeRush} {
		out = append(out, modes[id])
	}
	return out
}
