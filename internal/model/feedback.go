package model

// Mark classifies a single guess letter against the secret
type Mark string

const (
	MarkExact   Mark = "exact"   // right letter, right position (green)
	MarkPresent Mark = "present" // right letter, wrong position (yellow)
	MarkAbsent  Mark = "absent"  // letter not available (gray)
)

// Feedback is the per-guess result: one mark per letter plus the
// aggregate green/yellow counts used by the tiebreak
type Feedback struct {
	Green  int    `json:"green"`
	Yellow int    `json:"yellow"`
	Marks  []Mark `json:"marks"`
}

// Guess is one submitted word and its computed feedback. Immutable once
// appended to a player's history; insertion order is the board row order.
type Guess struct {
	Word     string
	Feedback Feedback
}
