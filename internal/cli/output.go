package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameState:
		o.printGameState(v)
	case GuessResult:
		o.printGuessResult(v)
	case QueueStatus:
		o.printQueueStatus(v)
	case Challenge:
		o.printChallenge(v)
	case GameRecord:
		o.printGameRecord(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case []Mode:
		o.printModes(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Feedback response type
type Feedback struct {
	Green  int      `json:"green"`
	Yellow int      `json:"yellow"`
	Marks  []string `json:"marks"`
}

// Guess response type
type Guess struct {
	Word     string   `json:"word,omitempty"`
	Feedback Feedback `json:"feedback"`
}

// GameState response type
type GameState struct {
	ID           string   `json:"id"`
	Mode         string   `json:"mode"`
	Status       string   `json:"status"`
	Players      []string `json:"players"`
	WordLength   int      `json:"word_length"`
	MaxAttempts  int      `json:"max_attempts"`
	MyGuesses    []Guess  `json:"my_guesses"`
	OpponentRows []Guess  `json:"opponent_rows"`
	Winner       *string  `json:"winner,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Feedback Feedback `json:"feedback"`
	Attempt  int      `json:"attempt"`
	Over     bool     `json:"over"`
	Word     string   `json:"word,omitempty"`
	Winner   *string  `json:"winner,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// QueueStatus response type
type QueueStatus struct {
	Matched bool     `json:"matched"`
	GameID  string   `json:"game_id,omitempty"`
	Mode    string   `json:"mode,omitempty"`
	Players []string `json:"players,omitempty"`
}

// Challenge response type
type Challenge struct {
	ID           string    `json:"id"`
	ChallengerID string    `json:"challenger_id"`
	ChallengedID string    `json:"challenged_id"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
}

// GameRecord response type
type GameRecord struct {
	ID          string     `json:"id"`
	Word        string     `json:"word,omitempty"`
	Mode        string     `json:"mode"`
	Players     []string   `json:"players"`
	Status      string     `json:"status"`
	Winner      *string    `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Mode response type
type Mode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BoardRows   int    `json:"board_rows"`
	BoardCols   int    `json:"board_cols"`
	Description string `json:"description"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Mode: %s\n", g.Mode)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Players: %s\n", strings.Join(g.Players, ", "))

	fmt.Printf("\nYour guesses (%d/%d):\n", len(g.MyGuesses), g.MaxAttempts)
	for _, guess := range g.MyGuesses {
		fmt.Printf("  %s  %s\n", guess.Word, renderMarks(guess.Feedback.Marks))
	}

	fmt.Printf("\nOpponent attempts (%d/%d):\n", len(g.OpponentRows), g.MaxAttempts)
	for _, guess := range g.OpponentRows {
		fmt.Printf("  %s  %s\n", strings.Repeat("?", g.WordLength), renderMarks(guess.Feedback.Marks))
	}

	if g.Winner != nil {
		fmt.Printf("\nWinner: %s\n", *g.Winner)
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	fmt.Printf("Attempt %d: %s (green=%d, yellow=%d)\n",
		g.Attempt+1, renderMarks(g.Feedback.Marks), g.Feedback.Green, g.Feedback.Yellow)

	if g.Over {
		fmt.Println("\nGame over!")
		fmt.Printf("The word was: %s\n", g.Word)
		if g.Winner != nil {
			fmt.Printf("Winner: %s (%s)\n", *g.Winner, g.Reason)
		} else {
			fmt.Println("Result: tie")
		}
	}
}

// renderMarks draws feedback as one character per letter:
// G for exact, Y for present, . for absent
func renderMarks(marks []string) string {
	var b strings.Builder
	for _, m := range marks {
		switch m {
		case "exact":
			b.WriteByte('G')
		case "present":
			b.WriteByte('Y')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

func (o *Output) printQueueStatus(q QueueStatus) {
	if !q.Matched {
		fmt.Println("Waiting for an opponent...")
		return
	}
	fmt.Printf("Matched! Game: %s\n", q.GameID)
	fmt.Printf("Mode: %s\n", q.Mode)
	fmt.Printf("Players: %s\n", strings.Join(q.Players, ", "))
}

func (o *Output) printChallenge(c Challenge) {
	fmt.Printf("Challenge: %s\n", c.ID)
	fmt.Printf("From: %s\n", c.ChallengerID)
	fmt.Printf("To: %s\n", c.ChallengedID)
	fmt.Printf("Status: %s\n", c.Status)
	fmt.Printf("Expires: %s\n", c.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printGameRecord(r GameRecord) {
	fmt.Printf("Game: %s\n", r.ID)
	fmt.Printf("Mode: %s\n", r.Mode)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Players: %s\n", strings.Join(r.Players, ", "))
	if r.Word != "" {
		fmt.Printf("Word: %s\n", r.Word)
	}
	if r.Winner != nil {
		fmt.Printf("Winner: %s (%s)\n", *r.Winner, r.Reason)
	} else if r.Reason != "" {
		fmt.Printf("Result: %s\n", r.Reason)
	}
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("No games played yet")
		return
	}
	for i, e := range entries {
		fmt.Printf("%2d. %s (%s) - %d wins\n", i+1, e.DisplayName, e.PlayerID, e.Wins)
	}
}

func (o *Output) printModes(modes []Mode) {
	for _, m := range modes {
		fmt.Printf("%s (%s): %dx%d - %s\n", m.Name, m.ID, m.BoardCols, m.BoardRows, m.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
