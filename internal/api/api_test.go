package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wordduel/wordduel-go/internal/api/response"
	"github.com/wordduel/wordduel-go/internal/factory"
)

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
	client *http.Client
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.Require().NoError(s.app.LoadTestWords())

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router := NewRouter(RouterConfig{
		Logger:             logger,
		AuthService:        s.app.AuthService,
		MatchController:    s.app.MatchController,
		MatchmakingService: s.app.MatchmakingService,
		ChallengeService:   s.app.ChallengeService,
		StatsService:       s.app.StatsService,
		Hubs:               s.app.HubManager,
		Broadcaster:        s.app.Broadcaster,
	})
	s.server = httptest.NewServer(router)
	s.client = s.server.Client()
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) do(method, path, token string, body any, out any) *http.Response {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, buf)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp
}

func (s *APISuite) createGuest(name string) response.AuthResponse {
	var auth response.AuthResponse
	resp := s.do(http.MethodPost, "/api/v1/players/guest", "", map[string]string{"display_name": name}, &auth)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return auth
}

// matchTwoPlayers queues both players into a classic duel and returns
// the game id with both auth payloads.
func (s *APISuite) matchTwoPlayers() (string, response.AuthResponse, response.AuthResponse) {
	s.app.MockRandom.QueueString("GAME00000001")

	alice := s.createGuest("Alice")
	bob := s.createGuest("Bob")

	var waiting response.QueueStatus
	resp := s.do(http.MethodPost, "/api/v1/queue", alice.SessionToken, map[string]string{"mode": "classic"}, &waiting)
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)
	s.Require().False(waiting.Matched)

	var matched response.QueueStatus
	resp = s.do(http.MethodPost, "/api/v1/queue", bob.SessionToken, map[string]string{"mode": "classic"}, &matched)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().True(matched.Matched)
	s.Require().NotEmpty(matched.GameID)

	return matched.GameID, alice, bob
}

// Public endpoints

func (s *APISuite) TestHealth() {
	var health map[string]string
	resp := s.do(http.MethodGet, "/api/v1/health", "", nil, &health)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", health["status"])
}

func (s *APISuite) TestModes() {
	var modes []response.Mode
	resp := s.do(http.MethodGet, "/api/v1/modes", "", nil, &modes)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().NotEmpty(modes)
	s.Equal("classic", modes[0].ID)
	s.Equal(5, modes[0].BoardCols)
}

// Auth

func (s *APISuite) TestGuestFlow() {
	auth := s.createGuest("Alice")
	s.NotEmpty(auth.SessionToken)
	s.True(auth.Player.IsGuest)

	var me response.Player
	resp := s.do(http.MethodGet, "/api/v1/players/me", auth.SessionToken, nil, &me)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(auth.Player.ID, me.ID)
}

func (s *APISuite) TestRegisterAndLogin() {
	var registered response.AuthResponse
	resp := s.do(http.MethodPost, "/api/v1/players/register", "", map[string]string{
		"username":     "alice",
		"password":     "hunter22",
		"display_name": "Alice",
	}, &registered)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.False(registered.Player.IsGuest)

	var loggedIn response.AuthResponse
	resp = s.do(http.MethodPost, "/api/v1/players/login", "", map[string]string{
		"username": "alice",
		"password": "hunter22",
	}, &loggedIn)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(registered.Player.ID, loggedIn.Player.ID)
}

func (s *APISuite) TestUnauthenticatedRejected() {
	resp := s.do(http.MethodGet, "/api/v1/players/me", "", nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/v1/queue", "bogus-token", map[string]string{"mode": "classic"}, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestLogoutInvalidatesToken() {
	auth := s.createGuest("Alice")

	resp := s.do(http.MethodPost, "/api/v1/players/logout", auth.SessionToken, nil, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/players/me", auth.SessionToken, nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// Matchmaking and gameplay

func (s *APISuite) TestFullDuel() {
	gameID, alice, bob := s.matchTwoPlayers()

	// Both players see the same board shell, neither sees the word
	var state response.GameState
	resp := s.do(http.MethodGet, "/api/v1/games/"+gameID, alice.SessionToken, nil, &state)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("active", state.Status)
	s.Equal(5, state.WordLength)
	s.Equal(6, state.MaxAttempts)
	s.Empty(state.MyGuesses)

	// Secret is APPLE; ALERT scores one green, two yellows
	var guess response.GuessResponse
	resp = s.do(http.MethodPost, "/api/v1/games/"+gameID+"/guesses", alice.SessionToken,
		map[string]string{"word": "ALERT"}, &guess)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(1, guess.Feedback.Green)
	s.Equal(2, guess.Feedback.Yellow)
	s.False(guess.Over)

	// Opponent sees the row but not the word
	resp = s.do(http.MethodGet, "/api/v1/games/"+gameID, bob.SessionToken, nil, &state)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(state.OpponentRows, 1)
	s.Empty(state.OpponentRows[0].Word)
	s.Equal(1, state.OpponentRows[0].Feedback.Green)

	// Winning guess ends the duel and reveals the word
	resp = s.do(http.MethodPost, "/api/v1/games/"+gameID+"/guesses", bob.SessionToken,
		map[string]string{"word": "APPLE"}, &guess)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(guess.Over)
	s.Equal("APPLE", guess.Word)
	s.Require().NotNil(guess.Winner)
	s.Equal(bob.Player.ID, *guess.Winner)
	s.Equal("guessed", guess.Reason)

	// The live session is gone
	resp = s.do(http.MethodGet, "/api/v1/games/"+gameID, alice.SessionToken, nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	// The persisted record survives with full detail
	var record response.GameRecord
	resp = s.do(http.MethodGet, "/api/v1/games/"+gameID+"/record", alice.SessionToken, nil, &record)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("completed", record.Status)
	s.Equal("APPLE", record.Word)
	s.Require().NotNil(record.Winner)
	s.Equal(bob.Player.ID, *record.Winner)

	// Winner shows up on the leaderboard
	var top []response.LeaderboardEntry
	resp = s.do(http.MethodGet, "/api/v1/leaderboard", "", nil, &top)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(top, 1)
	s.Equal(bob.Player.ID, top[0].PlayerID)
	s.Equal(1, top[0].Wins)
}

func (s *APISuite) TestGuessValidation() {
	gameID, alice, _ := s.matchTwoPlayers()

	resp := s.do(http.MethodPost, "/api/v1/games/"+gameID+"/guesses", alice.SessionToken,
		map[string]string{"word": "TOOLONGWORD"}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	outsider := s.createGuest("Mallory")
	resp = s.do(http.MethodPost, "/api/v1/games/"+gameID+"/guesses", outsider.SessionToken,
		map[string]string{"word": "ALERT"}, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/games/"+gameID, outsider.SessionToken, nil, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *APISuite) TestForfeit() {
	gameID, alice, bob := s.matchTwoPlayers()

	var result response.GuessResponse
	resp := s.do(http.MethodPost, "/api/v1/games/"+gameID+"/forfeit", alice.SessionToken, nil, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(result.Over)
	s.Require().NotNil(result.Winner)
	s.Equal(bob.Player.ID, *result.Winner)
	s.Equal("forfeit", result.Reason)

	resp = s.do(http.MethodGet, "/api/v1/games/"+gameID, bob.SessionToken, nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestDuplicateQueueRejected() {
	alice := s.createGuest("Alice")

	resp := s.do(http.MethodPost, "/api/v1/queue", alice.SessionToken, map[string]string{"mode": "classic"}, nil)
	s.Equal(http.StatusAccepted, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/v1/queue", alice.SessionToken, map[string]string{"mode": "classic"}, nil)
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/api/v1/queue", alice.SessionToken, nil, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
}

// Challenges

func (s *APISuite) TestChallengeFlow() {
	alice := s.createGuest("Alice")
	bob := s.createGuest("Bob")

	var challenge response.Challenge
	resp := s.do(http.MethodPost, "/api/v1/challenges", alice.SessionToken,
		map[string]string{"player_id": alice.Player.ID}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/v1/challenges", alice.SessionToken,
		map[string]string{"player_id": bob.Player.ID}, &challenge)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("waiting", challenge.Status)

	// Only the challenged player may accept; the challenger is told
	// nothing exists at that path
	resp = s.do(http.MethodPost, "/api/v1/challenges/"+challenge.ID+"/accept", alice.SessionToken, nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var state response.GameState
	resp = s.do(http.MethodPost, "/api/v1/challenges/"+challenge.ID+"/accept", bob.SessionToken, nil, &state)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(challenge.ID, state.ID)
	s.Equal("challenge", state.Mode)
	s.Equal("active", state.Status)
}

func (s *APISuite) TestChallengeReject() {
	alice := s.createGuest("Alice")
	bob := s.createGuest("Bob")

	var challenge response.Challenge
	resp := s.do(http.MethodPost, "/api/v1/challenges", alice.SessionToken,
		map[string]string{"player_id": bob.Player.ID}, &challenge)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var rejected response.Challenge
	resp = s.do(http.MethodPost, "/api/v1/challenges/"+challenge.ID+"/reject", bob.SessionToken, nil, &rejected)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("rejected", rejected.Status)

	resp = s.do(http.MethodPost, "/api/v1/challenges/"+challenge.ID+"/accept", bob.SessionToken, nil, nil)
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *APISuite) TestChallengeHiddenFromOutsiders() {
	alice := s.createGuest("Alice")
	bob := s.createGuest("Bob")
	outsider := s.createGuest("Mallory")

	var challenge response.Challenge
	resp := s.do(http.MethodPost, "/api/v1/challenges", alice.SessionToken,
		map[string]string{"player_id": bob.Player.ID}, &challenge)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/challenges/"+challenge.ID, outsider.SessionToken, nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/challenges/"+challenge.ID, bob.SessionToken, nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

// Leaderboard validation

func (s *APISuite) TestLeaderboardLimitValidation() {
	resp := s.do(http.MethodGet, "/api/v1/leaderboard?limit=0", "", nil, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/leaderboard?limit=5", "", nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}
