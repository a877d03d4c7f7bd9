package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wordduel/wordduel-go/internal/model"
	"github.com/wordduel/wordduel-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	records           map[model.SessionID]*model.GameRecord
	challenges        map[model.SessionID]*model.Challenge
	wordLists         map[int][]string
	wins              map[model.PlayerID]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		records:           make(map[model.SessionID]*model.GameRecord),
		challenges:        make(map[model.SessionID]*model.Challenge),
		wordLists:         make(map[int][]string),
		wins:              make(map[model.PlayerID]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.SessionID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, challenge *model.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.ID] = challenge
	return nil
}

func (s *Storage) GetChallenge(ctx context.Context, id model.SessionID) (*model.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[id]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *Storage) ListWaitingChallenges(ctx context.Context) ([]*model.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var waiting []*model.Challenge
	for _, c := range s.challenges {
		if c.Status == model.ChallengeStatusWaiting {
			waiting = append(waiting, c)
		}
	}
	return waiting, nil
}

// Word list operations

func (s *Storage) SaveWordList(ctx context.Context, length int, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]string, len(words))
	copy(cp, words)
	s.wordLists[length] = cp
	return nil
}

func (s *Storage) GetWordList(ctx context.Context, length int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words, ok := s.wordLists[length]
	if !ok || len(words) == 0 {
		return nil, model.ErrNoWordsForLength
	}
	cp := make([]string, len(words))
	copy(cp, words)
	return cp, nil
}

// Leaderboard operations

func (s *Storage) IncrementWins(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[playerID]++
	return nil
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.wins))
	for pid, wins := range s.wins {
		entry := model.LeaderboardEntry{PlayerID: pid, Wins: wins}
		if player, ok := s.players[pid]; ok {
			entry.DisplayName = player.DisplayName
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
