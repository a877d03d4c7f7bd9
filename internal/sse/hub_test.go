package sse

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordduel/wordduel-go/internal/model"
)

type HubSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func (s *HubSuite) waitForClients(hub *Hub, want int) {
	s.Require().Eventually(func() bool {
		return hub.ClientCount() == want
	}, time.Second, 5*time.Millisecond)
}

// Rooms

func (s *HubSuite) TestRoomNames() {
	s.Equal(Room("game_g1"), GameRoom(model.SessionID("g1")))
	s.Equal(Room("user_p1"), UserRoom(model.PlayerID("p1")))
}

// Message formatting

func (s *HubSuite) TestFormatSingleLine() {
	msg := formatSSEMessage("guess-result", `{"green":2}`)
	s.Equal("event: guess-result\ndata: {\"green\":2}\n\n", string(msg))
}

func (s *HubSuite) TestFormatMultiLineData() {
	msg := formatSSEMessage("note", "first\nsecond")
	s.Equal("event: note\ndata: first\ndata: second\n\n", string(msg))
}

func (s *HubSuite) TestFormatEmptyData() {
	msg := formatSSEMessage("ping", "")
	s.Equal("event: ping\ndata: \n\n", string(msg))
}

func (s *HubSuite) TestFormatStripsCarriageReturns() {
	msg := formatSSEMessage("note", "first\r\nsecond")
	s.Equal("event: note\ndata: first\ndata: second\n\n", string(msg))
}

// Hub lifecycle

func (s *HubSuite) TestRegisterBroadcastUnregister() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()
	defer hub.Close()

	client := NewClient("p1")
	hub.Register(client)
	s.waitForClients(hub, 1)

	hub.BroadcastEvent("guess-result", `{"green":1}`)

	select {
	case msg := <-client.send:
		s.Contains(string(msg), "event: guess-result")
		s.Contains(string(msg), `data: {"green":1}`)
	case <-time.After(time.Second):
		s.Fail("no broadcast received")
	}

	hub.Unregister(client)
	s.waitForClients(hub, 0)

	_, open := <-client.send
	s.False(open)
}

func (s *HubSuite) TestBroadcastReachesAllClients() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()
	defer hub.Close()

	first := NewClient("p1")
	second := NewClient("p2")
	hub.Register(first)
	hub.Register(second)
	s.waitForClients(hub, 2)

	hub.Broadcast([]byte("hello"))

	for _, client := range []*Client{first, second} {
		select {
		case msg := <-client.send:
			s.Equal("hello", string(msg))
		case <-time.After(time.Second):
			s.Fail("no broadcast received")
		}
	}
}

func (s *HubSuite) TestSlowClientDoesNotBlockBroadcast() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()
	defer hub.Close()

	slow := NewClient("p1")
	hub.Register(slow)
	s.waitForClients(hub, 1)

	// Fill the client's buffer and keep going; the hub must not stall
	for i := 0; i < clientBufferSize+10; i++ {
		hub.Broadcast([]byte("x"))
	}

	s.Require().Eventually(func() bool {
		return len(slow.send) == clientBufferSize
	}, time.Second, 5*time.Millisecond)
	s.Equal(1, hub.ClientCount())
}

func (s *HubSuite) TestCloseReleasesClients() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()

	client := NewClient("p1")
	hub.Register(client)
	s.waitForClients(hub, 1)

	hub.Close()

	s.Require().Eventually(func() bool {
		select {
		case _, open := <-client.send:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func (s *HubSuite) TestRegisterOnClosedHubReportsFailure() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()
	hub.Close()

	done := make(chan bool, 1)
	go func() { done <- hub.Register(NewClient("p1")) }()

	select {
	case ok := <-done:
		s.False(ok)
	case <-time.After(time.Second):
		s.Fail("registration on a closed hub blocked")
	}
}

func (s *HubSuite) TestUnregisterOnClosedHubReturns() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()
	hub.Close()

	done := make(chan struct{})
	go func() {
		hub.Unregister(NewClient("p1"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("unregister on a closed hub blocked")
	}
}

func (s *HubSuite) TestServeSSEOnClosedHub() {
	hub := NewHub(GameRoom("g1"), s.logger)
	go hub.Run()
	hub.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)

	err := NewClient("p1").ServeSSE(rec, req, hub)
	s.Require().ErrorIs(err, ErrHubClosed)
	s.Empty(rec.Body.String(), "nothing may be written before registration succeeds")
}

// HubManager

func (s *HubSuite) TestGetOrCreateHubReturnsSameInstance() {
	manager := NewHubManager(s.logger)

	first := manager.GetOrCreateHub(GameRoom("g1"))
	second := manager.GetOrCreateHub(GameRoom("g1"))
	s.Same(first, second)

	other := manager.GetOrCreateHub(GameRoom("g2"))
	s.NotSame(first, other)

	manager.RemoveHub(GameRoom("g1"))
	manager.RemoveHub(GameRoom("g2"))
}

func (s *HubSuite) TestGetHubMissing() {
	manager := NewHubManager(s.logger)
	s.Nil(manager.GetHub(GameRoom("nope")))
}

func (s *HubSuite) TestRemoveHub() {
	manager := NewHubManager(s.logger)
	manager.GetOrCreateHub(GameRoom("g1"))

	manager.RemoveHub(GameRoom("g1"))
	s.Nil(manager.GetHub(GameRoom("g1")))

	// Removing twice is harmless
	manager.RemoveHub(GameRoom("g1"))
}

func (s *HubSuite) TestRegisterAfterSweepDoesNotBlock() {
	manager := NewHubManager(s.logger)
	hub := manager.GetOrCreateHub(GameRoom("g1"))

	// The sweep closes the empty hub before the client ever reaches it
	manager.CleanupEmptyHubs()

	done := make(chan bool, 1)
	go func() { done <- hub.Register(NewClient("p1")) }()

	select {
	case ok := <-done:
		s.False(ok)
	case <-time.After(time.Second):
		s.Fail("registration on a swept hub blocked")
	}

	// A fresh lookup hands back a live hub the client can join
	fresh := manager.GetOrCreateHub(GameRoom("g1"))
	s.NotSame(hub, fresh)

	client := NewClient("p1")
	s.True(fresh.Register(client))
	s.waitForClients(fresh, 1)

	manager.RemoveHub(GameRoom("g1"))
}

func (s *HubSuite) TestCleanupEmptyHubs() {
	manager := NewHubManager(s.logger)

	manager.GetOrCreateHub(GameRoom("g1"))
	busy := manager.GetOrCreateHub(GameRoom("g2"))

	client := NewClient("p1")
	busy.Register(client)
	s.waitForClients(busy, 1)

	manager.CleanupEmptyHubs()

	s.Nil(manager.GetHub(GameRoom("g1")))
	s.Same(busy, manager.GetHub(GameRoom("g2")))

	manager.RemoveHub(GameRoom("g2"))
}
