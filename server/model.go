package server

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/model"
)

// Participant is anything a room can seat and push messages to.
type Participant interface {
	ID() string
	// Send queues m without blocking; false means it was dropped.
	Send(m model.ServerMessage) bool
}

type GameServer struct {
	mu           sync.Mutex
	GameSessions map[string]*GameSession
	Upgrader     *websocket.Upgrader
	Config       Config
	newCode      func(n int) string
}

type GameSessionState int

const (
	GS_WAIT GameSessionState = iota + 1
	GS_PLAY
	GS_OVER
	GS_CLOSED
)

// GameSession is one room. Membership is guarded by mu; the match and
// the turn timer belong to the Loop goroutine.
type GameSession struct {
	Code string

	mu    sync.Mutex
	State GameSessionState
	seats map[model.Side]Participant

	match    *model.Match
	timer    *model.TurnTimer
	Events   chan PlayerEvent
	expiries chan uint64
	queries  chan chan RoomInfo
	done     chan struct{}
	close    sync.Once
	log      *log.Entry
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_SEATED
	PS_CLOSED
)

type PlayerSession struct {
	Id     string
	Conn   *websocket.Conn
	server *GameServer

	// read loop only
	State PlayerSessionState
	room  *GameSession
	side  model.Side

	MessagesToSend chan model.ServerMessage
	done           chan struct{}
	close          sync.Once
	log            *log.Entry
}
