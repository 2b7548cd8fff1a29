package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/model"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

const codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeLetters[rand.Intn(len(codeLetters))]
	}
	return string(b)
}

func NewGameServer(cfg Config) *GameServer {
	return &GameServer{
		GameSessions: make(map[string]*GameSession),
		Upgrader:     &websocket.Upgrader{},
		Config:       cfg.withDefaults(),
		newCode:      randomCode,
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom opens a new room, seats p in it as side A and tells p the code.
func (s *GameServer) CreateRoom(p Participant) (*GameSession, model.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.newCode(s.Config.CodeLength)
	for _, taken := s.GameSessions[code]; taken; _, taken = s.GameSessions[code] {
		code = s.newCode(s.Config.CodeLength)
	}
	gs := newGameSession(code, s.Config.TurnTime)
	s.GameSessions[code] = gs
	go gs.Loop()

	side, _, _ := gs.seat(p)
	gs.log.WithField("player", p.ID()).Info("room created")
	gs.reply(p, model.ServerMessage{Type: model.MsgCreated, Side: side})
	return gs, side
}

// JoinRoom seats p in the room with the given code and tells p its side.
// The seat is taken atomically; filling the second seat starts the match.
func (s *GameServer) JoinRoom(code string, p Participant) (*GameSession, model.Side, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, ok := s.GameSessions[NormalizeCode(code)]
	if !ok {
		return nil, model.NoSide, model.ErrRoomNotFound
	}
	side, full, err := gs.seat(p)
	if err != nil {
		return nil, model.NoSide, err
	}
	gs.log.WithFields(log.Fields{"player": p.ID(), "side": side}).Info("player joined")
	gs.reply(p, model.ServerMessage{Type: model.MsgJoined, Side: side})
	if full {
		gs.post(PlayerEvent{Kind: EV_START})
	}
	return gs, side, nil
}

// Leave removes p from gs and destroys the room once nobody is left.
func (s *GameServer) Leave(gs *GameSession, p Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	side, remaining := gs.unseat(p)
	if side == model.NoSide {
		return
	}
	gs.log.WithFields(log.Fields{"player": p.ID(), "side": side}).Info("player left")
	if remaining == 0 {
		delete(s.GameSessions, gs.Code)
		gs.Close()
		gs.log.Info("room deleted, nobody left")
		return
	}
	gs.post(PlayerEvent{Kind: EV_LEFT, Side: side})
}

func (s *GameServer) Room(code string) (*GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.GameSessions[NormalizeCode(code)]
	return gs, ok
}

func (s *GameServer) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.GameSessions)
}

// Close stops every room loop.
func (s *GameServer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, gs := range s.GameSessions {
		gs.Close()
		delete(s.GameSessions, code)
	}
}

// HandleHttpCall upgrades to a websocket and serves one player until the
// connection drops.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received from %s", r.RemoteAddr)
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client.
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		ps := newPlayerSession(s, con, uuid.NewString())
		go ps.LoopChannelWrite()
		ps.LoopChannelRead()
	}
}

func (s *GameServer) HandleRoomInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := way.Param(r.Context(), "code")
		gs, ok := s.Room(code)
		if !ok {
			writeError(w, model.ErrRoomNotFound)
			return
		}
		info, err := gs.Info(s.Config.RequestTimeout)
		if err != nil {
			log.Warnf("HandleRoomInfo %s: %v", gs.Code, err)
			writeError(w, err)
			return
		}
		writeJSON(w, HTTP_SUCCESS, info)
	}
}

func (s *GameServer) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, HTTP_SUCCESS, map[string]int{"rooms": s.RoomCount()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON error: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, responseCodeOf(err).ToHttp(), map[string]string{"error": err.Error()})
}
