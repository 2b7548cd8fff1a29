package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/model"
)

func newPlayerSession(s *GameServer, conn *websocket.Conn, id string) *PlayerSession {
	return &PlayerSession{
		Id:             id,
		Conn:           conn,
		server:         s,
		State:          PS_NEW,
		MessagesToSend: make(chan model.ServerMessage, s.Config.SendBuffer),
		done:           make(chan struct{}),
		log:            log.WithField("player", id),
	}
}

func (ps *PlayerSession) ID() string {
	return ps.Id
}

func (ps *PlayerSession) Send(m model.ServerMessage) bool {
	select {
	case <-ps.done:
		return false
	default:
	}
	select {
	case ps.MessagesToSend <- m:
		return true
	default:
		return false
	}
}

func (ps *PlayerSession) shutdown() {
	ps.close.Do(func() {
		close(ps.done)
	})
}

// LoopChannelRead decodes client frames until the connection fails, then
// gives up the seat.
func (ps *PlayerSession) LoopChannelRead() {
	ps.log.Info("LoopChannelRead STARTED")
	cfg := ps.server.Config
	defer func() {
		if ps.room != nil {
			ps.server.Leave(ps.room, ps)
		}
		ps.State = PS_CLOSED
		ps.shutdown()
		ps.log.Info("LoopChannelRead ENDED")
	}()

	ps.Conn.SetReadLimit(cfg.MaxMessageSize)
	_ = ps.Conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	ps.Conn.SetPongHandler(func(string) error {
		return ps.Conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	})

	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ps.log.Warnf("LoopChannelRead err reading message from Conn %v", err)
			}
			return
		}
		cm, err := model.DecodeClientMessage(r)
		if err != nil {
			ps.log.Warnf("cant decode: %v", err)
			ps.Send(model.ServerMessage{Type: model.MsgError, Error: model.ErrorCode(model.ErrUnknownMessage)})
			return
		}
		_ = ps.Conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		ps.dispatch(cm)
	}
}

func (ps *PlayerSession) dispatch(cm model.ClientMessage) {
	ps.log.Debugf("received %+v", cm)
	switch cm.Type {
	case model.MsgCreate:
		if ps.room != nil {
			ps.fail(model.ErrUnknownMessage)
			return
		}
		gs, side := ps.server.CreateRoom(ps)
		ps.seated(gs, side)
	case model.MsgJoin:
		if ps.room != nil {
			ps.fail(model.ErrUnknownMessage)
			return
		}
		gs, side, err := ps.server.JoinRoom(cm.Code, ps)
		if err != nil {
			ps.log.Infof("join %q refused: %v", cm.Code, err)
			ps.fail(err)
			return
		}
		ps.seated(gs, side)
	case model.MsgSelect, model.MsgMove, model.MsgReset:
		if ps.room == nil {
			ps.fail(model.ErrRoomNotFound)
			return
		}
		ev := PlayerEvent{Player: ps, Side: ps.side, Cell: cm.Cell, Move: cm.Move}
		switch cm.Type {
		case model.MsgSelect:
			ev.Kind = EV_SELECT
		case model.MsgMove:
			ev.Kind = EV_MOVE
		default:
			ev.Kind = EV_RESET
		}
		ps.room.post(ev)
	default:
		ps.fail(model.ErrUnknownMessage)
	}
}

func (ps *PlayerSession) seated(gs *GameSession, side model.Side) {
	ps.room = gs
	ps.side = side
	ps.State = PS_SEATED
	ps.log.WithFields(log.Fields{"room": gs.Code, "side": side}).Info("seated")
}

func (ps *PlayerSession) fail(err error) {
	ps.Send(model.ServerMessage{Type: model.MsgError, Error: model.ErrorCode(err)})
}

// LoopChannelWrite is the only writer on the connection.
func (ps *PlayerSession) LoopChannelWrite() {
	ps.log.Info("PlayerSession.LoopChannelWrite STARTED")
	cfg := ps.server.Config
	ticker := time.NewTicker(cfg.PingPeriod())
	defer func() {
		ticker.Stop()
		ps.Conn.Close()
		ps.log.Info("LoopChannelWrite ENDED")
	}()

	for {
		select {
		case <-ps.done:
			_ = ps.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(cfg.WriteWait))
			return
		case mes := <-ps.MessagesToSend:
			_ = ps.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				ps.log.Warnf("PlayerSession.LoopChannelWrite cant get writer %v", err)
				return
			}
			if err := model.EncodeServerMessage(w, mes); err != nil {
				ps.log.Warnf("PlayerSession.LoopChannelWrite cant encode %v", err)
				return
			}
			if err := w.Close(); err != nil {
				ps.log.Warnf("PlayerSession.LoopChannelWrite cant flush %v", err)
				return
			}
		case <-ticker.C:
			if err := ps.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(cfg.WriteWait)); err != nil {
				ps.log.Warnf("PlayerSession.LoopChannelWrite ping failed %v", err)
				return
			}
		}
	}
}
