package server

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/model"
)

var errRoomBusy = errors.New("room_busy")

func newGameSession(code string, turnTime time.Duration) *GameSession {
	gs := &GameSession{
		Code:     code,
		State:    GS_WAIT,
		seats:    make(map[model.Side]Participant),
		match:    model.NewMatch(),
		Events:   make(chan PlayerEvent, 32),
		expiries: make(chan uint64, 1),
		queries:  make(chan chan RoomInfo),
		done:     make(chan struct{}),
		log:      log.WithField("room", code),
	}
	gs.timer = model.NewTurnTimer(turnTime, func(gen uint64) {
		select {
		case gs.expiries <- gen:
		case <-gs.done:
		}
	})
	return gs
}

// seat gives p the free side, A first. full reports that both seats are
// now taken.
func (gs *GameSession) seat(p Participant) (side model.Side, full bool, err error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.State == GS_CLOSED {
		return model.NoSide, false, model.ErrRoomNotFound
	}
	for _, s := range []model.Side{model.SideA, model.SideB} {
		if _, taken := gs.seats[s]; !taken {
			gs.seats[s] = p
			return s, len(gs.seats) == 2, nil
		}
	}
	return model.NoSide, false, model.ErrRoomFull
}

func (gs *GameSession) unseat(p Participant) (side model.Side, remaining int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for s, seated := range gs.seats {
		if seated.ID() == p.ID() {
			delete(gs.seats, s)
			return s, len(gs.seats)
		}
	}
	return model.NoSide, len(gs.seats)
}

func (gs *GameSession) Players() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return len(gs.seats)
}

func (gs *GameSession) setState(st GameSessionState) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.State != GS_CLOSED {
		gs.State = st
	}
}

func (gs *GameSession) getState() GameSessionState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.State
}

// post hands an event to the Loop; events for a closed room are dropped.
func (gs *GameSession) post(ev PlayerEvent) {
	select {
	case gs.Events <- ev:
	case <-gs.done:
	}
}

func (gs *GameSession) Close() {
	gs.close.Do(func() {
		gs.setState(GS_CLOSED)
		close(gs.done)
	})
}

// Info asks the Loop for a summary of the room.
func (gs *GameSession) Info(timeout time.Duration) (RoomInfo, error) {
	select {
	case <-gs.done:
		return RoomInfo{}, model.ErrRoomNotFound
	default:
	}
	reply := make(chan RoomInfo, 1)
	select {
	case gs.queries <- reply:
	case <-gs.done:
		return RoomInfo{}, model.ErrRoomNotFound
	case <-time.After(timeout):
		return RoomInfo{}, errRoomBusy
	}
	select {
	case info := <-reply:
		return info, nil
	case <-time.After(timeout):
		return RoomInfo{}, errRoomBusy
	}
}

// Loop owns the match: every move, selection, reset and expiry of this
// room is applied here, one at a time, and broadcast in that order.
func (gs *GameSession) Loop() {
	gs.log.Info("GameSession.Loop start")
	defer gs.log.Info("GameSession.Loop end")
	for {
		select {
		case <-gs.done:
			gs.timer.Stop()
			return
		case ev := <-gs.Events:
			gs.handle(ev)
		case gen := <-gs.expiries:
			gs.expire(gen)
		case reply := <-gs.queries:
			reply <- gs.info()
		}
	}
}

func (gs *GameSession) handle(ev PlayerEvent) {
	switch ev.Kind {
	case EV_START:
		gs.match.Reset()
		gs.setState(GS_PLAY)
		gs.timer.Restart()
		gs.log.Info("match started")
		gs.broadcast(model.ServerMessage{Type: model.MsgStart})
	case EV_LEFT:
		gs.timer.Stop()
		gs.setState(GS_WAIT)
		gs.broadcast(model.ServerMessage{Type: model.MsgOpponentLeft, Side: ev.Side})
	case EV_RESET:
		gs.match.Reset()
		if gs.Players() == 2 {
			gs.setState(GS_PLAY)
			gs.timer.Restart()
		}
		gs.log.WithField("side", ev.Side).Info("match reset")
		gs.broadcast(model.ServerMessage{Type: model.MsgResetDone, Side: ev.Side})
	case EV_SELECT, EV_MOVE:
		gs.play(ev)
	default:
		gs.log.Warnf("unexpected event kind %d", ev.Kind)
	}
}

func (gs *GameSession) play(ev PlayerEvent) {
	if gs.getState() == GS_WAIT {
		gs.reply(ev.Player, model.ServerMessage{Type: model.MsgError, Error: model.ErrorCode(model.ErrNotYourTurn)})
		return
	}
	var (
		applied *model.HistoryEntry
		err     error
	)
	if ev.Kind == EV_MOVE {
		var h model.HistoryEntry
		h, err = gs.match.Play(ev.Side, ev.Move)
		if err == nil {
			applied = &h
		}
	} else {
		applied, err = gs.match.Click(ev.Side, ev.Cell)
	}

	switch {
	case errors.Is(err, model.ErrInvalidMove):
		gs.log.WithField("side", ev.Side).Infof("rejected: %v", err)
		gs.reply(ev.Player, model.ServerMessage{Type: model.MsgInvalidMove, Error: model.ErrorCode(err), State: gs.snapshot()})
		return
	case err != nil:
		gs.reply(ev.Player, model.ServerMessage{Type: model.MsgError, Error: model.ErrorCode(err)})
		return
	}

	if applied != nil {
		gs.log.WithField("side", ev.Side).Info(applied.String())
		if gs.match.Terminal() {
			gs.timer.Stop()
			gs.setState(GS_OVER)
			gs.log.WithField("winner", gs.match.Winner).Info("match over")
		} else {
			gs.timer.Restart()
		}
	}
	gs.broadcast(model.ServerMessage{Type: model.MsgState})
}

func (gs *GameSession) expire(gen uint64) {
	if gen != gs.timer.Generation() || gs.getState() != GS_PLAY {
		return
	}
	out := gs.match.Turn
	if !gs.match.ForfeitTurn() {
		return
	}
	gs.timer.Restart()
	gs.log.WithField("side", out).Info("time up, turn forfeited")
	gs.broadcast(model.ServerMessage{Type: model.MsgTimeUp, Side: out})
}

func (gs *GameSession) snapshot() *model.MatchSnapshot {
	s := gs.match.Snapshot().WithDeadline(gs.timer.Deadline())
	return &s
}

func (gs *GameSession) info() RoomInfo {
	info := RoomInfo{
		Code:    gs.Code,
		Players: gs.Players(),
		State:   gs.getState().Name(),
		Turn:    gs.match.Turn.String(),
		Moves:   len(gs.match.History),
	}
	if gs.match.Winner != model.NoSide {
		info.Winner = gs.match.Winner.String()
	}
	return info
}

// broadcast stamps m with the room code and the current state and pushes
// it to every seated participant.
func (gs *GameSession) broadcast(m model.ServerMessage) {
	m.Code = gs.Code
	if m.State == nil {
		m.State = gs.snapshot()
	}
	gs.mu.Lock()
	seated := make([]Participant, 0, len(gs.seats))
	for _, p := range gs.seats {
		seated = append(seated, p)
	}
	gs.mu.Unlock()

	for _, p := range seated {
		if !p.Send(m) {
			gs.log.WithField("player", p.ID()).Warn("broadcast dropped, send buffer full")
		}
	}
}

func (gs *GameSession) reply(p Participant, m model.ServerMessage) {
	if p == nil {
		return
	}
	m.Code = gs.Code
	if !p.Send(m) {
		gs.log.WithField("player", p.ID()).Warn("reply dropped, send buffer full")
	}
}
