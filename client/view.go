package client

import (
	"fmt"
	"time"

	"github.com/zucenko/herogrid/model"
)

// View is the client's picture of its room, rebuilt from server messages.
// It is owned by the render loop and not safe for concurrent use.
type View struct {
	Code     string
	Side     model.Side
	Match    *model.Match
	Targets  []model.Square
	Deadline time.Time
	Started  bool
	Alert    string
}

// Apply folds m into the view and returns the history entries that are
// new since the previous state. A malformed snapshot is rejected and the
// view keeps its last good state.
func (v *View) Apply(m model.ServerMessage) ([]model.HistoryEntry, error) {
	if m.Code != "" {
		v.Code = m.Code
	}
	switch m.Type {
	case model.MsgCreated:
		v.Side = m.Side
		v.Alert = fmt.Sprintf("room %s created, waiting for an opponent", m.Code)
		return nil, nil
	case model.MsgJoined:
		v.Side = m.Side
		v.Alert = fmt.Sprintf("joined room %s as %s", m.Code, m.Side)
		return nil, nil
	case model.MsgError:
		v.Alert = describe(m.Error)
		return nil, nil
	}

	var fresh []model.HistoryEntry
	if m.State != nil {
		restored, err := model.RestoreMatch(*m.State)
		if err != nil {
			v.Alert = "ignored a malformed update"
			return nil, err
		}
		if v.Match != nil && len(restored.History) > len(v.Match.History) {
			fresh = restored.History[len(v.Match.History):]
		}
		v.Match = restored
		v.Targets = append([]model.Square(nil), m.State.Targets...)
		v.Deadline = time.Time{}
		if m.State.Deadline > 0 {
			v.Deadline = time.Unix(0, m.State.Deadline*int64(time.Millisecond))
		}
	}

	switch m.Type {
	case model.MsgStart:
		v.Started = true
		v.Alert = "match started"
	case model.MsgInvalidMove:
		v.Alert = "invalid move"
	case model.MsgTimeUp:
		if m.Side == v.Side {
			v.Alert = "time up, your turn was skipped"
		} else {
			v.Alert = "opponent ran out of time"
		}
	case model.MsgResetDone:
		v.Started = true
		v.Alert = fmt.Sprintf("match reset by %s", m.Side)
	case model.MsgOpponentLeft:
		v.Started = false
		v.Alert = "opponent left, waiting for a new one"
	case model.MsgState:
		if len(fresh) > 0 {
			v.Alert = fresh[len(fresh)-1].String()
		}
	default:
		return fresh, fmt.Errorf("%w: %s", model.ErrUnknownMessage, m.Type.Name())
	}
	return fresh, nil
}

func (v *View) MyTurn() bool {
	return v.Started && v.Match != nil && !v.Match.Terminal() && v.Match.Turn == v.Side
}

func (v *View) Selected() (model.Square, bool) {
	if v.Match == nil || v.Match.Phase != model.AwaitingDestination {
		return model.Square{}, false
	}
	return v.Match.Selected, true
}

// Remaining is the time left on the current turn, never negative.
func (v *View) Remaining(now time.Time) time.Duration {
	if v.Deadline.IsZero() || !v.Started {
		return 0
	}
	if d := v.Deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (v *View) Status() string {
	switch {
	case v.Match != nil && v.Match.Terminal():
		if v.Match.Winner == v.Side {
			return "you win"
		}
		return "you lose"
	case !v.Started:
		return "waiting for opponent"
	case v.MyTurn():
		return "your turn"
	default:
		return "opponent's turn"
	}
}

func describe(code string) string {
	switch model.ErrorFromCode(code) {
	case model.ErrRoomFull:
		return "that room is full"
	case model.ErrRoomNotFound:
		return "no room with that code"
	case model.ErrNotYourTurn:
		return "not your turn"
	case model.ErrMatchOver:
		return "the match is over, press R to play again"
	default:
		return "error: " + code
	}
}
