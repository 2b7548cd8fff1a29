package model

import (
	"fmt"
	"time"
)

type ClientMessageType int8

const (
	MsgCreate ClientMessageType = iota + 1
	MsgJoin
	MsgSelect
	MsgMove
	MsgReset
)

type ClientMessage struct {
	Type ClientMessageType
	Code string
	Cell Square
	Move Move
}

type ServerMessageType int8

const (
	MsgCreated ServerMessageType = iota + 1
	MsgJoined
	MsgStart
	MsgState
	MsgInvalidMove
	MsgError
	MsgTimeUp
	MsgResetDone
	MsgOpponentLeft
)

func (t ServerMessageType) Name() string {
	switch t {
	case MsgCreated:
		return "CREATED"
	case MsgJoined:
		return "JOINED"
	case MsgStart:
		return "START"
	case MsgState:
		return "STATE"
	case MsgInvalidMove:
		return "INVALID_MOVE"
	case MsgError:
		return "ERROR"
	case MsgTimeUp:
		return "TIME_UP"
	case MsgResetDone:
		return "RESET"
	case MsgOpponentLeft:
		return "OPPONENT_LEFT"
	default:
		return fmt.Sprintf("n/a:%d", t)
	}
}

type ServerMessage struct {
	Type  ServerMessageType
	Code  string
	Side  Side
	Error string
	State *MatchSnapshot
}

// MatchSnapshot is the full match state as broadcast to participants.
// Cells is a plain slice grid so a receiver can detect a wrong shape.
type MatchSnapshot struct {
	Cells     [][]Cell
	Turn      Side
	Phase     Phase
	Selecting bool
	Selected  Square
	Targets   []Square
	Winner    Side
	History   []HistoryEntry
	Deadline  int64
}

func (m *Match) Snapshot() MatchSnapshot {
	cells := make([][]Cell, Size)
	for r := range cells {
		cells[r] = make([]Cell, Size)
		copy(cells[r], m.Board.Cells[r][:])
	}
	s := MatchSnapshot{
		Cells:   cells,
		Turn:    m.Turn,
		Phase:   m.Phase,
		Targets: m.Targets(),
		Winner:  m.Winner,
		History: append([]HistoryEntry(nil), m.History...),
	}
	if m.Phase == AwaitingDestination {
		s.Selecting = true
		s.Selected = m.Selected
	}
	return s
}

func (s MatchSnapshot) WithDeadline(t time.Time) MatchSnapshot {
	if !t.IsZero() {
		s.Deadline = t.UnixNano() / int64(time.Millisecond)
	}
	return s
}

func validSide(s Side) bool {
	return s == SideA || s == SideB
}

func (s MatchSnapshot) Validate() error {
	if len(s.Cells) != Size {
		return fmt.Errorf("%w: %d rows", ErrMalformedState, len(s.Cells))
	}
	for r, row := range s.Cells {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells", ErrMalformedState, r, len(row))
		}
		for c, cell := range row {
			if !cell.Occupied {
				continue
			}
			if !validSide(cell.Piece.Side) || cell.Piece.Kind < Pawn || cell.Piece.Kind > DiagonalHero {
				return fmt.Errorf("%w: bad piece at (%d, %d)", ErrMalformedState, r, c)
			}
		}
	}
	if !validSide(s.Turn) {
		return fmt.Errorf("%w: turn %d", ErrMalformedState, s.Turn)
	}
	if s.Phase < AwaitingSelection || s.Phase > Finished {
		return fmt.Errorf("%w: phase %d", ErrMalformedState, s.Phase)
	}
	if (s.Phase == AwaitingDestination) != s.Selecting {
		return fmt.Errorf("%w: selection does not match phase", ErrMalformedState)
	}
	if s.Selecting && !s.Selected.InBounds() {
		return fmt.Errorf("%w: selection %v", ErrMalformedState, s.Selected)
	}
	return nil
}

// RestoreMatch rebuilds a Match from a snapshot, rejecting malformed ones.
func RestoreMatch(s MatchSnapshot) (*Match, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := &Match{
		Turn:    s.Turn,
		Phase:   s.Phase,
		Winner:  s.Winner,
		History: append([]HistoryEntry(nil), s.History...),
	}
	for r := range s.Cells {
		copy(m.Board.Cells[r][:], s.Cells[r])
	}
	if s.Selecting {
		m.Selected = s.Selected
	}
	return m, nil
}
