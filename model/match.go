package model

import "fmt"

type Phase int8

const (
	AwaitingSelection Phase = iota + 1
	AwaitingDestination
	Finished
)

func (p Phase) Name() string {
	switch p {
	case AwaitingSelection:
		return "AWAITING_SELECTION"
	case AwaitingDestination:
		return "AWAITING_DESTINATION"
	case Finished:
		return "FINISHED"
	default:
		return fmt.Sprintf("N/A(%d)", p)
	}
}

type HistoryEntry struct {
	Mover    Side
	Piece    Piece
	Move     Move
	Captured bool
	Taken    Piece
}

func (h HistoryEntry) String() string {
	s := fmt.Sprintf("%s moved from %v to %v", h.Piece.Name(), h.Move.From, h.Move.To)
	if h.Captured {
		s += " and captured " + h.Taken.Name()
	}
	return s
}

// Match is the authoritative state of one game. It is not safe for
// concurrent use; callers serialize access.
type Match struct {
	Board    Board
	Turn     Side
	Phase    Phase
	Selected Square
	Winner   Side
	History  []HistoryEntry
}

func NewMatch() *Match {
	m := &Match{}
	m.Reset()
	return m
}

// Reset puts the match back to the initial layout with side A to move.
func (m *Match) Reset() {
	m.Board = NewInitialBoard()
	m.Turn = SideA
	m.Phase = AwaitingSelection
	m.Selected = Square{}
	m.Winner = NoSide
	m.History = nil
}

func (m *Match) Terminal() bool {
	return m.Phase == Finished
}

func (m *Match) check(side Side) error {
	if m.Phase == Finished {
		return ErrMatchOver
	}
	if side != m.Turn {
		return ErrNotYourTurn
	}
	return nil
}

// Select picks the piece on sq as the origin of the next move. Picking
// anything but an own piece, or selecting while a selection is already
// pending, changes nothing and reports false.
func (m *Match) Select(side Side, sq Square) (bool, error) {
	if err := m.check(side); err != nil {
		return false, err
	}
	if m.Phase != AwaitingSelection {
		return false, nil
	}
	if !m.Board.At(sq).OwnedBy(side) {
		return false, nil
	}
	m.Selected = sq
	m.Phase = AwaitingDestination
	return true, nil
}

// Destination proposes to as the target of the selected piece. An illegal
// proposal drops the selection and leaves the board untouched.
func (m *Match) Destination(side Side, to Square) (HistoryEntry, error) {
	if err := m.check(side); err != nil {
		return HistoryEntry{}, err
	}
	if m.Phase != AwaitingDestination {
		return HistoryEntry{}, ErrNoSelection
	}
	mv := Move{From: m.Selected, To: to}
	m.clearSelection()
	return m.apply(side, mv)
}

// Play applies a complete move proposal, bypassing the selection step.
func (m *Match) Play(side Side, mv Move) (HistoryEntry, error) {
	if err := m.check(side); err != nil {
		return HistoryEntry{}, err
	}
	m.clearSelection()
	return m.apply(side, mv)
}

// Click feeds one cell-selection event into the state machine. A non-nil
// entry means a move was applied.
func (m *Match) Click(side Side, sq Square) (*HistoryEntry, error) {
	if m.Phase == AwaitingDestination {
		h, err := m.Destination(side, sq)
		if err != nil {
			return nil, err
		}
		return &h, nil
	}
	_, err := m.Select(side, sq)
	return nil, err
}

// ForfeitTurn hands the turn to the other side without touching the board.
func (m *Match) ForfeitTurn() bool {
	if m.Phase == Finished {
		return false
	}
	m.clearSelection()
	m.Turn = m.Turn.Opponent()
	return true
}

func (m *Match) clearSelection() {
	m.Selected = Square{}
	m.Phase = AwaitingSelection
}

func (m *Match) apply(side Side, mv Move) (HistoryEntry, error) {
	if !IsLegal(&m.Board, side, mv) {
		return HistoryEntry{}, fmt.Errorf("%w: %v", ErrInvalidMove, mv)
	}
	piece := m.Board.At(mv.From).Piece
	taken := m.Board.MovePiece(mv.From, mv.To)
	h := HistoryEntry{
		Mover:    side,
		Piece:    piece,
		Move:     mv,
		Captured: taken.Occupied,
		Taken:    taken.Piece,
	}
	m.History = append(m.History, h)

	switch {
	case m.Board.Count(SideA) == 0:
		m.finish(SideB)
	case m.Board.Count(SideB) == 0:
		m.finish(SideA)
	default:
		m.Turn = side.Opponent()
	}
	return h, nil
}

func (m *Match) finish(winner Side) {
	m.Winner = winner
	m.Phase = Finished
}

// Targets lists the legal destinations of the pending selection, if any.
func (m *Match) Targets() []Square {
	if m.Phase != AwaitingDestination {
		return nil
	}
	return PossibleMoves(&m.Board, m.Turn, m.Selected)
}
