package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialLayout(t *testing.T) {
	m := NewMatch()

	assert.Equal(t, SideA, m.Turn)
	assert.Equal(t, AwaitingSelection, m.Phase)
	assert.Equal(t, 5, m.Board.Count(SideA))
	assert.Equal(t, 5, m.Board.Count(SideB))

	names := []string{"P1", "H1", "H2", "P2", "P3"}
	for col, name := range names {
		assert.Equal(t, "A-"+name, m.Board.At(Square{0, col}).Piece.Name())
		assert.Equal(t, "B-"+name, m.Board.At(Square{4, col}).Piece.Name())
	}
	for r := 1; r < 4; r++ {
		for c := 0; c < Size; c++ {
			assert.False(t, m.Board.At(Square{r, c}).Occupied)
		}
	}
}

func TestPawnOpeningMove(t *testing.T) {
	m := NewMatch()

	ok, err := m.Select(SideA, Square{0, 0})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, AwaitingDestination, m.Phase)

	h, err := m.Destination(SideA, Square{1, 0})
	require.NoError(t, err)

	assert.False(t, m.Board.At(Square{0, 0}).Occupied)
	assert.Equal(t, Occupied(Piece{SideA, Pawn, 1}), m.Board.At(Square{1, 0}))
	assert.Equal(t, SideB, m.Turn)
	assert.Equal(t, AwaitingSelection, m.Phase)
	assert.False(t, h.Captured)
	assert.Equal(t, SideA, h.Mover)
	assert.Equal(t, Pawn, h.Piece.Kind)
	require.Len(t, m.History, 1)
	assert.Equal(t, "A-P1 moved from (0, 0) to (1, 0)", m.History[0].String())
}

func TestSelectNoOps(t *testing.T) {
	m := NewMatch()

	ok, err := m.Select(SideA, Square{2, 2})
	require.NoError(t, err)
	assert.False(t, ok, "empty cell")

	ok, err = m.Select(SideA, Square{4, 0})
	require.NoError(t, err)
	assert.False(t, ok, "opponent piece")
	assert.Equal(t, AwaitingSelection, m.Phase)

	_, err = m.Select(SideB, Square{4, 0})
	assert.True(t, errors.Is(err, ErrNotYourTurn))

	_, err = m.Destination(SideA, Square{1, 0})
	assert.True(t, errors.Is(err, ErrNoSelection))
}

func TestOrthogonalHeroBlockedLeavesBoard(t *testing.T) {
	m := NewMatch()
	m.Board = MustParseBoard(`
.    A-H1 .    .    .
.    B-P1 .    .    .
.    .    .    .    .
.    .    .    .    .
.    .    .    .    B-P2
`)
	before := m.Board

	_, err := m.Select(SideA, Square{0, 1})
	require.NoError(t, err)
	_, err = m.Destination(SideA, Square{2, 1})
	assert.True(t, errors.Is(err, ErrInvalidMove))
	assert.Equal(t, before, m.Board)
	assert.Equal(t, SideA, m.Turn)
	assert.Equal(t, AwaitingSelection, m.Phase)
	assert.Empty(t, m.History)

	m.Board.Set(Square{1, 1}, Empty())
	_, err = m.Play(SideA, NewMove(0, 1, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, OrthogonalHero, m.Board.At(Square{2, 1}).Piece.Kind)
}

func TestCaptureDecrementsOpponentOnly(t *testing.T) {
	m := NewMatch()
	m.Board = MustParseBoard(`
.    .    .    .    .
.    .    A-P1 .    .
.    .    B-P1 .    .
.    .    .    .    .
.    A-P2 .    .    B-P2
`)
	h, err := m.Play(SideA, NewMove(1, 2, 2, 2))
	require.NoError(t, err)

	assert.True(t, h.Captured)
	assert.Equal(t, "B-P1", h.Taken.Name())
	assert.Equal(t, 2, m.Board.Count(SideA))
	assert.Equal(t, 1, m.Board.Count(SideB))
	assert.False(t, m.Terminal())
	assert.Equal(t, SideB, m.Turn)
	assert.Equal(t, "A-P1 moved from (1, 2) to (2, 2) and captured B-P1", h.String())
}

func TestLastCaptureEndsMatch(t *testing.T) {
	m := NewMatch()
	m.Board = MustParseBoard(`
.    .    .    .    .
.    .    .    .    .
.    .    A-H2 .    .
.    .    .    .    .
.    .    .    .    B-P3
`)
	_, err := m.Click(SideA, Square{2, 2})
	require.NoError(t, err)
	h, err := m.Click(SideA, Square{4, 4})
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.True(t, m.Terminal())
	assert.Equal(t, SideA, m.Winner)
	assert.Equal(t, 0, m.Board.Count(SideB))

	_, err = m.Select(SideB, Square{2, 2})
	assert.True(t, errors.Is(err, ErrMatchOver))
	_, err = m.Select(SideA, Square{4, 4})
	assert.True(t, errors.Is(err, ErrMatchOver))
	_, err = m.Play(SideA, NewMove(4, 4, 3, 4))
	assert.True(t, errors.Is(err, ErrMatchOver))
	assert.False(t, m.ForfeitTurn())
}

func TestForfeitTurn(t *testing.T) {
	m := NewMatch()
	_, err := m.Select(SideA, Square{0, 0})
	require.NoError(t, err)
	before := m.Board

	require.True(t, m.ForfeitTurn())
	assert.Equal(t, SideB, m.Turn)
	assert.Equal(t, AwaitingSelection, m.Phase)
	assert.Equal(t, before, m.Board)

	_, err = m.Destination(SideA, Square{1, 0})
	assert.True(t, errors.Is(err, ErrNotYourTurn))
}

func TestResetRestoresInitialState(t *testing.T) {
	m := NewMatch()
	_, err := m.Play(SideA, NewMove(0, 0, 1, 0))
	require.NoError(t, err)

	m.Reset()
	assert.Equal(t, NewInitialBoard(), m.Board)
	assert.Equal(t, SideA, m.Turn)
	assert.Empty(t, m.History)
	assert.Equal(t, NoSide, m.Winner)
}

func TestTargetsFollowSelection(t *testing.T) {
	m := NewMatch()
	assert.Nil(t, m.Targets())

	_, err := m.Select(SideA, Square{0, 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Square{{2, 0}, {2, 4}}, m.Targets())
}
