package server

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/herogrid/model"
)

type fakePlayer struct {
	id   string
	msgs chan model.ServerMessage
}

func newFakePlayer(id string) *fakePlayer {
	return &fakePlayer{id: id, msgs: make(chan model.ServerMessage, 64)}
}

func (f *fakePlayer) ID() string {
	return f.id
}

func (f *fakePlayer) Send(m model.ServerMessage) bool {
	select {
	case f.msgs <- m:
		return true
	default:
		return false
	}
}

func (f *fakePlayer) next(t *testing.T) model.ServerMessage {
	t.Helper()
	select {
	case m := <-f.msgs:
		return m
	case <-time.After(2 * time.Second):
		t.Fatalf("%s: no message", f.id)
	}
	return model.ServerMessage{}
}

func (f *fakePlayer) expect(t *testing.T, typ model.ServerMessageType) model.ServerMessage {
	t.Helper()
	m := f.next(t)
	require.Equal(t, typ.Name(), m.Type.Name(), "%s got %+v", f.id, m)
	return m
}

func (f *fakePlayer) quiet(t *testing.T) {
	t.Helper()
	select {
	case m := <-f.msgs:
		t.Fatalf("%s: unexpected message %s", f.id, m.Type.Name())
	case <-time.After(50 * time.Millisecond):
	}
}

func testServer(turn time.Duration) *GameServer {
	return NewGameServer(Config{TurnTime: turn})
}

// startedRoom creates a room with a and b seated and drains the start
// notices.
func startedRoom(t *testing.T, s *GameServer) (*GameSession, *fakePlayer, *fakePlayer) {
	t.Helper()
	a, b := newFakePlayer("a"), newFakePlayer("b")
	gs, side := s.CreateRoom(a)
	require.Equal(t, model.SideA, side)
	created := a.expect(t, model.MsgCreated)
	require.Equal(t, gs.Code, created.Code)

	_, side, err := s.JoinRoom(gs.Code, b)
	require.NoError(t, err)
	require.Equal(t, model.SideB, side)
	b.expect(t, model.MsgJoined)

	for _, p := range []*fakePlayer{a, b} {
		start := p.expect(t, model.MsgStart)
		require.NotNil(t, start.State)
		require.Equal(t, model.SideA, start.State.Turn)
	}
	return gs, a, b
}

func TestCreateAndJoinStartsMatch(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, _, _ := startedRoom(t, s)

	assert.Len(t, gs.Code, 6)
	assert.Equal(t, 2, gs.Players())
	info, err := gs.Info(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "GS_PLAY", info.State)
	assert.Equal(t, "A", info.Turn)
}

func TestJoinErrors(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()

	_, _, err := s.JoinRoom("NOPE42", newFakePlayer("x"))
	assert.True(t, errors.Is(err, model.ErrRoomNotFound))

	gs, _, _ := startedRoom(t, s)
	_, _, err = s.JoinRoom(gs.Code, newFakePlayer("c"))
	assert.True(t, errors.Is(err, model.ErrRoomFull))
	assert.Equal(t, 2, gs.Players())
}

func TestConcurrentJoinsNeverExceedTwo(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, _ := s.CreateRoom(newFakePlayer("host"))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		seated int
		full   int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := s.JoinRoom(gs.Code, newFakePlayer(fmt.Sprintf("p%d", i)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				seated++
			case errors.Is(err, model.ErrRoomFull):
				full++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, seated)
	assert.Equal(t, 19, full)
	assert.Equal(t, 2, gs.Players())
}

func TestSelectionAndMoveBroadcast(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, a, b := startedRoom(t, s)

	gs.post(PlayerEvent{Kind: EV_SELECT, Player: a, Side: model.SideA, Cell: model.Square{Row: 0, Col: 0}})
	for _, p := range []*fakePlayer{a, b} {
		m := p.expect(t, model.MsgState)
		assert.True(t, m.State.Selecting)
		assert.Equal(t, []model.Square{{Row: 1, Col: 0}}, m.State.Targets)
	}

	gs.post(PlayerEvent{Kind: EV_SELECT, Player: a, Side: model.SideA, Cell: model.Square{Row: 1, Col: 0}})
	for _, p := range []*fakePlayer{a, b} {
		m := p.expect(t, model.MsgState)
		restored, err := model.RestoreMatch(*m.State)
		require.NoError(t, err)
		assert.Equal(t, model.SideB, restored.Turn)
		assert.False(t, restored.Board.At(model.Square{Row: 0, Col: 0}).Occupied)
		assert.Equal(t, model.Pawn, restored.Board.At(model.Square{Row: 1, Col: 0}).Piece.Kind)
		assert.NotZero(t, m.State.Deadline)
		require.Len(t, m.State.History, 1)
	}
}

func TestInvalidMoveGoesToProposerOnly(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, a, b := startedRoom(t, s)

	gs.post(PlayerEvent{Kind: EV_MOVE, Player: a, Side: model.SideA, Move: model.NewMove(0, 1, 1, 1)})
	m := a.expect(t, model.MsgInvalidMove)
	assert.Equal(t, "invalid_move", m.Error)
	require.NotNil(t, m.State)
	assert.Equal(t, model.SideA, m.State.Turn)
	b.quiet(t)

	gs.post(PlayerEvent{Kind: EV_SELECT, Player: b, Side: model.SideB, Cell: model.Square{Row: 4, Col: 0}})
	m = b.expect(t, model.MsgError)
	assert.Equal(t, "not_your_turn", m.Error)
	a.quiet(t)
}

func TestCapturingLastPieceEndsMatch(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, a, b := startedRoom(t, s)

	gs.match.Board = model.MustParseBoard(`
.    .    .    .    .
.    .    .    .    .
.    .    A-H2 .    .
.    .    .    .    .
.    .    .    .    B-P1
`)
	gs.post(PlayerEvent{Kind: EV_MOVE, Player: a, Side: model.SideA, Move: model.NewMove(2, 2, 4, 4)})
	for _, p := range []*fakePlayer{a, b} {
		m := p.expect(t, model.MsgState)
		assert.Equal(t, model.Finished, m.State.Phase)
		assert.Equal(t, model.SideA, m.State.Winner)
		assert.Zero(t, m.State.Deadline)
	}

	gs.post(PlayerEvent{Kind: EV_MOVE, Player: b, Side: model.SideB, Move: model.NewMove(4, 4, 3, 4)})
	assert.Equal(t, "match_over", b.expect(t, model.MsgError).Error)

	info, err := gs.Info(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "GS_OVER", info.State)
	assert.Equal(t, "A", info.Winner)
}

func TestTurnExpiryForfeitsTurn(t *testing.T) {
	s := testServer(60 * time.Millisecond)
	defer s.Close()
	gs, a, b := startedRoom(t, s)

	initial := model.NewInitialBoard()
	for _, p := range []*fakePlayer{a, b} {
		m := p.expect(t, model.MsgTimeUp)
		assert.Equal(t, model.SideA, m.Side)
		assert.Equal(t, model.SideB, m.State.Turn)
		assert.Equal(t, initial.Cells[0][:], m.State.Cells[0])
	}

	gs.post(PlayerEvent{Kind: EV_RESET, Player: b, Side: model.SideB})
	for {
		m := a.next(t)
		if m.Type == model.MsgResetDone {
			assert.Equal(t, model.SideA, m.State.Turn)
			break
		}
		require.Equal(t, model.MsgTimeUp.Name(), m.Type.Name())
	}
}

func TestResetRestoresInitialLayout(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, a, b := startedRoom(t, s)

	gs.post(PlayerEvent{Kind: EV_MOVE, Player: a, Side: model.SideA, Move: model.NewMove(0, 0, 1, 0)})
	a.expect(t, model.MsgState)
	b.expect(t, model.MsgState)

	gs.post(PlayerEvent{Kind: EV_RESET, Player: b, Side: model.SideB})
	for _, p := range []*fakePlayer{a, b} {
		m := p.expect(t, model.MsgResetDone)
		assert.Equal(t, model.SideB, m.Side)
		restored, err := model.RestoreMatch(*m.State)
		require.NoError(t, err)
		assert.Equal(t, model.NewInitialBoard(), restored.Board)
		assert.Equal(t, model.SideA, restored.Turn)
		assert.Empty(t, restored.History)
	}
}

func TestLeaveNotifiesAndDestroysEmptyRoom(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	gs, a, b := startedRoom(t, s)

	s.Leave(gs, b)
	m := a.expect(t, model.MsgOpponentLeft)
	assert.Equal(t, model.SideB, m.Side)
	_, ok := s.Room(gs.Code)
	assert.True(t, ok)

	gs.post(PlayerEvent{Kind: EV_SELECT, Player: a, Side: model.SideA, Cell: model.Square{Row: 0, Col: 0}})
	a.expect(t, model.MsgError)

	c := newFakePlayer("c")
	_, side, err := s.JoinRoom(gs.Code, c)
	require.NoError(t, err)
	assert.Equal(t, model.SideB, side)
	c.expect(t, model.MsgJoined)
	a.expect(t, model.MsgStart)
	c.expect(t, model.MsgStart)

	s.Leave(gs, a)
	s.Leave(gs, c)
	_, ok = s.Room(gs.Code)
	assert.False(t, ok)
	assert.Equal(t, 0, s.RoomCount())

	_, err = gs.Info(time.Second)
	assert.True(t, errors.Is(err, model.ErrRoomNotFound))
}

func TestCodesAreUniqueAndCaseInsensitive(t *testing.T) {
	s := testServer(time.Minute)
	defer s.Close()
	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	s.newCode = func(int) string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	first, _ := s.CreateRoom(newFakePlayer("one"))
	second, _ := s.CreateRoom(newFakePlayer("two"))
	assert.Equal(t, "AAAAAA", first.Code)
	assert.Equal(t, "BBBBBB", second.Code)

	_, side, err := s.JoinRoom(" bbbbbb ", newFakePlayer("three"))
	require.NoError(t, err)
	assert.Equal(t, model.SideB, side)
}
