package server

import (
	"errors"
	"fmt"

	"github.com/zucenko/herogrid/model"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_CONFLICT = 409
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	ROOM_READY ResponseCode = iota
	ROOM_NOT_FOUND
	ROOM_FULL
	ROOM_BUSY
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case ROOM_READY:
		return HTTP_SUCCESS
	case ROOM_NOT_FOUND:
		return HTTP_NOT_FOUND
	case ROOM_FULL:
		return HTTP_CONFLICT
	case ROOM_BUSY:
		return HTTP_TIMEOUT
	default:
		panic(h)
	}
}

func responseCodeOf(err error) ResponseCode {
	switch {
	case err == nil:
		return ROOM_READY
	case errors.Is(err, model.ErrRoomNotFound):
		return ROOM_NOT_FOUND
	case errors.Is(err, model.ErrRoomFull):
		return ROOM_FULL
	default:
		return ROOM_BUSY
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_WAIT:
		return "GS_WAIT"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_OVER:
		return "GS_OVER"
	case GS_CLOSED:
		return "GS_CLOSED"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_SEATED:
		return "SEATED"
	case PS_CLOSED:
		return "CLOSED"
	default:
		return "N/A"
	}
}

type EventKind int

const (
	EV_SELECT EventKind = iota + 1
	EV_MOVE
	EV_RESET
	EV_START
	EV_LEFT
)

type PlayerEvent struct {
	Kind   EventKind
	Player Participant
	Side   model.Side
	Cell   model.Square
	Move   model.Move
}

// RoomInfo is the JSON body of GET /rooms/:code.
type RoomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	State   string `json:"state"`
	Turn    string `json:"turn"`
	Winner  string `json:"winner,omitempty"`
	Moves   int    `json:"moves"`
}
