package model

import "errors"

var (
	ErrInvalidMove    = errors.New("invalid_move")
	ErrNotYourTurn    = errors.New("not_your_turn")
	ErrMatchOver      = errors.New("match_over")
	ErrNoSelection    = errors.New("no_selection")
	ErrRoomFull       = errors.New("room_full")
	ErrRoomNotFound   = errors.New("room_not_found")
	ErrMalformedState = errors.New("malformed_state")
	ErrUnknownMessage = errors.New("bad_message")
)

var knownErrors = []error{
	ErrInvalidMove,
	ErrNotYourTurn,
	ErrMatchOver,
	ErrNoSelection,
	ErrRoomFull,
	ErrRoomNotFound,
	ErrMalformedState,
	ErrUnknownMessage,
}

// ErrorCode maps err to the stable code sent over the wire.
func ErrorCode(err error) string {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal"
}

// ErrorFromCode is the inverse of ErrorCode. Unknown codes yield a plain error.
func ErrorFromCode(code string) error {
	for _, known := range knownErrors {
		if known.Error() == code {
			return known
		}
	}
	return errors.New(code)
}
