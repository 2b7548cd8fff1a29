package model

import (
	"encoding/gob"
	"io"
)

// Frames on the wire are single gob values, one per websocket message.

func EncodeServerMessage(w io.Writer, m ServerMessage) error {
	return gob.NewEncoder(w).Encode(m)
}

func DecodeServerMessage(r io.Reader) (ServerMessage, error) {
	var m ServerMessage
	err := gob.NewDecoder(r).Decode(&m)
	return m, err
}

func EncodeClientMessage(w io.Writer, m ClientMessage) error {
	return gob.NewEncoder(w).Encode(m)
}

func DecodeClientMessage(r io.Reader) (ClientMessage, error) {
	var m ClientMessage
	err := gob.NewDecoder(r).Decode(&m)
	return m, err
}
