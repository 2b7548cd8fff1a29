package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_ROOM = "/rooms/:code"
const URI_HEALTH = "/healthz"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_ROOM, s.GameServer.HandleRoomInfo())
	s.router.HandleFunc("GET", URI_HEALTH, s.GameServer.HandleHealth())
}
