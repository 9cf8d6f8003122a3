package main

import (
	"github.com/matryer/way"
)

const (
	URI_JOIN    = "/join"
	URI_MOVE    = "/move/:direction"
	URI_START   = "/start"
	URI_RESET   = "/reset"
	URI_BOARD   = "/board"
	URI_PLAYERS = "/players"
	URI_STATE   = "/state"
	URI_TIME    = "/time"
	URI_WATCH   = "/watch"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_JOIN, s.GameServer.HandleJoin())
	s.router.HandleFunc("GET", URI_MOVE, s.GameServer.HandleMove())
	s.router.HandleFunc("GET", URI_START, s.GameServer.HandleStart())
	s.router.HandleFunc("GET", URI_RESET, s.GameServer.HandleReset())
	s.router.HandleFunc("GET", URI_BOARD, s.GameServer.HandleBoard())
	s.router.HandleFunc("GET", URI_PLAYERS, s.GameServer.HandlePlayers())
	s.router.HandleFunc("GET", URI_STATE, s.GameServer.HandleState())
	s.router.HandleFunc("GET", URI_TIME, s.GameServer.HandleTime())
	s.router.HandleFunc("GET", URI_WATCH, s.GameServer.HandleWatch())
}
