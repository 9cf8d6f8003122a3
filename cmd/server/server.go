package main

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func (s *Server) handler(cfg server.Config) http.Handler {
	if cfg.ThrowErrors {
		return s.GameServer.FailEveryNth(4, s.router)
	}
	return s.router
}

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	if cfg.SecretCode == "" {
		log.Warn("SECRET_CODE is empty, anyone can start or reset the game")
	}

	game, err := server.NewGame(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	defer game.Close()

	s := Server{
		GameServer: server.NewGameServer(game, cfg),
	}
	s.routes()
	log.Printf("listening on :%s", cfg.Port)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, s.handler(cfg)))
}
