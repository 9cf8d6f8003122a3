package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 25 * time.Second
	pongWait   = 60 * time.Second
)

// HandleWatch streams a BoardMessage on connect and after every coalesced change.
func (s *GameServer) HandleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warnf("HandleWatch websocket upgrade err %v", err)
			return
		}
		defer conn.Close()

		changes, cancel := s.Game.Subscribe()
		defer cancel()

		closed := make(chan struct{})
		go s.loopWatchRead(conn, closed)

		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()

		if err := s.writeBoard(conn); err != nil {
			return
		}
		for {
			select {
			case <-closed:
				return
			case <-changes:
				if err := s.writeBoard(conn); err != nil {
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					s.log.Infof("HandleWatch ping failed: %v", err)
					return
				}
			}
		}
	}
}

// loopWatchRead drains the client side so control frames are processed and
// closes closed once the peer goes away.
func (s *GameServer) loopWatchRead(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *GameServer) writeBoard(conn *websocket.Conn) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	wr, err := conn.NextWriter(websocket.TextMessage)
	if err != nil {
		s.log.Warnf("HandleWatch cannot get writer %v", err)
		return err
	}
	if err := json.NewEncoder(wr).Encode(s.Game.BoardMessage()); err != nil {
		s.log.Warnf("HandleWatch cannot encode %v", err)
		_ = wr.Close()
		return err
	}
	return wr.Close()
}
