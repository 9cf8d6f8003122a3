package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/model"
)

// GameServer exposes a Game over HTTP.
type GameServer struct {
	Game     *Game
	Upgrader *websocket.Upgrader

	cfg      Config
	log      log.FieldLogger
	cache    *responseCache
	requests atomic.Int64
}

func NewGameServer(g *Game, cfg Config) *GameServer {
	return &GameServer{
		Game: g,
		Upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		cfg:   cfg,
		log:   g.log,
		cache: newResponseCache(cfg.CacheTTL),
	}
}

func (s *GameServer) HandleJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("userName")
		if name == "" {
			name = r.URL.Query().Get("playerName")
		}
		if name == "" {
			http.Error(w, "Must define either a userName or playerName in the query string.", http.StatusBadRequest)
			return
		}
		token, err := s.Game.JoinPlayer(name)
		if err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(token))
	}
}

func (s *GameServer) HandleMove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := model.ParseDirection(way.Param(r.Context(), "direction"))
		if !ok {
			s.fail(w, ErrDirectionNotRecognized)
			return
		}
		res, err := s.Game.Move(r.URL.Query().Get("token"), d)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, res)
	}
}

func (s *GameServer) HandleStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rows, err1 := strconv.Atoi(q.Get("numRows"))
		cols, err2 := strconv.Atoi(q.Get("numCols"))
		if err1 != nil || err2 != nil {
			http.Error(w, "numRows and numCols must be integers", http.StatusBadRequest)
			return
		}
		var limit time.Duration
		if v := q.Get("timeLimit"); v != "" {
			minutes, err := strconv.Atoi(v)
			if err != nil || minutes < 0 {
				http.Error(w, "timeLimit must be a number of minutes", http.StatusBadRequest)
				return
			}
			limit = time.Duration(minutes) * time.Minute
		}
		if err := s.Game.StartGame(rows, cols, q.Get("password"), limit); err != nil {
			s.fail(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *GameServer) HandleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Game.ResetGame(r.URL.Query().Get("password"))
		w.WriteHeader(http.StatusOK)
	}
}

func (s *GameServer) HandleBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.cache.getOrCreate("board", func() any {
			s.log.Debug("Cache expired. Re-computing /board")
			return s.Game.GetBoardState()
		}))
	}
}

func (s *GameServer) HandlePlayers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.cache.getOrCreate("players", func() any {
			return s.Game.PlayersByScoreDescending()
		}))
	}
}

func (s *GameServer) HandleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phase := s.cache.getOrCreate("state", func() any {
			return s.Game.CurrentPhase().String()
		})
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(phase.(string)))
	}
}

func (s *GameServer) HandleTime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Game.TimeInfo())
	}
}

// FailEveryNth answers every nth request with a 500, for exercising client
// retry logic.
func (s *GameServer) FailEveryNth(n int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.requests.Add(1)%n == 0 {
			s.log.Infof("THROW_ERRORS enabled...every %dth request dies.", n)
			http.Error(w, fmt.Sprintf("Every %dth request fails!", n), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *GameServer) fail(w http.ResponseWriter, err error) {
	code := CodeOf(err).ToHttp()
	if code >= http.StatusInternalServerError {
		s.log.Errorf("request failed: %v", err)
	}
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("cannot encode response: %v", err)
	}
}

// responseCache holds computed read responses for a short TTL.
type responseCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{ttl: ttl, now: time.Now, entries: make(map[string]cacheEntry)}
}

func (c *responseCache) getOrCreate(key string, create func() any) any {
	if c.ttl <= 0 {
		return create()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if e, ok := c.entries[key]; ok && now.Before(e.expires) {
		return e.value
	}
	v := create()
	c.entries[key] = cacheEntry{value: v, expires: now.Add(c.ttl)}
	return v
}
