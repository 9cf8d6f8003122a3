package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/model"
)

// StatusError is a non-200 answer from the game server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Code, e.Body)
}

// Client talks to one game server on behalf of one player.
type Client struct {
	base  string
	http  *http.Client
	log   log.FieldLogger
	token string
	name  string
}

func New(cfg Config, logger log.FieldLogger) *Client {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{
		base: strings.TrimRight(cfg.Server, "/"),
		http: &http.Client{Timeout: cfg.RequestTimeout},
		log:  logger,
	}
}

func (c *Client) Token() string {
	return c.token
}

// Name is the name passed to the last successful Join.
func (c *Client) Name() string {
	return c.name
}

// Join registers name and keeps the token for later moves.
func (c *Client) Join(ctx context.Context, name string) (string, error) {
	body, err := c.get(ctx, "/join", url.Values{"playerName": {name}})
	if err != nil {
		return "", fmt.Errorf("join: %w", err)
	}
	c.token = strings.TrimSpace(string(body))
	c.name = name
	c.log.WithField("name", name).Info("joined")
	return c.token, nil
}

// State returns the phase name.
func (c *Client) State(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/state", nil)
	if err != nil {
		return "", fmt.Errorf("state: %w", err)
	}
	return string(body), nil
}

func (c *Client) Board(ctx context.Context) ([]model.RedactedCell, error) {
	var cells []model.RedactedCell
	if err := c.getJSON(ctx, "/board", nil, &cells); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	return cells, nil
}

func (c *Client) Players(ctx context.Context) ([]model.RedactedPlayer, error) {
	var players []model.RedactedPlayer
	if err := c.getJSON(ctx, "/players", nil, &players); err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	return players, nil
}

func (c *Client) Move(ctx context.Context, d model.Direction) (model.MoveResult, error) {
	var res model.MoveResult
	if err := c.getJSON(ctx, "/move/"+d.String(), url.Values{"token": {c.token}}, &res); err != nil {
		return res, fmt.Errorf("move %v: %w", d, err)
	}
	return res, nil
}

// Watch streams board messages until ctx ends or the connection drops; the
// channel is closed either way.
func (c *Client) Watch(ctx context.Context) (<-chan model.BoardMessage, error) {
	wsURL := "ws" + strings.TrimPrefix(c.base, "http") + "/watch"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	out := make(chan model.BoardMessage)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()
	go func() {
		defer close(out)
		defer close(done)
		for {
			var msg model.BoardMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if ctx.Err() == nil {
					c.log.Warnf("watch stream ended: %v", err)
				}
				return
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
