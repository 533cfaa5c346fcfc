package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type wsCommand string

const (
	wsGet    wsCommand = "g"
	wsReveal wsCommand = "o"
	wsFlag   wsCommand = "f"
	wsReset  wsCommand = "n"
)

type wsMessage struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Game  *GameSessionDTO `json:"game,omitempty"`
	Error string          `json:"error,omitempty"`
}

func stateMessage(event string, info session.Info) wsMessage {
	return wsMessage{Type: "state", Event: event, Game: NewGameSessionDTO(info)}
}

func errorMessage(err error) wsMessage {
	return wsMessage{Type: "error", Error: err.Error()}
}

type wsClient struct {
	*GameHandler
	conn    *websocket.Conn
	session *session.Session
	log     logrus.FieldLogger
	out     chan wsMessage
}

// push never blocks the game: a client that cannot keep up loses messages.
func (c *wsClient) push(m wsMessage) {
	select {
	case c.out <- m:
	default:
		c.log.Warn("ws client too slow, dropping message")
	}
}

func (c *wsClient) execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsGet:
		c.session.Touch()
		c.push(stateMessage("get", c.session.Info()))
		return nil
	case wsReveal, wsFlag:
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		if cmd == wsReveal {
			_, err = c.session.Reveal(x, y)
		} else {
			_, err = c.session.ToggleFlag(x, y)
		}
		return err
	case wsReset:
		w, h, err := parseXY(args)
		if err != nil {
			return err
		}
		if err := c.game.ValidateSize(w, h); err != nil {
			return err
		}
		_, err = c.session.Reset(w, h)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *wsClient) readLoop() error {
	c.conn.SetReadLimit(c.ws.MaxMessage)
	c.conn.SetReadDeadline(time.Now().Add(2 * c.ws.PingInterval))
	c.conn.SetPongHandler(func(string) error {
		c.session.Touch()
		return c.conn.SetReadDeadline(time.Now().Add(2 * c.ws.PingInterval))
	})

	for {
		mt, buf, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}
		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			if err := c.execute(strings.TrimSpace(line)); err != nil {
				c.push(errorMessage(err))
			}
		}
	}
}

func (c *wsClient) writeLoop(ctx context.Context) error {
	ticker := time.NewTicker(c.ws.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(c.ws.WriteTimeout))
			return c.conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
		case m := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(c.ws.WriteTimeout))
			if err := c.conn.WriteJSON(m); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.ws.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// ConnectWS streams the session state to the client after every change and
// accepts line commands: "g", "o x y", "f x y", "n width height".
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}

	log := g.log.WithField("session", s.ID)
	log.Debug("established WS connection")

	c := &wsClient{
		GameHandler: &g,
		conn:        conn,
		session:     s,
		log:         log,
		out:         make(chan wsMessage, 16),
	}

	unsubscribe := s.Subscribe(func(e mines.Event, info session.Info) {
		c.push(stateMessage(e.Kind.String(), info))
	})
	defer unsubscribe()

	c.push(stateMessage("get", s.Info()))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer conn.Close()
		return c.writeLoop(ctx)
	})
	eg.Go(func() error {
		defer cancel()
		return c.readLoop()
	})

	err = eg.Wait()
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
		!errors.Is(err, websocket.ErrCloseSent) {
		log.WithError(err).Warn("error in ws loop")
	}
	log.Debug("closed WS connection")
}

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("expected 2 arguments, got %d", len(args))
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}
