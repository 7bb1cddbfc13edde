package server

import (
	"encoding/json"
	"net/http"
	"time"

	"LaneRally/internal/game"

	"github.com/decred/slog"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	// writeWait bounds a single frame write; a peer that stalls longer
	// is treated as gone.
	writeWait = 10 * time.Second

	// sendQueueLen is the per-connection outbound buffer. Once it is
	// full the connection starts losing frames instead of stalling the
	// room tick.
	sendQueueLen = 64

	// maxFrameSize caps inbound frames. Every command fits well under
	// this.
	maxFrameSize = 512
)

// wsMsg is the flat inbound envelope. Only the fields a given command
// reads are meaningful; the rest stay at their zero values.
type wsMsg struct {
	Type  string `json:"type"`
	Room  string `json:"roomId"`
	Name  string `json:"username"`
	Ready bool   `json:"ready"`
	Down  bool   `json:"down"`
	// AtClientMs is the sender's own clock. It is logged for latency
	// inspection and never used for game decisions.
	AtClientMs int64 `json:"atClientMs"`
}

// wsClient fans outbound frames to one connection. Send never blocks:
// rooms call it while holding their lock, so a slow reader loses frames
// rather than freezing the race for everyone else.
type wsClient struct {
	conn *websocket.Conn
	send chan any
	log  slog.Logger
}

func newWSClient(conn *websocket.Conn, log slog.Logger) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan any, sendQueueLen),
		log:  log,
	}
}

func (c *wsClient) Send(msg any) {
	select {
	case c.send <- msg:
	default:
		c.log.Tracef("ws %s: send queue full, dropping frame", c.conn.RemoteAddr())
	}
}

func (c *wsClient) writeLoop() {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.log.Tracef("ws %s: write: %v", c.conn.RemoteAddr(), err)
			return
		}
	}
}

// serveWS runs one connection from upgrade to disconnect. The first
// accepted frame must be a hello naming a room; everything before that
// is dropped. After the join, frames are decoded and dispatched to the
// player's room, which does its own phase and permission checks.
func serveWS(reg *game.Registry, log slog.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debugf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	client := newWSClient(conn, log)
	go client.writeLoop()

	var room *game.Room
	var player *game.Player

	// Leave must run before the send channel closes: after Leave
	// returns, the room holds no reference to this client, so nothing
	// can send on the closed channel.
	defer func() {
		if room != nil && player != nil {
			room.Leave(player.ID)
		}
		close(client.send)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if player != nil {
				log.Debugf("ws %s: player %d disconnected: %v", conn.RemoteAddr(), player.ID, err)
			}
			return
		}
		var msg wsMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Tracef("ws %s: malformed frame: %v", conn.RemoteAddr(), err)
			continue
		}

		if player == nil {
			if msg.Type != "hello" || msg.Room == "" {
				log.Tracef("ws %s: dropped %q before hello", conn.RemoteAddr(), msg.Type)
				continue
			}
			room = reg.GetRoom(msg.Room)
			player = room.Join(client, msg.Name)
			continue
		}

		switch msg.Type {
		case "hello":
			// already joined; repeated hellos are ignored
		case "setReady":
			room.SetReady(player.ID, msg.Ready)
		case "startGame":
			room.StartGame(player.ID)
		case "pressBoost":
			if msg.AtClientMs != 0 {
				log.Tracef("ws %s: boost down=%v stamped atClientMs=%d", conn.RemoteAddr(), msg.Down, msg.AtClientMs)
			}
			room.PressBoost(player.ID, msg.Down)
		case "rename":
			room.Rename(player.ID, msg.Name)
		case "resetGame":
			room.ResetGame(player.ID)
		default:
			log.Tracef("ws %s: unknown command %q", conn.RemoteAddr(), msg.Type)
		}
	}
}
