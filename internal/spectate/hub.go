// Package spectate streams public table snapshots to websocket clients.
//
// A Hub is an engine.Observer: every hook rebuilds a snapshot on the engine
// goroutine and fans the encoded bytes out to connected clients. Hand
// contents are never sent, only sizes.
package spectate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
	pingInterval = 15 * time.Second
)

// Snapshot is the public view of a table.
type Snapshot struct {
	Round       int        `json:"round"`
	DrawPile    int        `json:"drawPile"`
	DiscardTop  string     `json:"discardTop,omitempty"`
	DiscardSize int        `json:"discardSize"`
	Players     []SeatView `json:"players"`
	LastMove    string     `json:"lastMove,omitempty"`
	Over        bool       `json:"over"`
}

// SeatView is one player's public state. House maps giver ID to card count.
type SeatView struct {
	ID        int         `json:"id"`
	HandSize  int         `json:"handSize"`
	HouseSize int         `json:"houseSize"`
	House     map[int]int `json:"house,omitempty"`
}

// BuildSnapshot reads the public state of t.
func BuildSnapshot(t engine.Table) Snapshot {
	s := Snapshot{
		Round:       t.Round(),
		DrawPile:    t.DrawPileSize(),
		DiscardSize: len(t.DiscardPile()),
	}
	if top := t.DiscardTop(); top != engine.NoCard {
		s.DiscardTop = top.String()
	}
	if last := t.History().Last(1); len(last) == 1 {
		s.LastMove = last[0].String()
	}
	for _, p := range t.Players() {
		v := SeatView{ID: p.ID(), HandSize: len(p.Hand())}
		for giver, cards := range p.House() {
			if v.House == nil {
				v.House = make(map[int]int)
			}
			v.House[giver] = len(cards)
			v.HouseSize += len(cards)
		}
		s.Players = append(s.Players, v)
	}
	sort.Slice(s.Players, func(i, j int) bool { return s.Players[i].ID < s.Players[j].ID })
	return s
}

type client struct {
	send chan []byte
}

// Hub fans snapshots out to spectators.
type Hub struct {
	table engine.Table
	log   *logrus.Entry

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

// NewHub returns a hub reporting on t. Register it with Game.SetObserver.
func NewHub(t engine.Table, log *logrus.Entry) *Hub {
	return &Hub{
		table:   t,
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

func (h *Hub) HandsChanged()       { h.publish(false) }
func (h *Hub) HousesChanged()      { h.publish(false) }
func (h *Hub) DeckChanged()        { h.publish(false) }
func (h *Hub) DiscardPileChanged() { h.publish(false) }

// Close sends a final snapshot marked over and disconnects every client.
func (h *Hub) Close() {
	h.publish(true)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// Last returns the most recent encoded snapshot, or nil before the first.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Hub) publish(over bool) {
	snap := BuildSnapshot(h.table)
	snap.Over = over
	data, err := json.Marshal(snap)
	if err != nil {
		h.log.WithError(err).Error("encode snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || bytes.Equal(data, h.last) {
		return
	}
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Debug("spectator slow, snapshot dropped")
		}
	}
}

func (h *Hub) add() (*client, bool) {
	c := &client{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		c.send <- h.last
	}
	if h.closed {
		close(c.send)
		return c, false
	}
	h.clients[c] = struct{}{}
	return c, true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ServeHTTP upgrades the request to a websocket and streams snapshots until
// the client leaves or the hub closes. The client's own messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.log.WithError(err).Warn("spectator accept failed")
		return
	}
	c, live := h.add()
	if live {
		defer h.remove(c)
	}
	h.log.WithField("remote", r.RemoteAddr).Debug("spectator connected")

	ctx := conn.CloseRead(r.Context())
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-c.send:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "game over")
				return
			}
			if err := write(ctx, conn, msg); err != nil {
				h.log.WithError(err).Debug("spectator write failed")
				return
			}
		case <-ping.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}
