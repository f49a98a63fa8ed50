package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
	"github.com/Kgervais7/MooseInTheHouse/internal/player"
)

func newTestGame(t *testing.T) (*engine.Game, *Hub) {
	t.Helper()
	players := []engine.Player{player.NewBot(0, 5, 0), player.NewBot(1, 5, 1)}
	g, err := engine.NewGame(5, engine.DefaultHouseRules(), players, nil)
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewHub(g, logrus.NewEntry(log))
	g.SetObserver(h)
	return g, h
}

func TestBuildSnapshot(t *testing.T) {
	g, _ := newTestGame(t)
	s := BuildSnapshot(g)
	assert.Equal(t, 0, s.Round)
	assert.Equal(t, 44, s.DrawPile)
	assert.Empty(t, s.DiscardTop)
	require.Len(t, s.Players, 2)
	assert.Equal(t, 4, s.Players[0].HandSize)
	assert.Zero(t, s.Players[1].HouseSize)

	// Bot 0 never houses; bot 1 always does.
	_, err := g.PlayTurn(context.Background())
	require.NoError(t, err)
	_, err = g.PlayTurn(context.Background())
	require.NoError(t, err)

	s = BuildSnapshot(g)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 42, s.DrawPile)
	assert.Equal(t, 1, s.DiscardSize)
	assert.NotEmpty(t, s.DiscardTop)
	assert.Equal(t, 1, s.Players[0].HouseSize)
	assert.Equal(t, map[int]int{1: 1}, s.Players[0].House)
	assert.Contains(t, s.LastMove, "player 1 puts")
}

func readSnapshot(ctx context.Context, t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var s Snapshot
	require.NoError(t, json.Unmarshal(data, &s))
	return s
}

func TestHubStreamsSnapshots(t *testing.T) {
	g, h := newTestGame(t)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	first := readSnapshot(ctx, t, conn)
	assert.Equal(t, 44, first.DrawPile, "new spectators get the current state")

	_, err = g.PlayTurn(ctx)
	require.NoError(t, err)
	for {
		s := readSnapshot(ctx, t, conn)
		if s.DiscardSize == 1 {
			assert.Equal(t, 43, s.DrawPile)
			break
		}
	}

	h.Close()
	var sawOver bool
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
			break
		}
		var s Snapshot
		require.NoError(t, json.Unmarshal(data, &s))
		sawOver = sawOver || s.Over
	}
	assert.True(t, sawOver, "final snapshot is marked over")
}

func TestStateEndpoint(t *testing.T) {
	_, h := newTestGame(t)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var s Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Len(t, s.Players, 2)
}

func TestHubDropsUnchangedSnapshots(t *testing.T) {
	_, h := newTestGame(t)
	before := h.Last()
	h.HandsChanged()
	assert.Equal(t, before, h.Last())
}
