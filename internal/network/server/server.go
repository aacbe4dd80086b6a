// Package server hosts one table over WebSocket. Connections get a
// seat in join order; when every seat is filled a round is dealt.
//
// All game state lives in a single engine instance owned by the run
// loop goroutine. The read pumps translate socket frames into commands
// on a channel and never touch the engine, so commands apply strictly
// one at a time in arrival order.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/jptuazon/pusoy-dos/internal/apperrors"
	"github.com/jptuazon/pusoy-dos/internal/config"
	"github.com/jptuazon/pusoy-dos/internal/game/engine"
	"github.com/jptuazon/pusoy-dos/internal/protocol"
	"github.com/jptuazon/pusoy-dos/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // single-table hobby server, no origin policy
	},
}

type command struct {
	client     *Client
	msg        *protocol.Message
	disconnect bool
	shutdown   chan struct{}
}

// Server hosts one table.
type Server struct {
	cfg         *config.Config
	redis       *redis.Client
	leaderboard *storage.Leaderboard

	game  *engine.Game
	seats []*Client // seat index -> client, nil when vacant

	commands chan command
}

// NewServer builds the table server. The leaderboard is optional: when
// Redis is unreachable the table still plays, rounds just go
// unrecorded.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		seats:    make([]*Client, cfg.Game.Players),
		commands: make(chan command, 64),
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, rounds will not be recorded: %v", err)
		_ = rdb.Close()
	} else {
		s.redis = rdb
		s.leaderboard = storage.NewLeaderboard(rdb)
	}
	return s
}

// Start runs the command loop and serves until the listener fails.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	addr := s.cfg.Server.Addr()
	log.Printf("table server listening on ws://%s/ws", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}
	c := newClient(s, conn)
	go c.readPump()
	go c.writePump()
}

func (s *Server) enqueue(cmd command) {
	s.commands <- cmd
}

// run owns the engine. Every state mutation happens here.
func (s *Server) run() {
	for cmd := range s.commands {
		if cmd.shutdown != nil {
			if s.game != nil {
				s.game.Quit(-1)
				s.finishRound()
			}
			for i, c := range s.seats {
				if c != nil {
					c.Close()
				}
				s.seats[i] = nil
			}
			close(cmd.shutdown)
			return
		}
		if cmd.disconnect {
			s.handleDisconnect(cmd.client)
			continue
		}
		s.handleMessage(cmd.client, cmd.msg)
	}
}

func (s *Server) handleMessage(c *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgHello:
		s.handleHello(c, msg)
	case protocol.MsgPing:
		c.Send(protocol.MsgPong, nil)
	case protocol.MsgThrow:
		s.handleThrow(c, msg)
	case protocol.MsgPass:
		s.withGame(c, func() (engine.Result, error) { return s.game.Pass(c.Seat) })
	case protocol.MsgForfeit:
		s.withGame(c, func() (engine.Result, error) { return s.game.Forfeit(c.Seat) })
	case protocol.MsgQuit:
		if s.game == nil {
			return
		}
		s.game.Quit(c.Seat)
		s.finishRound()
	default:
		log.Printf("unhandled message type %q from %s", msg.Type, c.ID)
	}
}

func (s *Server) localConfig() protocol.ConfigPayload {
	return protocol.ConfigPayload{
		Players:     s.cfg.Game.Players,
		Discard:     s.cfg.Game.Discard,
		ControlMode: s.cfg.Game.ControlMode,
	}
}

func (s *Server) handleHello(c *Client, msg *protocol.Message) {
	var hello protocol.HelloPayload
	if err := protocol.DecodePayload(msg, &hello); err != nil {
		s.sendError(c, apperrors.ErrIllegalThrow)
		return
	}

	// Every seat must be configured identically or the peers would
	// disagree about what the deal looks like.
	if field := s.localConfig().Mismatch(hello.Config); field != "" {
		c.Send(protocol.MsgError, protocol.ErrorPayload{
			Code:    apperrors.CodeConfigClash,
			Message: fmt.Sprintf("%s: peers disagree on %q", apperrors.ErrConfigMismatch.Message, field),
		})
		c.Close()
		return
	}

	seat := -1
	for i, occupant := range s.seats {
		if occupant == nil {
			seat = i
			break
		}
	}
	if seat < 0 || s.game != nil {
		s.sendError(c, apperrors.ErrUnknownSeat)
		c.Close()
		return
	}

	c.Seat = seat
	c.Name = hello.Name
	s.seats[seat] = c
	c.Send(protocol.MsgWelcome, protocol.WelcomePayload{
		PlayerID: c.ID,
		Seat:     seat,
		Config:   s.localConfig(),
	})
	log.Printf("player %s (%s) seated at %d", c.Name, c.ID, seat)

	for _, occupant := range s.seats {
		if occupant == nil {
			return
		}
	}
	s.startRound()
}

func (s *Server) startRound() {
	seed := s.cfg.Game.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	mode := engine.ControlBeatChance
	if s.cfg.Game.ControlMode == "immediate" {
		mode = engine.ControlImmediate
	}

	g, err := engine.New(s.cfg.Game.Players, s.cfg.Game.Discard, seed, mode)
	if err != nil {
		log.Printf("deal failed: %v", err)
		return
	}
	s.game = g
	s.broadcastState()
}

func (s *Server) handleThrow(c *Client, msg *protocol.Message) {
	if s.game == nil || c.Seat < 0 {
		s.sendError(c, apperrors.ErrNotYourTurn)
		return
	}
	var throw protocol.ThrowPayload
	if err := protocol.DecodePayload(msg, &throw); err != nil {
		s.sendError(c, apperrors.ErrIllegalThrow)
		return
	}

	// The payload echoes the client's view of its hand; a mismatch means
	// the client is desynced, so re-sync it instead of guessing.
	hand := s.game.Table.Seats[c.Seat]
	if len(throw.Cards) != hand.Len() || len(throw.Selected) != hand.Len() {
		s.sendState(c)
		s.sendError(c, apperrors.ErrIllegalThrow)
		return
	}
	var indices []int
	for i, sel := range throw.Selected {
		if throw.Cards[i] != int(hand.At(i)) {
			s.sendState(c)
			s.sendError(c, apperrors.ErrIllegalThrow)
			return
		}
		if sel {
			indices = append(indices, i)
		}
	}

	s.withGame(c, func() (engine.Result, error) { return s.game.Throw(c.Seat, indices) })
}

// withGame applies one engine command and broadcasts the outcome.
func (s *Server) withGame(c *Client, apply func() (engine.Result, error)) {
	if s.game == nil {
		s.sendError(c, apperrors.ErrRoundOver)
		return
	}
	res, err := apply()
	if err != nil {
		s.sendError(c, err)
		return
	}

	if res.Passed {
		s.broadcast(protocol.MsgPassed, protocol.PassedPayload{Seat: res.Seat})
	} else {
		cards := make([]int, len(res.Cards))
		for i, cd := range res.Cards {
			cards[i] = int(cd)
		}
		s.broadcast(protocol.MsgThrown, protocol.ThrownPayload{
			Seat:  res.Seat,
			Cards: cards,
			Shape: res.Shape.String(),
			Score: res.Score,
			Left:  s.game.Table.Seats[res.Seat].Len(),
			Won:   res.Won,
		})
	}

	if res.RoundOver {
		s.finishRound()
		return
	}
	s.broadcastState()
}

func (s *Server) handleDisconnect(c *Client) {
	if c.Seat >= 0 && s.seats[c.Seat] == c {
		s.seats[c.Seat] = nil
		if s.game != nil && s.game.Active(c.Seat) {
			log.Printf("seat %d disconnected mid-round, forfeiting", c.Seat)
			if res, err := s.game.Forfeit(c.Seat); err == nil {
				s.broadcast(protocol.MsgPassed, protocol.PassedPayload{Seat: c.Seat, Forfeited: true})
				if res.RoundOver {
					s.finishRound()
					return
				}
				s.broadcastState()
			}
		}
	}
	c.Close()
}

func (s *Server) finishRound() {
	g := s.game
	s.game = nil

	s.broadcast(protocol.MsgRoundOver, protocol.RoundOverPayload{
		FinishOrder: g.FinishOrder(),
		Loser:       g.Loser(),
	})
	s.recordRound(g)

	for i, c := range s.seats {
		if c != nil {
			c.Close()
		}
		s.seats[i] = nil
	}
}

func (s *Server) recordRound(g *engine.Game) {
	if s.leaderboard == nil || g.Loser() < 0 {
		return
	}
	forfeited := make(map[int]bool)
	for _, seat := range g.Forfeited() {
		forfeited[seat] = true
	}

	var placements []storage.Placement
	finish := g.FinishOrder()
	for seat, c := range s.seats {
		if c == nil {
			continue
		}
		p := storage.Placement{
			PlayerID:   c.ID,
			PlayerName: c.Name,
			Won:        len(finish) > 0 && finish[0] == seat,
			Lost:       g.Loser() == seat,
			Forfeited:  forfeited[seat],
		}
		placements = append(placements, p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.leaderboard.RecordRound(ctx, placements); err != nil {
		log.Printf("leaderboard update failed: %v", err)
	}
}

func (s *Server) broadcastState() {
	for _, c := range s.seats {
		if c != nil {
			s.sendState(c)
		}
	}
}

// sendState snapshots the table from one seat's point of view: its own
// cards plus public state only.
func (s *Server) sendState(c *Client) {
	if s.game == nil || c.Seat < 0 {
		return
	}
	g := s.game
	hand := g.Table.Seats[c.Seat].Cards()
	cards := make([]int, len(hand))
	for i, cd := range hand {
		cards[i] = int(cd)
	}
	last := g.Table.LastPlayed.Cards()
	lastIDs := make([]int, len(last))
	for i, cd := range last {
		lastIDs[i] = int(cd)
	}
	counts := make([]int, g.NumPlayers)
	for i := 0; i < g.NumPlayers; i++ {
		counts[i] = g.Table.Seats[i].Len()
	}

	payload := protocol.StatePayload{
		Seat:       c.Seat,
		Phase:      g.Phase().String(),
		Acting:     g.Seat(),
		Hand:       cards,
		LastPlayed: lastIDs,
		BetterThis: g.BetterThis(),
		Counts:     counts,
	}
	if g.Phase() == engine.PhaseForcedOpen {
		payload.ForcedCard = int(g.ForcedCard())
	}
	c.Send(protocol.MsgState, payload)
}

func (s *Server) broadcast(msgType protocol.MessageType, payload any) {
	for _, c := range s.seats {
		if c != nil {
			c.Send(msgType, payload)
		}
	}
}

// Shutdown closes every connection and the Redis client. Runs through
// the command queue so it cannot race the run loop.
func (s *Server) Shutdown() {
	done := make(chan struct{})
	s.enqueue(command{shutdown: done})
	<-done
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

func (s *Server) sendError(c *Client, err error) {
	var ge *apperrors.GameError
	if !errors.As(err, &ge) {
		ge = &apperrors.GameError{Code: apperrors.CodeInvariant, Message: err.Error()}
	}
	c.Send(protocol.MsgError, protocol.ErrorPayload{Code: ge.Code, Message: ge.Message})
}
