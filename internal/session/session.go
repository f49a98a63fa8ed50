// Package session runs one game of Moose in the House end to end: it owns
// the engine, logs each move and round, publishes moves to the configured
// sink and traces each round.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
	"github.com/Kgervais7/MooseInTheHouse/internal/cache"
)

const (
	tracerName     = "github.com/Kgervais7/MooseInTheHouse/internal/session"
	publishTimeout = 2 * time.Second
)

// Publisher ships move records out of the process. cache.Publisher is the
// Redis implementation.
type Publisher interface {
	PublishMove(ctx context.Context, rec cache.MoveRecord) error
}

// Option configures a Session.
type Option func(*Session)

// WithID fixes the game ID instead of generating one.
func WithID(id uuid.UUID) Option { return func(s *Session) { s.ID = id } }

// WithPublisher sends every recorded move to p.
func WithPublisher(p Publisher) Option { return func(s *Session) { s.pub = p } }

// WithObserver attaches an extra observer, such as a spectator hub.
func WithObserver(o engine.Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Session) { s.tracer = tp.Tracer(tracerName) }
}

// Session wraps an engine.Game with logging, publishing and tracing.
type Session struct {
	ID uuid.UUID

	game      *engine.Game
	log       *logrus.Entry
	pub       Publisher
	tracer    trace.Tracer
	observers []engine.Observer

	actionIndex int
	publishing  sync.WaitGroup
}

// New deals a game for players and wires the observers. Hooks fire once
// right away, so attached observers see the opening deal.
func New(seed uint64, rules engine.HouseRules, players []engine.Player, log logrus.FieldLogger, opts ...Option) (*Session, error) {
	s := &Session{
		ID:     uuid.New(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = log.WithField("game", s.ID)

	g, err := engine.NewGame(seed, rules, players, nil)
	if err != nil {
		return nil, err
	}
	s.game = g
	g.SetObserver(engine.NewMultiObserver(append([]engine.Observer{&historian{s: s}}, s.observers...)...))
	return s, nil
}

// Game exposes the underlying engine, e.g. to build a spectator hub.
func (s *Session) Game() *engine.Game { return s.game }

// Attach adds an observer after construction and syncs it.
func (s *Session) Attach(o engine.Observer) {
	s.observers = append(s.observers, o)
	s.game.SetObserver(engine.NewMultiObserver(append([]engine.Observer{&historian{s: s}}, s.observers...)...))
}

// Run plays rounds until the game ends, ctx is cancelled, or a player fails.
// Outstanding publishes are awaited before returning.
func (s *Session) Run(ctx context.Context) error {
	defer s.publishing.Wait()

	ctx, span := s.tracer.Start(ctx, "game", trace.WithAttributes(
		attribute.String("game.id", s.ID.String()),
		attribute.Int("game.players", len(s.game.Players())),
	))
	defer span.End()

	hands := logrus.Fields{}
	for _, p := range s.game.Players() {
		hands[fmt.Sprintf("hand_%d", p.ID())] = len(p.Hand())
	}
	s.log.WithFields(hands).WithField("draw_pile", s.game.DrawPileSize()).Info("cards dealt")

	for !s.game.Over() {
		if err := s.playRound(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.log.WithError(err).WithField("round", s.game.Round()+1).Error("game aborted")
			return err
		}
	}

	reason := s.game.EndReason()
	span.SetAttributes(
		attribute.String("game.end_reason", reason.String()),
		attribute.Int("game.rounds", s.game.Round()),
		attribute.Int("game.moves", s.game.History().Len()),
	)
	s.log.WithFields(logrus.Fields{
		"reason": reason.String(),
		"rounds": s.game.Round(),
		"moves":  s.game.History().Len(),
	}).Info("game over")
	return nil
}

func (s *Session) playRound(ctx context.Context) error {
	n := s.game.Round() + 1
	ctx, span := s.tracer.Start(ctx, "round", trace.WithAttributes(attribute.Int("game.round", n)))
	defer span.End()

	if err := s.game.PlayRound(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("game.draw_pile", s.game.DrawPileSize()))
	s.log.WithFields(logrus.Fields{
		"round":     n,
		"draw_pile": s.game.DrawPileSize(),
	}).Info("round complete")
	return nil
}

// historian logs every recorded move and hands it to the publisher.
type historian struct {
	engine.NopObserver
	s *Session
}

func (h *historian) MoveRecorded(m engine.Move) {
	h.s.record(m)
}

func (s *Session) record(m engine.Move) {
	s.actionIndex++
	entry := s.log.WithFields(logrus.Fields{
		"round":  s.game.Round() + 1,
		"player": m.Player,
		"move":   s.actionIndex,
	})
	entry.Info(m.String())
	if m.IsDiscard() {
		if p, ok := s.game.Player(m.Player); ok {
			entry.WithField("hand", handString(p.Hand())).Debug("hand after discard")
		}
	}

	if s.pub == nil {
		return
	}
	rec := cache.MoveRecord{
		ID:          uuid.New(),
		GameID:      s.ID,
		ActionIndex: s.actionIndex,
		Round:       s.game.Round() + 1,
		ActorID:     m.Player,
		ActionType:  actionType(m),
		Payload:     payload(m),
		Timestamp:   time.Now().UnixMilli(),
	}
	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.pub.PublishMove(ctx, rec); err != nil {
			s.log.WithError(err).WithField("move", rec.ActionIndex).Warn("publish move failed")
		}
	}()
}
