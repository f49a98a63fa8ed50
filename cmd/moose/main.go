// Command moose plays a game of Moose in the House. Settings come from
// MOOSE_* environment variables or a .env file; see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
	"github.com/Kgervais7/MooseInTheHouse/internal/cache"
	"github.com/Kgervais7/MooseInTheHouse/internal/config"
	"github.com/Kgervais7/MooseInTheHouse/internal/player"
	"github.com/Kgervais7/MooseInTheHouse/internal/session"
	"github.com/Kgervais7/MooseInTheHouse/internal/spectate"
	"github.com/Kgervais7/MooseInTheHouse/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := telemetry.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.WithError(err).Warn("tracer shutdown")
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithFields(logrus.Fields{"seed": seed, "players": cfg.Players}).Info("starting game")

	var opts []session.Option
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		opts = append(opts, session.WithPublisher(cache.NewPublisher(rdb)))
	}

	players := roster(cfg, seed, os.Stdin, os.Stdout)
	sess, err := session.New(seed, cfg.HouseRules(), players, log, opts...)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	var hub *spectate.Hub
	if cfg.SpectatorAddr != "" {
		hub = spectate.NewHub(sess.Game(), log.WithField("game", sess.ID))
		sess.Attach(hub)
		g.Go(func() error { return hub.ListenAndServe(gctx, cfg.SpectatorAddr) })
	}
	g.Go(func() error {
		defer stop()
		if hub != nil {
			defer hub.Close()
		}
		return sess.Run(gctx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
}

// roster seats bots at every position except cfg.HumanSeat, which reads
// moves from in.
func roster(cfg config.Config, seed uint64, in io.Reader, out io.Writer) []engine.Player {
	players := make([]engine.Player, cfg.Players)
	for id := range players {
		if id == cfg.HumanSeat {
			players[id] = player.NewHuman(id, cfg.HumanName, in, out)
			continue
		}
		players[id] = player.NewBot(id, seed, cfg.BotHouseRate)
	}
	return players
}

func closeRedis(rdb *redis.Client, log logrus.FieldLogger) {
	if err := rdb.Close(); err != nil {
		log.WithError(err).Warn("redis close")
	}
}
