package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	gameapi "github.com/redgreen-game/redgreen/go/clients/game_api_client"
	"github.com/redgreen-game/redgreen/go/internal/countdown"
	"github.com/redgreen-game/redgreen/go/internal/history"
	"github.com/redgreen-game/redgreen/go/internal/round"
	"github.com/redgreen-game/redgreen/go/internal/round/events"
	"github.com/redgreen-game/redgreen/go/internal/round/gateway"
	"github.com/redgreen-game/redgreen/go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config, err := loadConfig(getEnv("CONFIG_PATH", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	sess := &session.Session{
		UserID: getEnv("GAME_USER_ID", ""),
		Token:  getEnv("GAME_AUTH_TOKEN", ""),
	}
	if !sess.LoggedIn() {
		log.Warn().Msg("no session credentials configured, betting will require login")
	}

	api := gameapi.NewAuthenticatedClient(config.API.BaseURL, sess.Token)
	api.SetTimeout(time.Duration(config.API.TimeoutSec) * time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clock := clockwork.NewRealClock()
	ledger := history.NewLedger(config.Game.HistorySize)

	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go cm.Start(ctx)

	sinks := events.MultiSink{cm}
	if config.Events.Enabled {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = config.Events.URL
		if config.Events.Stream != "" {
			jsCfg.StreamName = config.Events.Stream
		}
		if config.Events.SubjectPrefix != "" {
			jsCfg.SubjectPrefix = config.Events.SubjectPrefix
		}
		publisher, err := events.NewJetStreamPublisher(jsCfg)
		if err != nil {
			log.Error().Err(err).Msg("event publisher unavailable, continuing without it")
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}

	ctrl := round.NewController(api, sess, ledger, clock, sinks, config.roundConfig())

	driver := countdown.New(clock, config.Game.RoundDurationSec, func() {
		ctrl.OnRoundExpire(ctx)
	})
	driver.OnTick(func(remaining int) {
		snap := ctrl.Snapshot()
		roundID := ""
		if snap.Round != nil {
			roundID = snap.Round.ID
		}
		sinks.Publish(ctx, events.New(events.EventTypeTimerTick, roundID, events.TimerTickPayload{
			RoundID:          roundID,
			TimeRemainingSec: remaining,
			TickedAt:         time.Now().UTC(),
		}))
	})

	log.Info().
		Str("api_url", config.API.BaseURL).
		Int("round_duration_sec", config.Game.RoundDurationSec).
		Float64("min_bet", config.Game.MinBet).
		Str("port", config.Server.Port).
		Msg("starting round client")

	ctrl.Initialize(ctx)
	go driver.Run(ctx)

	server := setupServer(gateway.NewHandler(cm, ctrl, driver, api, sess), config.Server.Port)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("presentation server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
