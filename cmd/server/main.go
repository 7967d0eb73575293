package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/commsdesk/backend/internal/actions"
	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/config"
	"github.com/commsdesk/backend/internal/db"
	httpapi "github.com/commsdesk/backend/internal/http"
	"github.com/commsdesk/backend/internal/http/handlers"
	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/payments"
	"github.com/commsdesk/backend/internal/service"
	"github.com/commsdesk/backend/internal/ticketing"
	"github.com/commsdesk/backend/internal/tickets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "commsdesk").Logger()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	tc, err := ticketing.New(cfg.TicketsAPIURL, httpClient, models.Party{Name: cfg.SupportName, Address: cfg.SupportEmail})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid tickets api url")
	}
	tc.ImageBaseURL = cfg.ImagesAPIURL

	target, err := actions.ParseTarget(cfg.ActionsTarget)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid actions target")
	}

	templates, err := compose.LoadCatalogue(cfg.TemplatesFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load templates")
	}
	composer, err := compose.NewComposer(templates, cfg.FrontendURL, cfg.PublicAPIURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to compile templates")
	}

	ctx := context.Background()
	var (
		ledger db.Ledger
		pinger handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
		store.ClaimTTL = cfg.ActionClaimTTL
		if err := store.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate db")
		}
		ledger, pinger = store, store
	} else {
		mem := db.NewMemoryLedger()
		mem.ClaimTTL = cfg.ActionClaimTTL
		ledger = mem
		logger.Info().Msg("using in-memory action ledger")
	}

	dash := &service.Dashboard{
		Tickets:   &tickets.Client{BaseURL: cfg.TicketsAPIURL, HTTP: httpClient, Logger: logger},
		Ticketing: tc,
		Actions:   &actions.Client{BaseURL: cfg.ActionsAPIURL, Target: target, HTTP: httpClient},
		Payments:  &payments.Client{BaseURL: cfg.PaymentsAPIURL, HTTP: httpClient, Validator: validator.New()},
		Composer:  composer,
		Ledger:    ledger,
		Logger:    logger,

		SupportDomain: cfg.SupportDomain,
	}

	router, err := httpapi.Router(cfg, dash, pinger, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("tickets_api", cfg.TicketsAPIURL).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
