package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alphaalpha-app/fairshare-gateway/credentials/sqliterepo"
	"github.com/alphaalpha-app/fairshare-gateway/internal/config"
	"github.com/alphaalpha-app/fairshare-gateway/providers"
	"github.com/alphaalpha-app/fairshare-gateway/server"
	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	displayAppname(cfg.GetAppName())

	repo, err := sqliterepo.Open(cfg.GetDatabasePath())
	if err != nil {
		return err
	}
	defer repo.Close()

	registry, err := providers.NewRegistry(descriptors(cfg), cfg.GetProviderTimeout())
	if err != nil {
		return err
	}

	gateway, err := server.New(cfg, repo, registry)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: gateway}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// descriptors maps the static provider table into adapter descriptors.
func descriptors(cfg config.Config) []providers.Descriptor {
	table := cfg.GetProviders()
	ds := make([]providers.Descriptor, 0, len(table))
	for _, p := range table {
		ds = append(ds, providers.Descriptor{
			ID:       p.ID,
			Kind:     providers.Kind(p.Kind),
			Endpoint: p.Endpoint,
			APIKey:   p.APIKey,
			Model:    p.Model,
		})
	}
	return ds
}

func listenAndServe(httpServer *http.Server) error {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
