// Package server is the gateway's HTTP surface: it classifies inbound
// requests, enforces bearer-token auth on the analyze route, dispatches to
// the provider adapters and maps every failure to the uniform {error} body.
// Each request is handled by an independent invocation; the only shared
// state is the credential store and the read-only provider registry.
package server

import (
	"fmt"
	"net/http"

	"github.com/alphaalpha-app/fairshare-gateway/credentials"
	"github.com/alphaalpha-app/fairshare-gateway/internal/config"
	"github.com/alphaalpha-app/fairshare-gateway/providers"
	"github.com/alphaalpha-app/fairshare-gateway/token"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string
	config   config.Config
	repo     credentials.Repo
	codec    *token.Codec
	registry *providers.Registry
	handler  http.HandlerFunc

	// Route handlers, built once in initRoutes.
	register http.HandlerFunc
	login    http.HandlerFunc
	analyze  http.HandlerFunc
	health   http.HandlerFunc
	notFound http.HandlerFunc
}

func New(cfg config.Config, repo credentials.Repo, registry *providers.Registry) (*Server, error) {
	codec, err := token.New(cfg.GetTokenSecret(), cfg.GetTokenTTL())
	if err != nil {
		return nil, fmt.Errorf("[server.New] failed to create token codec: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		config:   cfg,
		repo:     repo,
		codec:    codec,
		registry: registry,
	}
	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	log.Debug().Strs("providers", s.registry.IDs()).Msg("provider registry")
	for _, route := range []string{
		"POST " + RouteRegister,
		"POST " + RouteLogin,
		"POST " + RouteAnalyze,
		"GET " + RouteHealth,
	} {
		log.Debug().Str("route", route).Msg("registered route")
	}
}
