package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alphaalpha-app/fairshare-gateway/credentials"
	errs "github.com/alphaalpha-app/fairshare-gateway/internal/errors"
	"github.com/alphaalpha-app/fairshare-gateway/providers"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type analyzeRequest struct {
	// Image is base64 without a data-URI prefix.
	Image string `json:"image"`
	// Model is the provider id selecting the adapter.
	Model string `json:"model"`
}

// RegisterHandler creates a credential record. There is no existence
// pre-check: the store's uniqueness guarantee is the only arbiter of "taken",
// so two concurrent registrations for one username cannot both succeed.
//
// Malformed input is reported as 500, not 400; the deployed client treats
// every non-2xx {error} body the same way, so the status stays as shipped.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusInternalServerError, "Missing credentials")
			return
		}

		credential, err := credentials.New(req.Username, req.Password)
		if errs.Is(err, credentials.ErrMissingUsername) || errs.Is(err, credentials.ErrMissingPassword) {
			writeError(w, http.StatusInternalServerError, "Missing credentials")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to build credential")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		ctx, cancel := s.storeContext(r.Context())
		defer cancel()
		if err := s.repo.Insert(ctx, credential); err != nil {
			if errs.Is(err, credentials.ErrUsernameTaken) {
				writeError(w, http.StatusInternalServerError, "Username taken")
				return
			}
			log.Error().Err(err).Msg("credential insert failed")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// LoginHandler checks a username/password pair and issues a session token.
// Every failure - unknown username, wrong password, corrupt stored verifier -
// is the same 401 so the response never reveals whether the username exists.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		ctx, cancel := s.storeContext(r.Context())
		defer cancel()
		credential, err := s.repo.FindByUsername(ctx, req.Username)
		if err != nil {
			if !errs.Is(err, credentials.ErrNotFound) {
				log.Error().Err(err).Msg("credential lookup failed")
			}
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		ok, err := credentials.Verify(req.Password, credential.Verifier)
		if err != nil {
			// Corrupt record: deny, never crash the pipeline.
			log.Warn().Err(err).Str("credential_id", credential.ID).Msg("stored verifier is corrupt")
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		tok, err := s.codec.Issue(credential.ID, credential.Username)
		if err != nil {
			log.Error().Err(err).Msg("token issue failed")
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"token": tok})
	}
}

// AnalyzeHandler proxies a bill image to the selected provider adapter and
// returns the canonical extraction result. RequireAuth has already verified
// the bearer token by the time this runs. The upstream is attempted exactly
// once; retrying is the client's concern.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := claimsFromContext(r.Context())

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusInternalServerError, "Invalid request body")
			return
		}

		analyzer, err := s.registry.Get(req.Model)
		if err != nil {
			// Unrecognized provider id: fail before any upstream contact.
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result, err := analyzer.Analyze(r.Context(), req.Image, providers.ExtractionPrompt)
		if err != nil {
			log.Error().Err(err).Str("provider", req.Model).Str("user", claims.Subject).Msg("analysis failed")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
	}
}

// storeContext bounds a credential-store call so a stalled store cannot hang
// the request; cancelling the inbound request releases the call too.
func (s *Server) storeContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.config.GetStoreTimeout())
}
