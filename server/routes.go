package server

import "net/http"

const (
	RouteRegister = "/api/auth/register"
	RouteLogin    = "/api/auth/login"
	RouteAnalyze  = "/api/ai/analyze"
	RouteHealth   = "/health"
)

// initRoutes builds each route's handler chain once and wraps the dispatcher
// in the always-on middleware. CORS runs outermost so preflight requests and
// error responses carry the same headers as successes.
func (s *Server) initRoutes() {
	s.register = s.RegisterHandler()
	s.login = s.LoginHandler()
	s.analyze = ChainMiddleware(s.AnalyzeHandler(), s.RequireAuth())
	s.health = s.HealthHandler()
	s.notFound = s.NotFoundHandler()

	s.handler = ChainMiddleware(s.dispatch,
		s.CorsMiddleware,
		s.RecoverMiddleware,
		s.LoggingMiddleware,
	)
}

// dispatch classifies (path, method) and delegates; it performs no business
// logic. Anything unmatched - including a known path with the wrong method -
// is answered 404, not 405, matching the deployed wire contract.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == RouteRegister && r.Method == http.MethodPost:
		s.register(w, r)
	case r.URL.Path == RouteLogin && r.Method == http.MethodPost:
		s.login(w, r)
	case r.URL.Path == RouteAnalyze && r.Method == http.MethodPost:
		s.analyze(w, r)
	case r.URL.Path == RouteHealth && r.Method == http.MethodGet:
		s.health(w, r)
	default:
		s.notFound(w, r)
	}
}
