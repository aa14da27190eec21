package v1

import "net/http"

// requirePresets wraps a handler and returns 503 if the preset store is not configured.
func (s *Server) requirePresets(next http.HandlerFunc) http.HandlerFunc {
	return s.require(s.deps.Presets != nil, "Preset store not configured", next)
}

// requireHistory wraps a handler and returns 503 if rename history is not configured.
func (s *Server) requireHistory(next http.HandlerFunc) http.HandlerFunc {
	return s.require(s.deps.History != nil, "History not configured", next)
}

// requireEventLog wraps a handler and returns 503 if the event log is not configured.
func (s *Server) requireEventLog(next http.HandlerFunc) http.HandlerFunc {
	return s.require(s.deps.EventLog != nil, "Event log not configured", next)
}

// requireBus wraps a handler and returns 503 if the event bus is not configured.
func (s *Server) requireBus(next http.HandlerFunc) http.HandlerFunc {
	return s.require(s.deps.Bus != nil, "Event bus not configured", next)
}

func (s *Server) require(ok bool, msg string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", msg)
			return
		}
		next(w, r)
	}
}
