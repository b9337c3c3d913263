package server

import (
	"encoding/json"
	"net/http"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/bot"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// NotificationServer accepts completed matches pushed by the polling worker
// and hands them to the bot for delivery.
type NotificationServer struct {
	bot    *bot.Bot
	logger zerolog.Logger
}

func NewNotificationServer(b *bot.Bot, logger zerolog.Logger) *NotificationServer {
	return &NotificationServer{
		bot:    b,
		logger: logger.With().Str("component", "notification_server").Logger(),
	}
}

// Mux returns the route table. Middleware is attached by the caller.
func (s *NotificationServer) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/matches", s.handleMatch)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *NotificationServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleMatch accepts a raw match payload and fans it out to subscribed
// guilds. Delivery to individual channels is best-effort; a 200 means the
// payload was accepted and processed.
func (s *NotificationServer) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var raw api.RawMatch
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.logger.Warn().Err(err).Msg("invalid match payload")
		s.writeError(w, http.StatusBadRequest, "invalid match payload")
		return
	}
	if raw.UUID == "" {
		s.writeError(w, http.StatusBadRequest, "match uuid is required")
		return
	}

	matchUUID, err := s.bot.NotifyMatch(r.Context(), &raw)
	if err != nil {
		s.logger.Error().Err(err).Str("match_uuid", raw.UUID).Msg("failed to process match notification")
		s.writeError(w, http.StatusInternalServerError, "failed to process match")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":     "success",
		"match_uuid": matchUUID,
	})
}

func (s *NotificationServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (s *NotificationServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

var Module = fx.Provide(NewNotificationServer)
