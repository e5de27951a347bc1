package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
)

// ConversationHandler serves stored conversation history and counts.
type ConversationHandler struct {
	conversations repositories.ConversationRepository
	logger        *zap.Logger
}

func NewConversationHandler(conversations repositories.ConversationRepository, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, logger: logger}
}

// RegisterRoutes registers the conversation handler's routes on the given mux.
func (h *ConversationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/history", h.History)
	mux.HandleFunc("GET /api/stats", h.Stats)
}

// History handles GET /api/history requests.
func (h *ConversationHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	conversations, err := h.conversations.GetRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to fetch history", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch history", "")
		return
	}

	if err := WriteJSON(w, http.StatusOK, conversations); err != nil {
		h.logger.Error("Failed to encode history response", zap.Error(err))
	}
}

// Stats handles GET /api/stats requests.
func (h *ConversationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.conversations.GetStats(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch stats", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats", "")
		return
	}

	if err := WriteJSON(w, http.StatusOK, stats); err != nil {
		h.logger.Error("Failed to encode stats response", zap.Error(err))
	}
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
