package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
	"github.com/souqtech-inc/souqtech-engine/pkg/services"
	"github.com/souqtech-inc/souqtech-engine/pkg/session"
)

// How long a persistence write may run after the response has been sent.
const saveTimeout = 10 * time.Second

// SearchHandler handles the main query endpoint.
type SearchHandler struct {
	orchestrator  *services.Orchestrator
	conversations repositories.ConversationRepository
	logger        *zap.Logger
}

func NewSearchHandler(orchestrator *services.Orchestrator, conversations repositories.ConversationRepository, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		orchestrator:  orchestrator,
		conversations: conversations,
		logger:        logger,
	}
}

// RegisterRoutes registers the search handler's routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /search", h.Search)
}

// Search handles POST /search requests: it answers the query and then
// persists the exchange without delaying the response.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Query is required", "")
		return
	}

	result, err := h.orchestrator.ProcessQuery(r.Context(), req.Query, req.Language)
	if err != nil {
		h.logger.Error("query processing failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to process query", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result.Response); err != nil {
		h.logger.Error("Failed to encode search response", zap.Error(err))
		return
	}

	sessionID := r.Header.Get("x-session-id")
	if !session.Valid(sessionID) {
		sessionID = session.NewID()
	}

	// Persist after the client has its answer; a storage hiccup must never
	// cost a query.
	conv := &models.Conversation{
		Query:           req.Query,
		Response:        result.Response.Response,
		Language:        result.Language,
		Prices:          result.Response.Prices,
		UserIP:          clientIP(r),
		UserAgent:       r.UserAgent(),
		UserSessionID:   sessionID,
		ComparisonQuery: result.Comparison,
	}
	if result.Response.Image != nil {
		conv.ImageURL = *result.Response.Image
	}
	go h.saveConversation(conv)
}

func (h *SearchHandler) saveConversation(conv *models.Conversation) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if _, err := h.conversations.Save(ctx, conv); err != nil {
		h.logger.Warn("failed to save conversation", zap.Error(err))
	}
}

// clientIP prefers the first proxy-forwarded address and falls back to the
// socket peer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
