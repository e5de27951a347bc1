package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
	"github.com/souqtech-inc/souqtech-engine/pkg/session"
)

// TrackClickRequest is the POST /api/track-click body.
type TrackClickRequest struct {
	ASIN         string `json:"asin,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	AffiliateURL string `json:"affiliate_url"`
	SessionID    string `json:"session_id,omitempty"`
	Referrer     string `json:"referrer,omitempty"`
	Language     string `json:"language,omitempty"`
}

// TrackClickResponse acknowledges a recorded click and echoes the session
// identifier the client should reuse.
type TrackClickResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ClickHandler records affiliate link clicks.
type ClickHandler struct {
	clicks repositories.ClickRepository
	logger *zap.Logger
}

func NewClickHandler(clicks repositories.ClickRepository, logger *zap.Logger) *ClickHandler {
	return &ClickHandler{clicks: clicks, logger: logger}
}

// RegisterRoutes registers the click handler's routes on the given mux.
func (h *ClickHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/track-click", h.TrackClick)
}

// TrackClick handles POST /api/track-click requests. The session identifier
// comes from the body, the x-session-id header, or is minted here.
func (h *ClickHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req TrackClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if req.AffiliateURL == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "affiliate_url is required", "")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get("x-session-id")
	}
	if !session.Valid(sessionID) {
		sessionID = session.NewID()
	}

	event := &models.ClickEvent{
		ASIN:          req.ASIN,
		ProductName:   req.ProductName,
		AffiliateURL:  req.AffiliateURL,
		UserSessionID: sessionID,
		IPAddress:     clientIP(r),
		UserAgent:     r.UserAgent(),
		Referrer:      req.Referrer,
		Language:      req.Language,
	}
	if err := h.clicks.Track(r.Context(), event); err != nil {
		h.logger.Error("failed to track click", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to track click", "")
		return
	}

	resp := TrackClickResponse{
		Success:   true,
		SessionID: sessionID,
		Message:   "Click tracked",
	}
	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode click response", zap.Error(err))
	}
}
