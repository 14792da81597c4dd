package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/wallet-core/internal/model"
	"github.com/AlexZinkM/wallet-core/internal/session"
)

// SessionHandler serves the session lifecycle endpoints.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login handles POST /session
// @Summary      Start an authenticated session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "Session token"
// @Success      200      {object}  model.SessionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /session [post]
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "token required")
		return
	}

	h.sessions.Authenticate(req.Token)
	h.status(w)
}

// Status handles GET /session
// @Summary      Report session state and remaining TTL
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session [get]
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	h.status(w)
}

// Logout handles DELETE /session
// @Summary      Invalidate the session
// @Description  Treated identically to expiry: state moves to Expired and the token is cleared
// @Tags         session
// @Produce      json
// @Success      204
// @Router       /session [delete]
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) status(w http.ResponseWriter) {
	authenticated := h.sessions.Validate() == nil
	writeJSON(w, http.StatusOK, model.SessionResponse{
		State:         h.sessions.State().String(),
		Authenticated: authenticated,
		RemainingSecs: int64(h.sessions.RemainingTTL().Seconds()),
	})
}
