package model

// LoginRequest represents request for POST /session
type LoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// SessionResponse represents response for GET /session
type SessionResponse struct {
	State         string `json:"state"`
	Authenticated bool   `json:"authenticated"`
	RemainingSecs int64  `json:"remainingSeconds"`
}
