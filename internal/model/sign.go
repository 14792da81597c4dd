package model

// SignRequest represents request for POST /wallets/{id}/sign
type SignRequest struct {
	Password string `json:"password" binding:"required"`
	Chain    string `json:"chain" binding:"required"`
	Payload  string `json:"payload" binding:"required"` // base64
}

// SignResponse represents response for POST /wallets/{id}/sign
type SignResponse struct {
	Signature string `json:"signature"` // base64
	PublicKey string `json:"publicKey"` // base64
}
