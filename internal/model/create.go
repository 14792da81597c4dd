package model

// CreateRequest represents request for POST /wallets
type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Words    int    `json:"words,omitempty"` // 12 (default) or 24
}

// ImportRequest represents request for POST /wallets/import
type ImportRequest struct {
	Name     string `json:"name" binding:"required"`
	Mnemonic string `json:"mnemonic" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateResponse represents response for wallet creation and import.
// Mnemonic is returned exactly once, at creation, for user backup.
type CreateResponse struct {
	WalletID  string            `json:"walletId"`
	Mnemonic  string            `json:"mnemonic,omitempty"`
	Addresses map[string]string `json:"addresses"`
	QR        string            `json:"QR"`
}
