package model

// WalletResponse represents one wallet in GET /wallets responses
type WalletResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Addresses map[string]string `json:"addresses"`
	CreatedAt string            `json:"createdAt"`
	QR        string            `json:"QR,omitempty"`
}

// AddressesResponse represents response for GET /wallets/{id}/addresses
type AddressesResponse struct {
	WalletID  string            `json:"walletId"`
	Addresses map[string]string `json:"addresses"`
}
