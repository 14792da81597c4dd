package wallet

import (
	"time"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/store"
)

// Info is the public view of a stored wallet.
type Info struct {
	ID        string
	Name      string
	Addresses map[hd.Chain]string
	CreatedAt string
	QR        string
}

// Addresses returns the per-chain addresses recorded for a wallet.
func (s *Service) Addresses(walletID string) (map[hd.Chain]string, error) {
	w, err := s.store.Get(walletID)
	if err != nil {
		return nil, err
	}
	return chainAddresses(w), nil
}

// Get returns the public view of one wallet.
func (s *Service) Get(walletID string) (*Info, error) {
	w, err := s.store.Get(walletID)
	if err != nil {
		return nil, err
	}
	return toInfo(w), nil
}

// List returns the public view of every stored wallet.
func (s *Service) List() ([]*Info, error) {
	wallets, err := s.store.List()
	if err != nil {
		return nil, err
	}
	out := make([]*Info, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toInfo(w))
	}
	return out, nil
}

// Delete removes a wallet's blob and metadata atomically.
func (s *Service) Delete(walletID string) error {
	return s.store.Delete(walletID)
}

func toInfo(w *store.Wallet) *Info {
	return &Info{
		ID:        w.ID,
		Name:      w.Name,
		Addresses: chainAddresses(w),
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
		QR:        w.QR,
	}
}

func chainAddresses(w *store.Wallet) map[hd.Chain]string {
	out := make(map[hd.Chain]string, len(w.Addresses))
	for chain, addr := range w.Addresses {
		out[hd.Chain(chain)] = addr
	}
	return out
}
