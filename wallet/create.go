package wallet

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/mnemonic"
	"github.com/AlexZinkM/wallet-core/internal/store"
)

// CreateResult is returned once per wallet creation. The mnemonic is
// shown to the user for backup and never persisted in plaintext.
type CreateResult struct {
	WalletID  string
	Mnemonic  string
	Addresses map[hd.Chain]string
	QR        string // base64 PNG of the primary address
}

// Create generates a fresh mnemonic of wordCount words (12 or 24),
// derives addresses for every supported chain, and stores the wallet
// with the mnemonic sealed under password.
// password must be []byte for security (caller should zero it after use).
func (s *Service) Create(ctx context.Context, name string, password []byte, wordCount int) (*CreateResult, error) {
	phrase, err := mnemonic.Generate(wordCount)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return s.provision(ctx, name, phrase, password)
}

// Import restores a wallet from an existing mnemonic. The phrase is
// validated (wordlist membership and checksum) before anything is stored.
// password must be []byte for security (caller should zero it after use).
func (s *Service) Import(ctx context.Context, name, phrase string, password []byte) (*CreateResult, error) {
	if err := mnemonic.Validate(phrase); err != nil {
		return nil, err
	}
	return s.provision(ctx, name, phrase, password)
}

func (s *Service) provision(ctx context.Context, name, phrase string, password []byte) (*CreateResult, error) {
	seed := hd.Seed(phrase, "")
	defer clear(seed)

	addresses, paths := s.deriveAddresses(ctx, seed)
	if len(addresses) == 0 {
		return nil, fmt.Errorf("failed to derive any chain address")
	}

	blob, err := s.vault.Encrypt([]byte(phrase), password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	qr, err := addressQR(primaryAddress(addresses))
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	w := &store.Wallet{
		ID:        uuid.NewString(),
		Name:      name,
		Blob:      blob,
		QR:        qr,
		Addresses: make(map[string]string, len(addresses)),
		Paths:     make(map[string]string, len(paths)),
		CreatedAt: time.Now().UTC(),
	}
	for chain, addr := range addresses {
		w.Addresses[string(chain)] = addr
		w.Paths[string(chain)] = paths[chain]
	}

	if err := s.store.Create(w); err != nil {
		return nil, fmt.Errorf("failed to store wallet: %w", err)
	}

	s.log.Info("wallet created",
		zap.String("wallet_id", w.ID),
		zap.Int("chains", len(addresses)))

	return &CreateResult{
		WalletID:  w.ID,
		Mnemonic:  phrase,
		Addresses: addresses,
		QR:        qr,
	}, nil
}

// deriveAddresses fans out per-chain derivation. Chains are independent:
// one chain failing leaves the others in place.
func (s *Service) deriveAddresses(ctx context.Context, seed []byte) (map[hd.Chain]string, map[hd.Chain]string) {
	var (
		mu        sync.Mutex
		addresses = make(map[hd.Chain]string)
		paths     = make(map[hd.Chain]string)
	)

	g, _ := errgroup.WithContext(ctx)
	for _, chain := range hd.Chains() {
		g.Go(func() error {
			addr, path, err := deriveAddress(seed, chain)
			if err != nil {
				s.log.Warn("chain derivation failed",
					zap.String("chain", string(chain)), zap.Error(err))
				return nil
			}
			mu.Lock()
			addresses[chain] = addr
			paths[chain] = path
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return addresses, paths
}

func deriveAddress(seed []byte, chain hd.Chain) (addr, path string, err error) {
	curve, err := chain.CurveFor()
	if err != nil {
		return "", "", err
	}
	p, err := chain.DefaultPath()
	if err != nil {
		return "", "", err
	}

	pair, err := hd.Derive(seed, p, curve)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer pair.Zero()

	addr, err = hd.Address(pair.Public, chain)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode address: %w", err)
	}
	return addr, p.String(), nil
}

// primaryAddress picks the address rendered as a QR code in the create
// response, preferring Ethereum.
func primaryAddress(addresses map[hd.Chain]string) string {
	if addr, ok := addresses[hd.ChainEthereum]; ok {
		return addr
	}
	for _, chain := range hd.Chains() {
		if addr, ok := addresses[chain]; ok {
			return addr
		}
	}
	return ""
}

func addressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
