package wallet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-core/internal/hd"
)

// SignResult carries the finished signature and the public key that
// verifies it. The private key never leaves the Sign call.
type SignResult struct {
	Signature []byte
	PublicKey []byte
}

// Sign decrypts the wallet, derives the chain key and signs payload.
//
// The whole sequence runs inside the wallet's exclusive critical
// section, so at most one copy of the key material exists per wallet at
// any time. Seed and private key are erased on every exit path,
// including cancellation; a deadline surfaces as ErrSigningTimeout only
// after erasure has run.
// password must be []byte for security (caller should zero it after use).
func (s *Service) Sign(ctx context.Context, walletID string, password []byte, chain hd.Chain, payload []byte) (*SignResult, error) {
	if err := s.sessions.Validate(); err != nil {
		return nil, err
	}
	if _, err := hd.ParseChain(string(chain)); err != nil {
		return nil, err
	}
	if len(payload) == 0 || len(payload) > maxPayloadLen {
		return nil, ErrMalformedPayload
	}

	lk, err := s.acquire(ctx, walletID)
	if err != nil {
		return nil, err
	}
	defer s.release(walletID, lk)

	res, err := s.signLocked(ctx, walletID, password, chain, payload)
	if err != nil {
		s.log.Info("sign failed",
			zap.String("wallet_id", walletID),
			zap.String("chain", string(chain)),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}

// signLocked runs the decrypt → derive → sign pipeline. Caller holds the
// wallet's critical section.
func (s *Service) signLocked(ctx context.Context, walletID string, password []byte, chain hd.Chain, payload []byte) (*SignResult, error) {
	s.setState(walletID, StateUnlocking)

	w, err := s.store.Get(walletID)
	if err != nil {
		return nil, err
	}

	phrase, err := s.vault.Decrypt(w.Blob, password)
	if err != nil {
		return nil, err
	}
	defer clear(phrase)

	// The KDF is the slow step; honour a deadline that fired during it
	// before touching key material any further.
	if ctx.Err() != nil {
		return nil, ctxErr(ctx)
	}

	seed := hd.Seed(string(phrase), "")
	defer clear(seed)

	curve, err := chain.CurveFor()
	if err != nil {
		return nil, err
	}
	path, err := s.recordedPath(w.Paths, chain)
	if err != nil {
		return nil, err
	}

	pair, err := hd.Derive(seed, path, curve)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer pair.Zero()

	s.setState(walletID, StateSigning)

	if ctx.Err() != nil {
		return nil, ctxErr(ctx)
	}

	sig, err := hd.Sign(pair, chain, payload)
	if err != nil {
		return nil, err
	}

	pub := make([]byte, len(pair.Public))
	copy(pub, pair.Public)
	return &SignResult{Signature: sig, PublicKey: pub}, nil
}

// recordedPath returns the derivation path fixed for (wallet, chain) at
// creation time, falling back to the chain default for records that
// predate path recording.
func (s *Service) recordedPath(paths map[string]string, chain hd.Chain) (hd.DerivationPath, error) {
	if raw, ok := paths[string(chain)]; ok {
		path, err := hd.ParsePath(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt recorded path for %s: %w", chain, err)
		}
		return path, nil
	}
	return chain.DefaultPath()
}

// Forward hands a finished signature to the configured broadcast layer.
// It is a no-op without one; everything downstream of signing is the
// broadcaster's responsibility.
func (s *Service) Forward(ctx context.Context, chain hd.Chain, payload []byte, res *SignResult) error {
	if s.broadcaster == nil {
		return nil
	}
	return s.broadcaster.Broadcast(ctx, chain, payload, res.Signature, res.PublicKey)
}
