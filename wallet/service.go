// Package wallet orchestrates the wallet lifecycle: creation, import,
// address lookup and transaction signing. It composes the vault
// encryption service, the key derivation engine and the wallet store,
// and gates every signing entry point on the session manager.
package wallet

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/session"
	"github.com/AlexZinkM/wallet-core/internal/store"
	"github.com/AlexZinkM/wallet-core/internal/vaultcrypt"
)

var (
	// ErrMalformedPayload is returned for an empty or oversized payload.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrSigningTimeout is returned when the sign deadline elapses.
	// Erasure has already run by the time it is returned.
	ErrSigningTimeout = errors.New("signing timeout")
)

// maxPayloadLen bounds the payload accepted for signing.
const maxPayloadLen = 1 << 20

// State is the per-wallet signing state machine position.
type State string

const (
	StateLocked    State = "locked"
	StateUnlocking State = "unlocking"
	StateSigning   State = "signing"
)

// Broadcaster accepts a finished signature for downstream submission.
// Everything past signing is its responsibility; the core never talks
// to chain RPC itself.
type Broadcaster interface {
	Broadcast(ctx context.Context, chain hd.Chain, payload, signature, publicKey []byte) error
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Store       *store.Store
	Vault       *vaultcrypt.Service
	Sessions    *session.Manager
	Broadcaster Broadcaster // optional
	Logger      *zap.Logger // optional
}

// Service is the transaction signing orchestrator.
type Service struct {
	store       *store.Store
	vault       *vaultcrypt.Service
	sessions    *session.Manager
	broadcaster Broadcaster
	log         *zap.Logger

	mu     sync.Mutex
	locks  map[string]chan struct{}
	states map[string]State
}

// New builds a Service from cfg. Store, Vault and Sessions are required.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil || cfg.Vault == nil || cfg.Sessions == nil {
		return nil, errors.New("store, vault and session manager are required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:       cfg.Store,
		vault:       cfg.Vault,
		sessions:    cfg.Sessions,
		broadcaster: cfg.Broadcaster,
		log:         log,
		locks:       make(map[string]chan struct{}),
		states:      make(map[string]State),
	}, nil
}

// IsAuthenticated reports whether a fresh authenticated session exists.
func (s *Service) IsAuthenticated() bool {
	return s.sessions.Validate() == nil
}

// WalletState reports the signing state for a wallet id.
func (s *Service) WalletState(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok {
		return st
	}
	return StateLocked
}

// Lock resets a wallet's signing state. Secrets only live inside an
// in-flight Sign call, so there is no key material to discard here; an
// in-flight call keeps its critical section until it completes.
func (s *Service) Lock(id string) {
	s.setState(id, StateLocked)
}

func (s *Service) setState(id string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == StateLocked {
		delete(s.states, id)
		return
	}
	s.states[id] = st
}

// acquire takes the per-wallet critical section, respecting ctx while
// waiting. Release by sending on the returned channel's receive side.
func (s *Service) acquire(ctx context.Context, id string) (chan struct{}, error) {
	s.mu.Lock()
	lk, ok := s.locks[id]
	if !ok {
		lk = make(chan struct{}, 1)
		s.locks[id] = lk
	}
	s.mu.Unlock()

	select {
	case lk <- struct{}{}:
		return lk, nil
	case <-ctx.Done():
		return nil, ctxErr(ctx)
	}
}

func (s *Service) release(id string, lk chan struct{}) {
	s.setState(id, StateLocked)
	<-lk
}

func ctxErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrSigningTimeout
	}
	return ctx.Err()
}
