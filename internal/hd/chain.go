// Package hd implements deterministic multi-chain key derivation: BIP39
// seeds, BIP32 derivation over secp256k1, SLIP-0010 derivation over
// ed25519, and the per-chain address and signature encodings.
package hd

import (
	"errors"
	"fmt"
)

// Chain identifies a supported blockchain. The set is closed: adding a
// chain means adding a constant here plus the matching arms in the
// curve, path, address and signature switches.
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainBitcoin  Chain = "bitcoin"
	ChainSolana   Chain = "solana"
	ChainTON      Chain = "ton"
)

// Curve is the elliptic-curve family a chain derives on.
type Curve uint8

const (
	CurveSecp256k1 Curve = iota
	CurveEd25519
)

// ErrUnsupportedChain is returned for any chain outside the closed set.
var ErrUnsupportedChain = errors.New("unsupported chain")

// Chains lists every supported chain in a stable order.
func Chains() []Chain {
	return []Chain{ChainEthereum, ChainBitcoin, ChainSolana, ChainTON}
}

// ParseChain validates a chain name from external input.
func ParseChain(s string) (Chain, error) {
	switch Chain(s) {
	case ChainEthereum, ChainBitcoin, ChainSolana, ChainTON:
		return Chain(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedChain, s)
	}
}

// CurveFor returns the curve family a chain derives on.
func (c Chain) CurveFor() (Curve, error) {
	switch c {
	case ChainEthereum, ChainBitcoin:
		return CurveSecp256k1, nil
	case ChainSolana, ChainTON:
		return CurveEd25519, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedChain, c)
	}
}

// DefaultPath returns the standard account-0 derivation path for a chain.
// The path is fixed once chosen for a wallet.
func (c Chain) DefaultPath() (DerivationPath, error) {
	switch c {
	case ChainEthereum:
		return MustParsePath("m/44'/60'/0'/0/0"), nil
	case ChainBitcoin:
		return MustParsePath("m/84'/0'/0'/0/0"), nil
	case ChainSolana:
		return MustParsePath("m/44'/501'/0'/0'"), nil
	case ChainTON:
		return MustParsePath("m/44'/607'/0'"), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, c)
	}
}
