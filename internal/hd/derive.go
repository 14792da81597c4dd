package hd

import (
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// hardenedOffset marks a hardened child index (matches
// hdkeychain.HardenedKeyStart).
const hardenedOffset = 0x80000000

// KeyPair holds derived key material for one chain.
// Private is transient; callers must Zero it after use.
type KeyPair struct {
	Curve   Curve
	Private []byte // 32-byte scalar (secp256k1) or ed25519 seed
	Public  []byte // 33-byte compressed point or 32-byte ed25519 key
}

// Zero overwrites the private component.
func (k *KeyPair) Zero() {
	clear(k.Private)
}

// Derive walks path below the master key of seed on the given curve.
// Identical (seed, path, curve) inputs always yield the identical pair.
func Derive(seed []byte, path DerivationPath, curve Curve) (*KeyPair, error) {
	switch curve {
	case CurveSecp256k1:
		return deriveSecp256k1(seed, path)
	case CurveEd25519:
		return deriveEd25519(seed, path)
	default:
		return nil, fmt.Errorf("unknown curve %d", curve)
	}
}

func deriveSecp256k1(seed []byte, path DerivationPath) (*KeyPair, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to derive master key: %w", err)
	}
	defer master.Zero()

	key := master
	for _, step := range path {
		idx := step.Index
		if step.Hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		next, err := key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive step %d: %w", step.Index, err)
		}
		if key != master {
			key.Zero()
		}
		key = next
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	pair := &KeyPair{
		Curve:   CurveSecp256k1,
		Private: priv.Serialize(),
		Public:  priv.PubKey().SerializeCompressed(),
	}
	if key != master {
		key.Zero()
	}
	priv.Zero()
	return pair, nil
}

func deriveEd25519(seed []byte, path DerivationPath) (*KeyPair, error) {
	privSeed, err := slip10Derive(seed, path)
	if err != nil {
		return nil, err
	}

	edPriv := ed25519.NewKeyFromSeed(privSeed)
	defer clear(edPriv)

	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, edPriv[32:])

	return &KeyPair{
		Curve:   CurveEd25519,
		Private: privSeed,
		Public:  pub,
	}, nil
}
