package hd

import (
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/sha3"
)

// Sign produces a chain-native signature over payload with the key pair's
// private component. The private key is read but never retained.
func Sign(pair *KeyPair, chain Chain, payload []byte) ([]byte, error) {
	switch chain {
	case ChainEthereum:
		return signEthereum(pair, payload)
	case ChainBitcoin:
		return signBitcoin(pair, payload)
	case ChainSolana:
		return signSolana(pair, payload)
	case ChainTON:
		return signTON(pair, payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
	}
}

// signEthereum signs keccak256(payload) and returns the 65-byte
// [R || S || V] form with V in {0, 1}.
func signEthereum(pair *KeyPair, payload []byte) ([]byte, error) {
	priv, _ := btcec.PrivKeyFromBytes(pair.Private)
	defer priv.Zero()

	keccak := sha3.NewLegacyKeccak256()
	keccak.Write(payload)
	digest := keccak.Sum(nil)

	// SignCompact prepends the recovery flag; Ethereum wants it last.
	compact := ecdsa.SignCompact(priv, digest, false)
	sig := make([]byte, 65)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27
	return sig, nil
}

// signBitcoin signs double-sha256(payload) and returns a DER signature.
func signBitcoin(pair *KeyPair, payload []byte) ([]byte, error) {
	priv, _ := btcec.PrivKeyFromBytes(pair.Private)
	defer priv.Zero()

	digest := chainhash.DoubleHashB(payload)
	return ecdsa.Sign(priv, digest).Serialize(), nil
}

// signSolana signs the raw payload with ed25519 via the solana-go key type.
func signSolana(pair *KeyPair, payload []byte) ([]byte, error) {
	edPriv := ed25519.NewKeyFromSeed(pair.Private)
	defer clear(edPriv)

	sig, err := solana.PrivateKey(edPriv).Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}
	return sig[:], nil
}

// signTON signs the raw payload with ed25519.
func signTON(pair *KeyPair, payload []byte) ([]byte, error) {
	edPriv := ed25519.NewKeyFromSeed(pair.Private)
	defer clear(edPriv)

	return ed25519.Sign(edPriv, payload), nil
}
