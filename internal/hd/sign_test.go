package hd

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func deriveFor(t *testing.T, chain Chain) *KeyPair {
	t.Helper()
	seed := Seed(testMnemonic, "")
	curve, err := chain.CurveFor()
	require.NoError(t, err)
	path, err := chain.DefaultPath()
	require.NoError(t, err)
	pair, err := Derive(seed, path, curve)
	require.NoError(t, err)
	return pair
}

func TestSignEthereum(t *testing.T) {
	pair := deriveFor(t, ChainEthereum)
	defer pair.Zero()
	payload := []byte("ethereum payload")

	sig, err := Sign(pair, ChainEthereum, payload)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	require.LessOrEqual(t, sig[64], byte(1), "recovery id must be 0 or 1")

	// The compact form must recover to the derived public key.
	keccak := sha3.NewLegacyKeccak256()
	keccak.Write(payload)
	digest := keccak.Sum(nil)

	compact := make([]byte, 65)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])
	pub, _, err := btcecdsa.RecoverCompact(compact, digest)
	require.NoError(t, err)
	require.Equal(t, pair.Public, pub.SerializeCompressed())
}

func TestSignBitcoin(t *testing.T) {
	pair := deriveFor(t, ChainBitcoin)
	defer pair.Zero()
	payload := []byte("bitcoin payload")

	sig, err := Sign(pair, ChainBitcoin, payload)
	require.NoError(t, err)

	parsed, err := btcecdsa.ParseDERSignature(sig)
	require.NoError(t, err)

	pub, err := btcec.ParsePubKey(pair.Public)
	require.NoError(t, err)
	require.True(t, parsed.Verify(chainhash.DoubleHashB(payload), pub))
}

func TestSignEd25519Chains(t *testing.T) {
	for _, chain := range []Chain{ChainSolana, ChainTON} {
		pair := deriveFor(t, chain)
		payload := []byte("ed25519 payload")

		sig, err := Sign(pair, chain, payload)
		require.NoError(t, err)
		require.Len(t, sig, ed25519.SignatureSize)
		require.True(t,
			ed25519.Verify(ed25519.PublicKey(pair.Public), payload, sig),
			"chain %s", chain)
		pair.Zero()
	}
}

func TestSignUnsupportedChain(t *testing.T) {
	pair := deriveFor(t, ChainEthereum)
	defer pair.Zero()
	_, err := Sign(pair, Chain("dogecoin"), []byte("x"))
	require.ErrorIs(t, err, ErrUnsupportedChain)
}

func TestTONAddressEncoding(t *testing.T) {
	pair := deriveFor(t, ChainTON)
	defer pair.Zero()

	addr, err := Address(pair.Public, ChainTON)
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(addr)
	require.NoError(t, err)
	require.Len(t, raw, 36)
	require.Equal(t, byte(tonBounceableTag), raw[0])
	require.Equal(t, byte(tonWorkchainBase), raw[1])

	crc := crc16XModem(raw[:34])
	require.Equal(t, byte(crc>>8), raw[34])
	require.Equal(t, byte(crc), raw[35])
}

func TestSolanaAddressLength(t *testing.T) {
	pair := deriveFor(t, ChainSolana)
	defer pair.Zero()

	addr, err := Address(pair.Public, ChainSolana)
	require.NoError(t, err)
	require.NotEmpty(t, addr)

	// Same seed, same path, same address on a second derivation.
	again := deriveFor(t, ChainSolana)
	defer again.Zero()
	addr2, err := Address(again.Public, ChainSolana)
	require.NoError(t, err)
	require.Equal(t, addr, addr2)
}
