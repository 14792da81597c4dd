package hd

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/sha3"
)

// Address encodes a derived public key into the chain's address format.
func Address(pub []byte, chain Chain) (string, error) {
	switch chain {
	case ChainEthereum:
		return ethereumAddress(pub)
	case ChainBitcoin:
		return bitcoinAddress(pub)
	case ChainSolana:
		return solanaAddress(pub)
	case ChainTON:
		return tonAddress(pub)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
	}
}

// ethereumAddress is the last 20 bytes of keccak256 over the uncompressed
// public point, rendered with the EIP-55 checksum casing.
func ethereumAddress(pub []byte) (string, error) {
	pubKey, err := btcec.ParsePubKey(pub)
	if err != nil {
		return "", fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	uncompressed := pubKey.SerializeUncompressed()

	keccak := sha3.NewLegacyKeccak256()
	keccak.Write(uncompressed[1:]) // drop the 0x04 prefix
	digest := keccak.Sum(nil)

	return common.BytesToAddress(digest[12:]).Hex(), nil
}

// bitcoinAddress is a mainnet P2WPKH (bech32) address of the compressed
// public key hash.
func bitcoinAddress(pub []byte) (string, error) {
	if _, err := btcec.ParsePubKey(pub); err != nil {
		return "", fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(
		btcutil.Hash160(pub), &chaincfg.MainNetParams,
	)
	if err != nil {
		return "", fmt.Errorf("failed to encode witness address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// solanaAddress is the base58 form of the ed25519 public key itself.
func solanaAddress(pub []byte) (string, error) {
	if len(pub) != 32 {
		return "", fmt.Errorf("invalid ed25519 public key length %d", len(pub))
	}
	return solana.PublicKeyFromBytes(pub).String(), nil
}

const (
	// tonBounceableTag marks a bounceable mainnet address.
	tonBounceableTag = 0x11
	tonWorkchainBase = 0x00
)

// tonAddress is the user-friendly base64url form: tag, workchain,
// 32-byte account hash, CRC16-XMODEM.
func tonAddress(pub []byte) (string, error) {
	if len(pub) != 32 {
		return "", fmt.Errorf("invalid ed25519 public key length %d", len(pub))
	}
	accountID := sha256.Sum256(pub)

	raw := make([]byte, 0, 36)
	raw = append(raw, tonBounceableTag, tonWorkchainBase)
	raw = append(raw, accountID[:]...)

	crc := crc16XModem(raw)
	raw = append(raw, byte(crc>>8), byte(crc))

	return base64.URLEncoding.EncodeToString(raw), nil
}

// crc16XModem computes CRC16 with the XMODEM polynomial (0x1021, zero init).
func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
