package hd

import (
	"github.com/tyler-smith/go-bip39"
)

// SeedLen is the length of a BIP39 seed in bytes.
const SeedLen = 64

// Seed stretches a mnemonic and optional passphrase into a 64-byte seed
// (standard BIP39 derivation). Caller must zero the seed after use.
func Seed(mnemonic, passphrase string) []byte {
	return bip39.NewSeed(mnemonic, passphrase)
}
