package hd

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
)

// slip10MasterKey is the SLIP-0010 HMAC key for the ed25519 curve.
var slip10MasterKey = []byte("ed25519 seed")

// ErrHardenedOnly is returned when an ed25519 path contains a
// non-hardened segment. SLIP-0010 defines no public derivation for
// ed25519, so every step must be hardened.
var ErrHardenedOnly = errors.New("ed25519 derivation supports hardened segments only")

// slip10Derive walks a SLIP-0010 ed25519 path and returns the 32-byte
// private seed for the final node. Caller must zero the result.
func slip10Derive(seed []byte, path DerivationPath) ([]byte, error) {
	mac := hmac.New(sha512.New, slip10MasterKey)
	mac.Write(seed)
	sum := mac.Sum(nil)

	key := sum[:32]
	chainCode := sum[32:]

	for _, step := range path {
		if !step.Hardened {
			clear(sum)
			return nil, ErrHardenedOnly
		}

		var data [1 + 32 + 4]byte
		copy(data[1:33], key)
		binary.BigEndian.PutUint32(data[33:], step.Index+hardenedOffset)

		mac = hmac.New(sha512.New, chainCode)
		mac.Write(data[:])
		next := mac.Sum(nil)
		clear(data[:])
		clear(sum)

		sum = next
		key = sum[:32]
		chainCode = sum[32:]
	}

	out := make([]byte, 32)
	copy(out, key)
	clear(sum)
	return out, nil
}
