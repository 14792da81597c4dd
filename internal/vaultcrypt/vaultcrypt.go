// Package vaultcrypt seals wallet secrets under a password.
//
// Keys are derived with argon2id and the payload is encrypted with
// AES-256-GCM. The persisted form is a single base64 string:
//
//	base64( salt[32] || nonce[12] || ciphertext || tag[16] )
//
// A blob is self-contained: the password alone is enough to decrypt it.
package vaultcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/AlexZinkM/wallet-core/internal/entropy"
)

const (
	saltLen  = 32
	nonceLen = 12
	tagLen   = 16
	keyLen   = 32
)

var (
	// ErrAuthenticationFailed covers both a wrong password and a tampered
	// blob. The two causes are deliberately indistinguishable so that
	// decryption cannot be used as a password-guessing oracle.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMalformedBlob means the encoded blob cannot even be parsed.
	ErrMalformedBlob = errors.New("malformed encrypted blob")
)

// KDFParams configures argon2id hardness values.
//
// Defaults target roughly one second on commodity hardware while staying
// within mobile per-app memory limits, mirroring the trade-off used for
// the scrypt-based format this package replaced.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

// DefaultKDFParams returns the fixed production parameters.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:      3,
		MemoryKiB: 64 * 1024,
		Threads:   4,
		KeyLen:    keyLen,
	}
}

// Service performs password-based authenticated encryption.
type Service struct {
	params KDFParams
}

// New returns a Service using the given KDF parameters. Zero-value fields
// fall back to defaults.
func New(params KDFParams) *Service {
	def := DefaultKDFParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = def.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}
	if params.KeyLen == 0 {
		params.KeyLen = def.KeyLen
	}
	return &Service{params: params}
}

// DeriveKey stretches password with argon2id under salt.
// Caller must zero the returned key after use.
func (s *Service) DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(
		password,
		salt,
		s.params.Time,
		s.params.MemoryKiB,
		s.params.Threads,
		s.params.KeyLen,
	)
}

// Encrypt seals plaintext under password with a fresh salt and nonce.
// password must be []byte for security (caller should zero it after use).
func (s *Service) Encrypt(plaintext, password []byte) (string, error) {
	salt, err := entropy.Read(saltLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce, err := entropy.Read(nonceLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := s.DeriveKey(password, salt)
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return "", err
	}

	// Seal appends the 16-byte tag to the ciphertext.
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, saltLen+nonceLen+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens an encoded blob with password. A wrong password and a
// tampered ciphertext both return ErrAuthenticationFailed.
// Caller must zero the returned plaintext after use.
func (s *Service) Decrypt(encoded string, password []byte) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	if len(blob) < saltLen+nonceLen+tagLen {
		return nil, ErrMalformedBlob
	}

	salt := blob[:saltLen]
	nonce := blob[saltLen : saltLen+nonceLen]
	ciphertext := blob[saltLen+nonceLen:]

	key := s.DeriveKey(password, salt)
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
