// One-off: decrypt a legacy scrypt-sealed wallet file and re-seal the
// payload as a current argon2id blob. Output: the new blob only.
// Usage: go run ./cmd/rekey <legacy.json>
package main

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/term"

	"github.com/AlexZinkM/wallet-core/internal/vaultcrypt"
)

const (
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

// legacyFile is the old on-disk format: scrypt key derivation with
// separate base64 salt/nonce/ciphertext fields.
type legacyFile struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rekey <legacy.json>")
		os.Exit(1)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var legacy legacyFile
	if err := json.Unmarshal(raw, &legacy); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil || len(password) == 0 {
		fmt.Fprintln(os.Stderr, "failed to read password")
		os.Exit(1)
	}
	defer clear(password)

	plaintext, err := decryptLegacy(legacy, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(plaintext)

	blob, err := vaultcrypt.New(vaultcrypt.DefaultKDFParams()).Encrypt(plaintext, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(blob)
}

func decryptLegacy(legacy legacyFile, password []byte) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(legacy.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(legacy.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(legacy.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt failed: wrong password or corrupt file")
	}
	return plaintext, nil
}
