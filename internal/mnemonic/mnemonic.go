// Package mnemonic generates and validates BIP39 recovery phrases.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"

	"github.com/AlexZinkM/wallet-core/internal/entropy"
)

var (
	// ErrUnknownWord means the phrase contains a word outside the wordlist.
	ErrUnknownWord = errors.New("unknown mnemonic word")

	// ErrInvalidChecksum means all words are valid but the embedded
	// checksum does not match the decoded entropy.
	ErrInvalidChecksum = errors.New("invalid mnemonic checksum")

	// ErrInvalidWordCount means the phrase is not 12 or 24 words long.
	ErrInvalidWordCount = errors.New("mnemonic must be 12 or 24 words")
)

var (
	wordSetOnce sync.Once
	wordSet     map[string]struct{}
)

func wordlist() map[string]struct{} {
	wordSetOnce.Do(func() {
		words := bip39.GetWordList()
		wordSet = make(map[string]struct{}, len(words))
		for _, w := range words {
			wordSet[w] = struct{}{}
		}
	})
	return wordSet
}

// Generate produces a new mnemonic of wordCount words (12 or 24),
// drawing 128 or 256 bits from the entropy source.
func Generate(wordCount int) (string, error) {
	var bits int
	switch wordCount {
	case 12:
		bits = 128
	case 24:
		bits = 256
	default:
		return "", ErrInvalidWordCount
	}

	ent, err := entropy.Read(bits / 8)
	if err != nil {
		return "", err
	}
	defer clear(ent)

	phrase, err := bip39.NewMnemonic(ent)
	if err != nil {
		return "", fmt.Errorf("failed to build mnemonic: %w", err)
	}
	return phrase, nil
}

// Validate checks word count, wordlist membership and the BIP39 checksum.
func Validate(phrase string) error {
	words := strings.Fields(strings.TrimSpace(phrase))
	if len(words) != 12 && len(words) != 24 {
		return ErrInvalidWordCount
	}

	list := wordlist()
	for _, w := range words {
		if _, ok := list[w]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
	}

	// Words are all known, so a decode failure can only be the checksum.
	if _, err := bip39.EntropyFromMnemonic(strings.Join(words, " ")); err != nil {
		return ErrInvalidChecksum
	}
	return nil
}
