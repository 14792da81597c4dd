package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "wallets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testWallet(id string) *Wallet {
	return &Wallet{
		ID:        id,
		Name:      "main",
		Blob:      "c2FsdA==",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	w := testWallet("w1")
	require.NoError(t, s.Create(w))

	got, err := s.Get("w1")
	require.NoError(t, err)
	require.Equal(t, "w1", got.ID)
	require.Equal(t, "main", got.Name)
	require.Equal(t, w.Blob, got.Blob)
	require.Equal(t, schemaVersion, got.Version)
}

func TestCreateDuplicate(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Create(testWallet("w1")))
	require.ErrorIs(t, s.Create(testWallet("w1")), ErrExists)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Create(testWallet("w1")))
	require.NoError(t, s.Create(testWallet("w2")))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestDeleteAtomic(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Create(testWallet("w1")))
	require.NoError(t, s.Delete("w1"))

	_, err := s.Get("w1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete("w1"), ErrNotFound)
}

func TestAddAddressAppendOnly(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Create(testWallet("w1")))

	require.NoError(t, s.AddAddress("w1", "ethereum", "0xabc", "m/44'/60'/0'/0/0"))
	err := s.AddAddress("w1", "ethereum", "0xdef", "m/44'/60'/0'/0/1")
	require.ErrorIs(t, err, ErrAddressExists)

	got, err := s.Get("w1")
	require.NoError(t, err)
	require.Equal(t, "0xabc", got.Addresses["ethereum"])
	require.Equal(t, "m/44'/60'/0'/0/0", got.Paths["ethereum"])
}

func TestUnsupportedVersion(t *testing.T) {
	// A record written by a future schema must be rejected, not guessed at.
	_, err := decode([]byte(`{"id":"w2","version":99}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}
