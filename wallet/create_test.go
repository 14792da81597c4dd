package wallet

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/mnemonic"
	"github.com/AlexZinkM/wallet-core/internal/store"
)

func TestCreateWallet(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Create(context.Background(), "main", []byte("Secret123!"), 12)
	require.NoError(t, err)
	require.NotEmpty(t, res.WalletID)
	require.NotEmpty(t, res.QR)

	// The returned mnemonic is a valid 12-word phrase.
	require.Len(t, strings.Fields(res.Mnemonic), 12)
	require.NoError(t, mnemonic.Validate(res.Mnemonic))

	// Every supported chain got an address.
	for _, chain := range hd.Chains() {
		require.NotEmpty(t, res.Addresses[chain], "chain %s", chain)
	}
}

func TestCreateInvalidWordCount(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Create(context.Background(), "main", []byte("pw"), 13)
	require.ErrorIs(t, err, mnemonic.ErrInvalidWordCount)
}

func TestImportKnownVector(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Import(context.Background(), "restored", testMnemonic, []byte("Secret123!"))
	require.NoError(t, err)
	require.True(t, strings.EqualFold(
		"0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		res.Addresses[hd.ChainEthereum],
	))
	require.Equal(t,
		"bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
		res.Addresses[hd.ChainBitcoin],
	)
}

func TestImportDeterministic(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.svc.Import(context.Background(), "a", testMnemonic, []byte("pw1"))
	require.NoError(t, err)
	b, err := env.svc.Import(context.Background(), "b", testMnemonic, []byte("pw2"))
	require.NoError(t, err)

	// Distinct wallets, identical addresses: derivation depends only on
	// the seed and path, never on the password.
	require.NotEqual(t, a.WalletID, b.WalletID)
	require.Equal(t, a.Addresses, b.Addresses)
}

func TestImportRejectsInvalidMnemonic(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Import(context.Background(), "bad", "not a mnemonic at all", []byte("pw"))
	require.Error(t, err)

	zoo := strings.TrimSpace(strings.Repeat("zoo ", 12))
	_, err = env.svc.Import(context.Background(), "bad", zoo, []byte("pw"))
	require.ErrorIs(t, err, mnemonic.ErrInvalidChecksum)
}

func TestAddressesStableAcrossReads(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")

	first, err := env.svc.Addresses(id)
	require.NoError(t, err)
	second, err := env.svc.Addresses(id)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")

	all, err := env.svc.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, id, all[0].ID)

	require.NoError(t, env.svc.Delete(id))
	_, err = env.svc.Addresses(id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWalletInfoExcludesSecrets(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")

	info, err := env.svc.Get(id)
	require.NoError(t, err)
	require.NotEmpty(t, info.Addresses)
	// Info carries public metadata only; there is no field that could
	// hold the mnemonic, seed or a private key.
	require.NotContains(t, info.Name, testMnemonic)
}
