package wallet

import (
	"context"
	"crypto/ed25519"
	"path/filepath"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/session"
	"github.com/AlexZinkM/wallet-core/internal/store"
	"github.com/AlexZinkM/wallet-core/internal/vaultcrypt"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

type staticTimeSource struct {
	expiry time.Duration
}

func (s staticTimeSource) ServerNow() (time.Time, bool) { return time.Time{}, false }
func (s staticTimeSource) SessionExpiry() time.Duration { return s.expiry }

type recordingBroadcaster struct {
	chain   hd.Chain
	payload []byte
	calls   int
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, chain hd.Chain, payload, sig, pub []byte) error {
	b.chain = chain
	b.payload = payload
	b.calls++
	return nil
}

type testEnv struct {
	svc      *Service
	sessions *session.Manager
	clk      *clock.TestClock
	bcast    *recordingBroadcaster
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "wallets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clk := clock.NewTestClock(time.Unix(1000, 0))
	sessions := session.NewManager(staticTimeSource{expiry: time.Hour}, clk)

	bcast := &recordingBroadcaster{}
	svc, err := New(Config{
		Store:       st,
		Vault:       vaultcrypt.New(vaultcrypt.KDFParams{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32}),
		Sessions:    sessions,
		Broadcaster: bcast,
	})
	require.NoError(t, err)

	return &testEnv{svc: svc, sessions: sessions, clk: clk, bcast: bcast}
}

func (e *testEnv) importWallet(t *testing.T, password string) string {
	t.Helper()
	res, err := e.svc.Import(context.Background(), "test", testMnemonic, []byte(password))
	require.NoError(t, err)
	return res.WalletID
}

func TestSignRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")

	_, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.ErrorIs(t, err, session.ErrSessionExpired)
	require.False(t, env.svc.IsAuthenticated())
}

func TestSignAfterExpiry(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")

	env.sessions.Authenticate("tok")
	env.clk.SetTime(time.Unix(1000, 0).Add(2 * time.Hour))

	_, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestSignHappyPath(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	payload := []byte("transfer 1 wei")
	res, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainEthereum, payload)
	require.NoError(t, err)
	require.Len(t, res.Signature, 65)
	require.Len(t, res.PublicKey, 33)

	// The wallet is locked again once the call returns.
	require.Equal(t, StateLocked, env.svc.WalletState(id))
}

func TestSignSolanaVerifies(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	payload := []byte("solana message")
	res, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainSolana, payload)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(ed25519.PublicKey(res.PublicKey), payload, res.Signature))
}

func TestSignWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	_, err := env.svc.Sign(context.Background(), id, []byte("wrong"), hd.ChainEthereum, []byte("tx"))
	require.ErrorIs(t, err, vaultcrypt.ErrAuthenticationFailed)

	// A failed attempt leaves the wallet usable with the right password.
	_, err = env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.NoError(t, err)
}

func TestSignUnsupportedChain(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	_, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.Chain("dogecoin"), []byte("tx"))
	require.ErrorIs(t, err, hd.ErrUnsupportedChain)
}

func TestSignMalformedPayload(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	_, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainEthereum, nil)
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestSignUnknownWallet(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Authenticate("tok")

	_, err := env.svc.Sign(context.Background(), "missing", []byte("pw"), hd.ChainEthereum, []byte("tx"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSignTimeout(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := env.svc.Sign(ctx, id, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.ErrorIs(t, err, ErrSigningTimeout)
	require.Equal(t, StateLocked, env.svc.WalletState(id))
}

// Two concurrent signs against one wallet must not interleave: the
// second caller observes the critical section as held until the first
// completes.
func TestConcurrentSignSerializes(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	lk, err := env.svc.acquire(context.Background(), id)
	require.NoError(t, err)

	// While the section is held, a bounded second call times out waiting.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = env.svc.Sign(ctx, id, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.ErrorIs(t, err, ErrSigningTimeout)

	env.svc.release(id, lk)

	// Once released, signing proceeds.
	_, err = env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.NoError(t, err)
}

// Different wallets never share a critical section.
func TestSignDistinctWalletsNotSerialized(t *testing.T) {
	env := newTestEnv(t)
	id1 := env.importWallet(t, "Secret123!")
	res, err := env.svc.Import(context.Background(), "second",
		"legal winner thank you legal winner thank you legal winner thank you legal will",
		[]byte("Secret123!"))
	require.NoError(t, err)
	id2 := res.WalletID
	env.sessions.Authenticate("tok")

	lk, err := env.svc.acquire(context.Background(), id1)
	require.NoError(t, err)
	defer env.svc.release(id1, lk)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err = env.svc.Sign(ctx, id2, []byte("Secret123!"), hd.ChainEthereum, []byte("tx"))
	require.NoError(t, err)
}

func TestForward(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	env.sessions.Authenticate("tok")

	payload := []byte("tx")
	res, err := env.svc.Sign(context.Background(), id, []byte("Secret123!"), hd.ChainSolana, payload)
	require.NoError(t, err)

	require.NoError(t, env.svc.Forward(context.Background(), hd.ChainSolana, payload, res))
	require.Equal(t, 1, env.bcast.calls)
	require.Equal(t, hd.ChainSolana, env.bcast.chain)
	require.Equal(t, payload, env.bcast.payload)
}

func TestLock(t *testing.T) {
	env := newTestEnv(t)
	id := env.importWallet(t, "Secret123!")
	require.Equal(t, StateLocked, env.svc.WalletState(id))
	env.svc.Lock(id)
	require.Equal(t, StateLocked, env.svc.WalletState(id))
}
