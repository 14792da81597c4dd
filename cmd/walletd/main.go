// walletd serves the wallet core over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-core/internal/api"
	"github.com/AlexZinkM/wallet-core/internal/config"
	"github.com/AlexZinkM/wallet-core/internal/session"
	"github.com/AlexZinkM/wallet-core/internal/store"
	"github.com/AlexZinkM/wallet-core/internal/vaultcrypt"
	"github.com/AlexZinkM/wallet-core/wallet"
)

// configTimeSource feeds the session manager from the loaded config.
// Server time is not available in a standalone deployment, so the
// manager falls back to its injected clock.
type configTimeSource struct{}

func (configTimeSource) ServerNow() (time.Time, bool) { return time.Time{}, false }
func (configTimeSource) SessionExpiry() time.Duration { return config.GetSessionTTL() }

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("walletd exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions := session.NewManager(configTimeSource{}, clock.NewDefaultClock())
	vault := vaultcrypt.New(vaultcrypt.KDFParams{
		Time:      cfg.KDFTime,
		MemoryKiB: cfg.KDFMemoryKiB,
		Threads:   cfg.KDFThreads,
	})

	svc, err := wallet.New(wallet.Config{
		Store:    st,
		Vault:    vault,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.SetupRouter(svc, sessions, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("walletd listening", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("walletd stopped")
	}
	return nil
}
