package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-core/internal/handler"
	"github.com/AlexZinkM/wallet-core/internal/session"
	"github.com/AlexZinkM/wallet-core/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(svc *wallet.Service, sessions *session.Manager, log *zap.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(svc, log)
	sessionHandler := handler.NewSessionHandler(sessions)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("POST /wallets", walletHandler.Create)
	mux.HandleFunc("GET /wallets", walletHandler.List)
	mux.HandleFunc("POST /wallets/import", walletHandler.Import)
	mux.HandleFunc("GET /wallets/{id}/addresses", walletHandler.Addresses)
	mux.HandleFunc("POST /wallets/{id}/sign", walletHandler.Sign)
	mux.HandleFunc("POST /wallets/{id}/lock", walletHandler.Lock)
	mux.HandleFunc("DELETE /wallets/{id}", walletHandler.Delete)

	// Session endpoints
	mux.HandleFunc("POST /session", sessionHandler.Login)
	mux.HandleFunc("GET /session", sessionHandler.Status)
	mux.HandleFunc("DELETE /session", sessionHandler.Logout)

	return mux
}
