package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/mnemonic"
	"github.com/AlexZinkM/wallet-core/internal/model"
	"github.com/AlexZinkM/wallet-core/internal/session"
	"github.com/AlexZinkM/wallet-core/internal/store"
	"github.com/AlexZinkM/wallet-core/internal/vaultcrypt"
	"github.com/AlexZinkM/wallet-core/wallet"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

// writeServiceError maps core errors onto generic category labels.
// Raw internal detail never reaches the response body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "SESSION_EXPIRED", "session expired")
	case errors.Is(err, vaultcrypt.ErrAuthenticationFailed):
		writeError(w, http.StatusUnauthorized, "AUTH_FAILED", "wrong password")
	case errors.Is(err, hd.ErrUnsupportedChain):
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_CHAIN", "unsupported chain")
	case errors.Is(err, wallet.ErrMalformedPayload):
		writeError(w, http.StatusBadRequest, "MALFORMED_PAYLOAD", "malformed payload")
	case errors.Is(err, wallet.ErrSigningTimeout):
		writeError(w, http.StatusGatewayTimeout, "SIGNING_TIMEOUT", "signing timeout")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "WALLET_NOT_FOUND", "wallet not found")
	case errors.Is(err, store.ErrExists):
		writeError(w, http.StatusConflict, "WALLET_EXISTS", "wallet already exists")
	case errors.Is(err, mnemonic.ErrUnknownWord),
		errors.Is(err, mnemonic.ErrInvalidChecksum),
		errors.Is(err, mnemonic.ErrInvalidWordCount):
		writeError(w, http.StatusBadRequest, "INVALID_MNEMONIC", "invalid mnemonic")
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
