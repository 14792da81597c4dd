package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-core/internal/hd"
	"github.com/AlexZinkM/wallet-core/internal/model"
	"github.com/AlexZinkM/wallet-core/wallet"
)

// WalletHandler serves the wallet lifecycle endpoints.
type WalletHandler struct {
	svc *wallet.Service
	log *zap.Logger
}

// NewWalletHandler creates a WalletHandler around the orchestrator.
func NewWalletHandler(svc *wallet.Service, log *zap.Logger) *WalletHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{svc: svc, log: log}
}

// Create handles POST /wallets
// @Summary      Create new wallet
// @Description  Generates a mnemonic, derives addresses for all chains and stores the encrypted wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateRequest  true  "Wallet parameters"
// @Success      200      {object}  model.CreateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "name and password required")
		return
	}
	if req.Words == 0 {
		req.Words = 12
	}

	password := []byte(req.Password)
	defer clear(password)

	res, err := h.svc.Create(r.Context(), req.Name, password, req.Words)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CreateResponse{
		WalletID:  res.WalletID,
		Mnemonic:  res.Mnemonic,
		Addresses: addressMap(res.Addresses),
		QR:        res.QR,
	})
}

// Import handles POST /wallets/import
// @Summary      Import wallet from mnemonic
// @Description  Validates the mnemonic and stores it encrypted under the password
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Import parameters"
// @Success      200      {object}  model.CreateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" || req.Mnemonic == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "name, mnemonic and password required")
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	res, err := h.svc.Import(r.Context(), req.Name, req.Mnemonic, password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// The caller already holds the mnemonic; do not echo it back.
	writeJSON(w, http.StatusOK, model.CreateResponse{
		WalletID:  res.WalletID,
		Addresses: addressMap(res.Addresses),
		QR:        res.QR,
	})
}

// List handles GET /wallets
// @Summary      List wallets
// @Tags         wallets
// @Produce      json
// @Success      200  {array}  model.WalletResponse
// @Router       /wallets [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]model.WalletResponse, 0, len(wallets))
	for _, info := range wallets {
		out = append(out, model.WalletResponse{
			ID:        info.ID,
			Name:      info.Name,
			Addresses: addressMap(info.Addresses),
			CreatedAt: info.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Addresses handles GET /wallets/{id}/addresses
// @Summary      Get wallet addresses
// @Tags         wallets
// @Produce      json
// @Param        id   path      string  true  "Wallet id"
// @Success      200  {object}  model.AddressesResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallets/{id}/addresses [get]
func (h *WalletHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	addresses, err := h.svc.Addresses(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AddressesResponse{
		WalletID:  id,
		Addresses: addressMap(addresses),
	})
}

// Sign handles POST /wallets/{id}/sign
// @Summary      Sign a payload
// @Description  Decrypts the wallet, derives the chain key, signs and erases key material
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Wallet id"
// @Param        request  body      model.SignRequest  true  "Signing parameters"
// @Success      200      {object}  model.SignResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallets/{id}/sign [post]
func (h *WalletHandler) Sign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req model.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "MALFORMED_PAYLOAD", "malformed payload")
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	res, err := h.svc.Sign(r.Context(), id, password, hd.Chain(req.Chain), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.svc.Forward(r.Context(), hd.Chain(req.Chain), payload, res); err != nil {
		h.log.Warn("broadcast forward failed", zap.String("wallet_id", id), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, model.SignResponse{
		Signature: base64.StdEncoding.EncodeToString(res.Signature),
		PublicKey: base64.StdEncoding.EncodeToString(res.PublicKey),
	})
}

// Lock handles POST /wallets/{id}/lock
// @Summary      Lock a wallet
// @Tags         wallets
// @Produce      json
// @Param        id  path  string  true  "Wallet id"
// @Success      204
// @Router       /wallets/{id}/lock [post]
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.svc.Lock(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /wallets/{id}
// @Summary      Delete a wallet
// @Description  Removes the encrypted blob and metadata atomically
// @Tags         wallets
// @Produce      json
// @Param        id  path  string  true  "Wallet id"
// @Success      204
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallets/{id} [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func addressMap(in map[hd.Chain]string) map[string]string {
	out := make(map[string]string, len(in))
	for chain, addr := range in {
		out[string(chain)] = addr
	}
	return out
}
