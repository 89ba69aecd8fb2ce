package handler

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/config"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"go.uber.org/zap"
)

// KeyLoader receives the keystore key once a wallet is generated.
// *client.LocalProvider implements it.
type KeyLoader interface {
	SetKey(key *ecdsa.PrivateKey)
	HasKey() bool
}

// EzKeyHandler serves the wallet, session and contract endpoints
type EzKeyHandler struct {
	filePath string
	wallet   *ezkey.Wallet
	keys     KeyLoader
	sessions *ezkey.Registry
	log      *zap.Logger
}

// NewEzKeyHandler creates a new EzKeyHandler. keys may be nil when the
// provider cannot load keys at runtime.
func NewEzKeyHandler(filePath string, wallet *ezkey.Wallet, keys KeyLoader, sessions *ezkey.Registry, log *zap.Logger) (*EzKeyHandler, error) {
	if filePath == "" {
		return nil, errors.New("EZKEY_FILE_PATH not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EzKeyHandler{
		filePath: filePath,
		wallet:   wallet,
		keys:     keys,
		sessions: sessions,
		log:      log,
	}, nil
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new Polygon key, saves it to the .cwt keystore and loads it into the wallet provider
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *EzKeyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, "", err.Error())
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	resp, err := ezkey.GenerateWallet(h.filePath, passwordBytes)
	if err != nil {
		if ezkey.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, "", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	h.log.Info("wallet generated", zap.String("address", resp.Address))

	if h.keys != nil && !h.keys.HasKey() {
		key, err := ezkey.LoadKey(h.filePath, passwordBytes)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "", err.Error())
			return
		}
		h.keys.SetKey(key)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ProviderRequest handles POST /wallet/request
// @Summary      Wallet provider request
// @Description  Forwards an eth_requestAccounts, eth_accounts, eth_chainId, wallet_switchEthereumChain or wallet_addEthereumChain request to the wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ProviderRequest  true  "Provider request"
// @Success      200      {object}  model.ProviderResponse
// @Failure      400      {object}  model.ProviderErrorResponse
// @Router       /wallet/request [post]
func (h *EzKeyHandler) ProviderRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", err.Error())
		return
	}
	if req.Method == "" {
		writeError(w, http.StatusBadRequest, "", "method is required")
		return
	}

	result, err := h.wallet.Provider().Request(r.Context(), req.Method, req.Params)
	if err != nil {
		var pe *client.ProviderError
		if errors.As(err, &pe) {
			writeJSON(w, providerStatus(pe.Code), model.ProviderErrorResponse{Error: pe.Message, Code: pe.Code})
			return
		}
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.ProviderResponse{Result: result})
}

// CheckContract handles GET /contracts/{address}
// @Summary      Check contract address
// @Description  Reports whether the address is a deployed ERC-20 token on the active network
// @Tags         contracts
// @Produce      json
// @Param        address  path      string  true  "Contract address"
// @Success      200      {object}  model.ContractCheckResponse
// @Router       /contracts/{address} [get]
func (h *EzKeyHandler) CheckContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.wallet.CheckContract(r.Context(), pathParam(r, "address"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
