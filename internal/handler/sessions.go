package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const codeNotFound = "not_found"

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// session resolves {id} or writes 404
func (h *EzKeyHandler) session(w http.ResponseWriter, r *http.Request) (*ezkey.Session, bool) {
	s, ok := h.sessions.Get(pathParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "session not found")
		return nil, false
	}
	return s, true
}

// CreateSession handles POST /sessions
// @Summary      Connect wallet
// @Description  Requests the wallet account and opens a session for it
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  model.SessionResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      403  {object}  model.ErrorResponse
// @Router       /sessions [post]
func (h *EzKeyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	s, err := h.wallet.Connect(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.sessions.Add(s)

	status, err := s.Network(r.Context())
	if err != nil {
		h.log.Warn("network status unavailable", zap.String("session", s.ID()), zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, model.SessionResponse{
		ID:      s.ID(),
		Address: s.Address().Hex(),
		Network: status,
	})
}

// DeleteSession handles DELETE /sessions/{id}
// @Summary      Disconnect wallet
// @Description  Closes the session and drops its snapshot
// @Tags         sessions
// @Param        id   path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  model.ErrorResponse
// @Router       /sessions/{id} [delete]
func (h *EzKeyHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	if !h.sessions.Remove(pathParam(r, "id")) {
		writeError(w, http.StatusNotFound, codeNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetNetwork handles GET /sessions/{id}/network
// @Summary      Network status
// @Description  Compares the wallet's chain with the required network
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  model.NetworkStatus
// @Router       /sessions/{id}/network [get]
func (h *EzKeyHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	status, err := s.Network(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// SwitchNetwork handles POST /sessions/{id}/network/switch
// @Summary      Switch network
// @Description  Asks the wallet to switch to the required network, adding it when unknown
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  model.NetworkStatus
// @Failure      403  {object}  model.ErrorResponse
// @Router       /sessions/{id}/network/switch [post]
func (h *EzKeyHandler) SwitchNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	status, err := s.SwitchNetwork(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// GetSnapshot handles GET /sessions/{id}/snapshot
// @Summary      Key snapshot
// @Description  Returns the derived view of the account. The first call or refresh=true rebuilds it from the contracts.
// @Tags         sessions
// @Produce      json
// @Param        id       path      string  true   "Session ID"
// @Param        refresh  query     bool    false  "Rebuild from the contracts"
// @Success      200      {object}  model.UserSnapshot
// @Failure      409      {object}  model.WrongNetworkResponse
// @Router       /sessions/{id}/snapshot [get]
func (h *EzKeyHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.Snapshot()
	if snap == nil || r.URL.Query().Get("refresh") == "true" {
		var err error
		snap, err = s.Refresh(r.Context())
		if err != nil {
			if ezkey.IsWrongNetworkError(err) {
				writeDomainError(w, err)
				return
			}
			writeError(w, http.StatusBadGateway, "", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, snap)
}

// ProbeBalances handles GET /sessions/{id}/balances/probe
// @Summary      Probe balance strategies
// @Description  Runs every configured internal balance strategy and reports each outcome
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  model.BalanceProbeResponse
// @Router       /sessions/{id}/balances/probe [get]
func (h *EzKeyHandler) ProbeBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	resp, err := s.Probe(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Estimate handles GET /sessions/{id}/estimate/{action}
// @Summary      Estimate action cost
// @Description  Estimates gas and fee of an action without submitting it
// @Tags         actions
// @Produce      json
// @Param        id       path      string  true   "Session ID"
// @Param        action   path      string  true   "mint, claim, upgrade-silver, upgrade-gold, burn, transfer or approve"
// @Param        to       query     string  false  "Transfer destination"
// @Param        spender  query     string  false  "Approve spender"
// @Param        amount   query     string  false  "Approve amount"
// @Success      200      {object}  model.GasEstimate
// @Router       /sessions/{id}/estimate/{action} [get]
func (h *EzKeyHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	action, err := ezkey.ParseAction(pathParam(r, "action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "", err.Error())
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	est, err := s.Estimate(r.Context(), action, ezkey.ActionParams{To: q.Get("to"), Spender: q.Get("spender"), Amount: q.Get("amount")})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// Execute handles POST /sessions/{id}/actions/{action}
// @Summary      Run action
// @Description  Submits the action, waits for one confirmation and returns the refreshed snapshot
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        id       path      string               true   "Session ID"
// @Param        action   path      string               true   "mint, claim, upgrade-silver, upgrade-gold, burn, transfer or approve"
// @Param        request  body      model.ActionRequest  false  "Transfer or approve arguments"
// @Success      200      {object}  model.ActionResponse
// @Failure      403      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /sessions/{id}/actions/{action} [post]
func (h *EzKeyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	action, err := ezkey.ParseAction(pathParam(r, "action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "", err.Error())
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "", err.Error())
		return
	}

	resp, err := s.Execute(r.Context(), action, ezkey.ActionParams{To: req.To, Spender: req.Spender, Amount: req.Amount})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
