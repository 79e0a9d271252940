package http

import (
	"net/http"

	"finledger/internal/core"
	"finledger/internal/services"
)

type walletRequest struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
	Currency       string `json:"currency"`
}

type walletResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
	Currency       string `json:"currency"`
}

func toWalletResponse(w core.Wallet) walletResponse {
	return walletResponse{
		ID:             w.ID,
		Name:           w.Name,
		InitialBalance: w.InitialBalance.String(),
		Currency:       w.Currency,
	}
}

func (s *Server) walletCommand(req walletRequest) (services.CreateWalletCommand, error) {
	balance, err := core.ParseAmount(req.InitialBalance)
	if err != nil {
		return services.CreateWalletCommand{}, err
	}
	return services.CreateWalletCommand{
		Name:           req.Name,
		InitialBalance: balance,
		Currency:       req.Currency,
	}, nil
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	wallets, err := s.wallets.List(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]walletResponse, 0, len(wallets))
	for _, wallet := range wallets {
		out = append(out, toWalletResponse(wallet))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req walletRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd, err := s.walletCommand(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	wallet, err := s.wallets.Create(r.Context(), uid, cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusCreated, toWalletResponse(wallet))
}

func (s *Server) handleUpdateWallet(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	var req walletRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd, err := s.walletCommand(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.wallets.Update(r.Context(), uid, id, services.UpdateWalletCommand(cmd)); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	if err := s.wallets.Delete(r.Context(), uid, id); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusNoContent, nil)
}
