package http

import (
	"net/http"
	"time"

	"finledger/internal/core"
	"finledger/internal/services"
)

type transactionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CategoryID  int64  `json:"category_id"`
	WalletID    int64  `json:"wallet_id"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	TransferID  string `json:"transfer_id,omitempty"`
	CategoryID  int64  `json:"category_id"`
	WalletID    int64  `json:"wallet_id"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Amount:      t.Amount.String(),
		Description: t.Description,
		Date:        t.Date.UTC().Format(time.RFC3339),
		TransferID:  t.TransferID,
		CategoryID:  t.CategoryID,
		WalletID:    t.WalletID,
	}
}

func (s *Server) transactionFields(w http.ResponseWriter, r *http.Request, req transactionRequest) (services.CreateTransactionCommand, bool) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return services.CreateTransactionCommand{}, false
	}
	date, ok := parseDate(req.Date)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid date, expected RFC3339 or YYYY-MM-DD"})
		return services.CreateTransactionCommand{}, false
	}
	return services.CreateTransactionCommand{
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		CategoryID:  req.CategoryID,
		WalletID:    req.WalletID,
	}, true
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd, ok := s.transactionFields(w, r, req)
	if !ok {
		return
	}

	t, err := s.transactions.Create(r.Context(), uid, cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
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

	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd, ok := s.transactionFields(w, r, req)
	if !ok {
		return
	}

	if err := s.transactions.Update(r.Context(), uid, id, services.UpdateTransactionCommand(cmd)); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
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

	if err := s.transactions.Delete(r.Context(), uid, id); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusNoContent, nil)
}
