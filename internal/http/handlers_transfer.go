package http

import (
	"net/http"

	"finledger/internal/core"
	"finledger/internal/services"
)

type transferRequest struct {
	CategoryID   int64  `json:"category_id"`
	FromWalletID int64  `json:"from_wallet_id"`
	ToWalletID   int64  `json:"to_wallet_id"`
	FromAmount   string `json:"from_amount"`
	ToAmount     string `json:"to_amount"`
	Description  string `json:"description"`
	Date         string `json:"date"`
}

type transferResponse struct {
	TransferID string              `json:"transfer_id"`
	Out        transactionResponse `json:"out"`
	In         transactionResponse `json:"in"`
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req transferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fromAmount, err := core.ParseAmount(req.FromAmount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	toAmount, err := core.ParseAmount(req.ToAmount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid date, expected RFC3339 or YYYY-MM-DD"})
		return
	}

	out, in, err := s.transfers.CreateTransfer(r.Context(), uid, services.CreateTransferCommand{
		CategoryID:   req.CategoryID,
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		FromAmount:   fromAmount,
		ToAmount:     toAmount,
		Description:  req.Description,
		Date:         date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateOverview(uid)
	writeJSON(w, http.StatusCreated, transferResponse{
		TransferID: out.TransferID,
		Out:        toTransactionResponse(out),
		In:         toTransactionResponse(in),
	})
}
