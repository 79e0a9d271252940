package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event types published on the write path.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventTransferCreated    = "transfer.created"
	EventTransferDeleted    = "transfer.deleted"
)

// LedgerEvent is a lightweight notification about a write-path change. It
// carries ids only; consumers fetch the full rows from the store if needed.
type LedgerEvent struct {
	Type           string    `json:"type"`
	UserID         int64     `json:"user_id"`
	TransactionIDs []int64   `json:"transaction_ids"`
	TransferID     string    `json:"transfer_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewLedgerEvent(eventType string, userID int64, transactionIDs []int64, transferID string) *LedgerEvent {
	return &LedgerEvent{
		Type:           eventType,
		UserID:         userID,
		TransactionIDs: transactionIDs,
		TransferID:     transferID,
		Timestamp:      time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
