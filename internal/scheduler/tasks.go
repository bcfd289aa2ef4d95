package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskLedgerRecord = "credits.ledger.record"

type LedgerRecordPayload struct {
	EntryID      string    `json:"entryId"`
	AccountID    string    `json:"accountId"`
	EntryType    string    `json:"entryType"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balanceAfter"`
	Reference    string    `json:"reference,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func NewLedgerRecordTask(payload LedgerRecordPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerRecord, data), nil
}

func ParseLedgerRecordPayload(task *asynq.Task) (LedgerRecordPayload, error) {
	var payload LedgerRecordPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LedgerRecordPayload{}, err
	}
	return payload, nil
}
