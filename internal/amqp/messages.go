package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InsightAlertMessage carries one generated insight onto the bus. The
// EventID lets consumers deduplicate redeliveries.
type InsightAlertMessage struct {
	EventID   string    `json:"event_id"`
	Window    string    `json:"window"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewInsightAlertMessage(window, insightType, title, message string) *InsightAlertMessage {
	return &InsightAlertMessage{
		EventID:   uuid.NewString(),
		Window:    window,
		Type:      insightType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func (m *InsightAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InsightAlertMessageFromJSON(data []byte) (*InsightAlertMessage, error) {
	var msg InsightAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ExpenseCreatedMessage announces a newly recorded expense. Consumers
// fetch full details from the store by ID; the amount rides along so
// cheap consumers need no lookup.
type ExpenseCreatedMessage struct {
	EventID     string    `json:"event_id"`
	ExpenseID   int64     `json:"expense_id"`
	CategoryID  int64     `json:"category_id"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseCreatedMessage(expenseID, categoryID, amountCents int64) *ExpenseCreatedMessage {
	return &ExpenseCreatedMessage{
		EventID:     uuid.NewString(),
		ExpenseID:   expenseID,
		CategoryID:  categoryID,
		AmountCents: amountCents,
		Timestamp:   time.Now(),
	}
}

func (m *ExpenseCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseCreatedMessageFromJSON(data []byte) (*ExpenseCreatedMessage, error) {
	var msg ExpenseCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
