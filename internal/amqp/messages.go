package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage tells the export worker that part of the ledger changed.
// It carries only the scope and entity id; the worker reads the current
// snapshot from the database, so a lost message costs one export cycle,
// never data.
type ChangeMessage struct {
	Scope     string    `json:"scope"` // transaction, account, category, settings
	EntityID  string    `json:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(scope, entityID string) *ChangeMessage {
	return &ChangeMessage{
		Scope:     scope,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
