package amqp

import (
	"testing"
	"time"
)

func TestNewChangeMessage(t *testing.T) {
	msg := NewChangeMessage("transaction", "t-42")

	if msg.Scope != "transaction" {
		t.Errorf("Scope = %q, want transaction", msg.Scope)
	}
	if msg.EntityID != "t-42" {
		t.Errorf("EntityID = %q, want t-42", msg.EntityID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestChangeMessage_JSON(t *testing.T) {
	timestamp := time.Date(2025, 11, 6, 12, 0, 0, 0, time.UTC)
	msg := &ChangeMessage{
		Scope:     "account",
		EntityID:  "DSK",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ChangeMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ChangeMessageFromJSON() error = %v", err)
	}

	if parsed.Scope != msg.Scope {
		t.Errorf("Parsed Scope = %v, want %v", parsed.Scope, msg.Scope)
	}
	if parsed.EntityID != msg.EntityID {
		t.Errorf("Parsed EntityID = %v, want %v", parsed.EntityID, msg.EntityID)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestChangeMessage_InvalidJSON(t *testing.T) {
	if _, err := ChangeMessageFromJSON([]byte(`{"scope": 5}`)); err == nil {
		t.Error("ChangeMessageFromJSON() should fail with invalid JSON")
	}
}
