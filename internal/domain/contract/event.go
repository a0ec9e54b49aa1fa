// internal/domain/contract/event.go
package contract

import (
	"context"
	"time"
)

type EventType string

const (
	EventSubmitted     EventType = "contract.submitted"
	EventQuoted        EventType = "contract.quoted"
	EventSigned        EventType = "contract.signed"
	EventStatusChanged EventType = "contract.status_changed"
)

// Event is published after a lifecycle change has been committed.
type Event struct {
	Type           EventType `json:"type"`
	ContractID     string    `json:"contract_id"`
	CustomerID     string    `json:"customer_id,omitempty"`
	CustomerNumber string    `json:"customer_number,omitempty"`
	ContractNumber string    `json:"contract_number,omitempty"`
	Status         Status    `json:"status"`
	PreviousStatus Status    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher fans committed events out to interested listeners. Publish must
// not block the caller.
type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
