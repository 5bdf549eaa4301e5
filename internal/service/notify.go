package service

import (
	"context"

	"fleet-service/internal/model"
)

type EventType string

const (
	EventAssignmentCreated   EventType = "ASSIGNMENT_CREATED"
	EventAssignmentCompleted EventType = "ASSIGNMENT_COMPLETED"
	EventAssignmentCancelled EventType = "ASSIGNMENT_CANCELLED"
)

type Event struct {
	Type       EventType        `json:"type"`
	Assignment model.Assignment `json:"assignment"`
}

// Notifier receives status-change events after the transaction has
// committed. Delivery is fire-and-forget: a failed Notify is logged by the
// caller and never rolls anything back.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NopNotifier is used when no notification endpoint is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, event Event) error {
	return nil
}
