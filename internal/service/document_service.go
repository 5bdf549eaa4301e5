package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/clock"
	"fleet-service/internal/model"
)

type DocumentService struct {
	store    FleetStore
	clock    clock.Clock
	warnDays int
}

func NewDocumentService(store FleetStore, clk clock.Clock, warnDays int) *DocumentService {
	return &DocumentService{store: store, clock: clk, warnDays: warnDays}
}

type CreateDocumentInput struct {
	OwnerType  string
	OwnerID    string
	Type       string
	IssueDate  string
	ExpiryDate string
}

// DocumentView pairs a document with its status derived at read time. The
// status is never persisted; it would go stale with nothing but the passage
// of time to invalidate it.
type DocumentView struct {
	model.Document
	DerivedStatus model.DocumentStatus `json:"derived_status"`
}

func (s *DocumentService) Create(ctx context.Context, principal model.Principal, input CreateDocumentInput) (*model.Document, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	ownerType := model.OwnerType(input.OwnerType)
	if ownerType != model.OwnerTypeVehicle && ownerType != model.OwnerTypeDriver {
		return nil, ErrInvalidInput
	}
	ownerID, err := uuid.Parse(input.OwnerID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.Type == "" {
		return nil, ErrInvalidInput
	}

	issueDate, err := time.Parse(time.RFC3339, input.IssueDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	expiryDate, err := time.Parse(time.RFC3339, input.ExpiryDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if !expiryDate.After(issueDate) {
		return nil, ErrInvalidInput
	}

	if err := s.ownerExists(ctx, ownerType, ownerID); err != nil {
		return nil, err
	}

	document := &model.Document{
		OwnerType:  ownerType,
		OwnerID:    ownerID,
		Type:       input.Type,
		IssueDate:  issueDate.UTC(),
		ExpiryDate: expiryDate.UTC(),
	}
	if err := s.store.InsertDocument(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) ListByOwner(ctx context.Context, principal model.Principal, ownerType, ownerID string) ([]DocumentView, error) {
	typ := model.OwnerType(ownerType)
	if typ != model.OwnerTypeVehicle && typ != model.OwnerTypeDriver {
		return nil, ErrInvalidInput
	}
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	documents, err := s.store.DocumentsByOwner(ctx, typ, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]DocumentView, 0, len(documents))
	for _, d := range documents {
		views = append(views, DocumentView{
			Document:      d,
			DerivedStatus: d.StatusAt(now, s.warnDays),
		})
	}
	return views, nil
}

func (s *DocumentService) ownerExists(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) error {
	switch ownerType {
	case model.OwnerTypeVehicle:
		vehicle, err := s.store.Vehicle(ctx, ownerID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return ErrNotFound
		}
	case model.OwnerTypeDriver:
		driver, err := s.store.Driver(ctx, ownerID)
		if err != nil {
			return err
		}
		if driver == nil {
			return ErrNotFound
		}
	}
	return nil
}
