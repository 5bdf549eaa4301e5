package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

// DriverService is a plain registry; drivers are immutable as far as the
// scheduling core is concerned and are referenced by id only.
type DriverService struct {
	store FleetStore
}

func NewDriverService(store FleetStore) *DriverService {
	return &DriverService{store: store}
}

type RegisterDriverInput struct {
	FullName      string
	Phone         string
	Email         string
	LicenseNumber string
}

func (s *DriverService) Register(ctx context.Context, principal model.Principal, input RegisterDriverInput) (*model.Driver, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	fullName := strings.TrimSpace(input.FullName)
	license := strings.TrimSpace(input.LicenseNumber)
	if fullName == "" || license == "" {
		return nil, ErrInvalidInput
	}

	driver := &model.Driver{
		FullName:      fullName,
		Phone:         strings.TrimSpace(input.Phone),
		Email:         strings.TrimSpace(input.Email),
		LicenseNumber: license,
	}
	if err := s.store.InsertDriver(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Get(ctx context.Context, principal model.Principal, id string) (*model.Driver, error) {
	driverID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	driver, err := s.store.Driver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	return driver, nil
}

func (s *DriverService) List(ctx context.Context, principal model.Principal) ([]model.Driver, error) {
	return s.store.Drivers(ctx)
}
