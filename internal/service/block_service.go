package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/clock"
	"fleet-service/internal/model"
)

// BlockService manages out-of-service windows. Blocks and assignments share
// one non-overlap domain per vehicle, so creating either checks both sets
// under the same vehicle lock.
type BlockService struct {
	store FleetStore
	clock clock.Clock
	log   zerolog.Logger
}

func NewBlockService(store FleetStore, clk clock.Clock, log zerolog.Logger) *BlockService {
	return &BlockService{store: store, clock: clk, log: log}
}

type CreateBlockInput struct {
	VehicleID string
	StartTime string
	EndTime   string
	Reason    string
}

func (s *BlockService) Create(ctx context.Context, principal model.Principal, input CreateBlockInput) (*model.VehicleBlock, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.Reason == "" {
		return nil, ErrInvalidInput
	}

	window, err := parseWindow(input.StartTime, input.EndTime)
	if err != nil {
		return nil, ErrInvalidInput
	}

	block := &model.VehicleBlock{
		VehicleID: vehicleID,
		StartTime: window.Start,
		EndTime:   window.End,
		Reason:    input.Reason,
		Status:    model.BlockStatusActive,
		CreatedBy: principal.UserID,
	}

	keys := []ResourceKey{{Kind: ResourceKindVehicle, ID: vehicleID}}

	err = s.store.WithLock(ctx, keys, func(tx FleetTx) error {
		vehicle, err := tx.Vehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return ErrNotFound
		}

		assignments, err := tx.ActiveAssignments(ctx, ResourceKindVehicle, vehicleID)
		if err != nil {
			return err
		}
		if hit := findAssignmentConflict(assignments, window, uuid.Nil); hit != nil {
			return assignmentConflictError(ResourceKindVehicle, hit)
		}

		blocks, err := tx.ActiveBlocks(ctx, vehicleID)
		if err != nil {
			return err
		}
		if hit := findBlockConflict(blocks, window, uuid.Nil); hit != nil {
			return blockConflictError(hit)
		}

		if err := tx.InsertBlock(ctx, block); err != nil {
			return err
		}

		status := deriveVehicleStatus(s.clock.Now(), assignments, append(blocks, *block))
		return tx.SetVehicleStatus(ctx, vehicleID, status)
	})
	if err != nil {
		return nil, err
	}

	return block, nil
}

func (s *BlockService) Complete(ctx context.Context, principal model.Principal, id string) (*model.VehicleBlock, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	blockID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	peek, err := s.store.Block(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, ErrNotFound
	}

	keys := []ResourceKey{{Kind: ResourceKindVehicle, ID: peek.VehicleID}}

	var result *model.VehicleBlock
	err = s.store.WithLock(ctx, keys, func(tx FleetTx) error {
		block, err := tx.Block(ctx, blockID)
		if err != nil {
			return err
		}
		if block == nil {
			return ErrNotFound
		}
		if !block.IsActive() {
			return ErrInvalidState
		}

		block.Status = model.BlockStatusCompleted
		if err := tx.SaveBlock(ctx, block); err != nil {
			return err
		}

		assignments, err := tx.ActiveAssignments(ctx, ResourceKindVehicle, block.VehicleID)
		if err != nil {
			return err
		}
		blocks, err := tx.ActiveBlocks(ctx, block.VehicleID)
		if err != nil {
			return err
		}
		if err := tx.SetVehicleStatus(ctx, block.VehicleID, deriveVehicleStatus(s.clock.Now(), assignments, blocks)); err != nil {
			return err
		}

		result = block
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *BlockService) ListByVehicle(ctx context.Context, principal model.Principal, vehicleID string) ([]model.VehicleBlock, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return s.store.BlocksByVehicle(ctx, id)
}
