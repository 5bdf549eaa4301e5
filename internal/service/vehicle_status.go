package service

import (
	"time"

	"fleet-service/internal/model"
)

// deriveVehicleStatus is the single place the Vehicle.Status cache rule
// lives: BLOCKED if an active block covers now, else ASSIGNED if any active
// assignment exists, else AVAILABLE. Callers must hold the vehicle's lock.
func deriveVehicleStatus(now time.Time, assignments []model.Assignment, blocks []model.VehicleBlock) model.VehicleStatus {
	for i := range blocks {
		if blocks[i].IsActive() && blocks[i].Window().Contains(now) {
			return model.VehicleStatusBlocked
		}
	}
	for i := range assignments {
		if assignments[i].IsActive() {
			return model.VehicleStatusAssigned
		}
	}
	return model.VehicleStatusAvailable
}
