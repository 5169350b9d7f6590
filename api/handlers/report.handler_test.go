package api

import (
	"testing"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/stretchr/testify/require"
)

// A figure-only update request must settle against the stored report's shift
// and vehicle, not against blank defaults.
func TestFillFromStoredBackfillsIdentityFields(t *testing.T) {
	stored := &models.FleetReport{
		ID:            42,
		DriverID:      7,
		VehicleNumber: "KA01AB1234",
		Shift:         "night",
		RentDate:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}

	rep := &models.FleetReport{ID: 42, TotalTrips: 9, TotalEarnings: 2500}
	fillFromStored(rep, stored)
	require.Equal(t, "night", rep.Shift)
	require.Equal(t, "KA01AB1234", rep.VehicleNumber)
	require.Equal(t, int64(7), rep.DriverID)
	require.Equal(t, stored.RentDate, rep.RentDate)
}

func TestFillFromStoredKeepsClientFields(t *testing.T) {
	stored := &models.FleetReport{
		ID:            42,
		DriverID:      7,
		VehicleNumber: "KA01AB1234",
		Shift:         "night",
	}

	rep := &models.FleetReport{ID: 42, Shift: "morning", VehicleNumber: "KA05CD6789", DriverID: 7}
	fillFromStored(rep, stored)
	require.Equal(t, "morning", rep.Shift)
	require.Equal(t, "KA05CD6789", rep.VehicleNumber)
}
