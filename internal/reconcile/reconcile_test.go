package reconcile

import (
	"testing"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/stretchr/testify/require"
)

func pendingReport() *models.FleetReport {
	return &models.FleetReport{
		ID:                   42,
		DriverID:             7,
		VehicleNumber:        "KA01AB1234",
		RentDate:             time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Shift:                "morning",
		TotalTrips:           12,
		DepositCuttingAmount: 500,
		Status:               models.ReportPendingVerification,
	}
}

func TestApproveThenRejectNetsZero(t *testing.T) {
	rep := pendingReport()

	approval, err := PlanApproval(rep, nil)
	require.NoError(t, err)
	require.NotNil(t, approval.Deposit)
	require.Equal(t, 500.0, approval.Deposit.Amount)
	require.Equal(t, 500.0, approval.BalanceDelta)

	rep.Status = models.ReportApproved
	rejection, err := PlanRejection(rep, []*models.DriverTransaction{
		{DriverID: 7, Amount: approval.Deposit.Amount, Type: models.TxnDeposit},
	})
	require.NoError(t, err)
	require.Equal(t, -500.0, rejection.BalanceDelta)
	require.Equal(t, 0.0, approval.BalanceDelta+rejection.BalanceDelta)
}

func TestApprovalWithoutDepositCut(t *testing.T) {
	rep := pendingReport()
	rep.DepositCuttingAmount = 0

	plan, err := PlanApproval(rep, nil)
	require.NoError(t, err)
	require.Nil(t, plan.Deposit)
	require.Equal(t, 0.0, plan.BalanceDelta)
	require.Equal(t, 12, plan.TripDelta)
}

func TestApprovalFoldsAdjustments(t *testing.T) {
	rep := pendingReport()
	plan, err := PlanApproval(rep, []*models.CommonAdjustment{
		{ID: 1, Amount: 120, Category: "fuel", Status: models.AdjustmentApproved},
		{ID: 2, Amount: -180, Category: "repair", Status: models.AdjustmentApproved},
	})
	require.NoError(t, err)
	// absolute amounts fold into other_expenses: 120 + 180 = 300
	require.Equal(t, 300.0, plan.OtherExpensesDelta)
	require.Equal(t, []int64{1, 2}, plan.AdjustmentIDs)
	require.Len(t, plan.VehicleEntries, 2)
	for _, e := range plan.VehicleEntries {
		require.Equal(t, models.TxnExpense, e.Type)
		require.Positive(t, e.Amount)
	}
}

func TestApprovalRefusesNonPendingReport(t *testing.T) {
	rep := pendingReport()
	rep.Status = models.ReportApproved
	_, err := PlanApproval(rep, nil)
	require.Error(t, err)
}

func TestApprovalRefusesUnapprovedAdjustment(t *testing.T) {
	rep := pendingReport()
	_, err := PlanApproval(rep, []*models.CommonAdjustment{
		{ID: 9, Amount: 50, Status: models.AdjustmentPending},
	})
	require.Error(t, err)
}

func TestRejectionRefusesTerminalStatuses(t *testing.T) {
	rep := pendingReport()
	rep.Status = models.ReportRejected
	_, err := PlanRejection(rep, nil)
	require.Error(t, err)

	rep.Status = models.ReportLeave
	_, err = PlanRejection(rep, nil)
	require.Error(t, err)
}

func TestDeletionResetsAppliedAdjustments(t *testing.T) {
	rep := pendingReport()
	rep.Status = models.ReportApproved
	rep.RentVerified = true
	reportID := rep.ID

	plan := PlanDeletion(rep,
		[]*models.CommonAdjustment{
			{ID: 3, Status: models.AdjustmentApplied, AppliedToReport: &reportID},
			{ID: 4, Status: models.AdjustmentApplied, AppliedToReport: &reportID},
		},
		[]*models.DriverTransaction{{Amount: 500, Type: models.TxnDeposit}},
		nil,
	)
	require.Equal(t, []int64{3, 4}, plan.AdjustmentIDs)
	require.Equal(t, -500.0, plan.BalanceDelta)
}

// Deleting an approved report must take the approval's aggregate writes back
// out: trips, earnings and the folded adjustment expenses all reverse, so an
// adjustment re-applied to a replacement report is not counted twice.
func TestDeletionReversesVehicleAggregates(t *testing.T) {
	rep := pendingReport()
	rep.Status = models.ReportApproved
	rep.RentVerified = true
	rep.TotalEarnings = 3000
	reportID := rep.ID
	adjustmentID := int64(3)

	approval, err := PlanApproval(&models.FleetReport{
		ID: reportID, DriverID: rep.DriverID, Status: models.ReportPendingVerification,
		TotalTrips: rep.TotalTrips,
	}, []*models.CommonAdjustment{
		{ID: adjustmentID, Amount: 300, Category: "fuel", Status: models.AdjustmentApproved},
	})
	require.NoError(t, err)
	require.Equal(t, 300.0, approval.OtherExpensesDelta)

	plan := PlanDeletion(rep,
		[]*models.CommonAdjustment{
			{ID: adjustmentID, Status: models.AdjustmentApplied, AppliedToReport: &reportID},
		},
		nil,
		[]*models.VehicleTransaction{
			{ReportID: &reportID, AdjustmentID: &adjustmentID, Amount: 300, Type: models.TxnExpense},
		},
	)
	require.Equal(t, -12, plan.TripDelta)
	require.Equal(t, -3000.0, plan.EarningsDelta)
	require.Equal(t, -300.0, plan.OtherExpensesDelta)
	require.Equal(t, 0.0, approval.OtherExpensesDelta+plan.OtherExpensesDelta)
	require.Equal(t, 0, approval.TripDelta+plan.TripDelta)
}

// A never-approved report has no aggregate footprint to reverse.
func TestDeletionOfUnverifiedReportLeavesAggregatesAlone(t *testing.T) {
	rep := pendingReport()

	plan := PlanDeletion(rep, nil, nil, nil)
	require.Equal(t, 0, plan.TripDelta)
	require.Equal(t, 0.0, plan.EarningsDelta)
	require.Equal(t, 0.0, plan.OtherExpensesDelta)
}
