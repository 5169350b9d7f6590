// Package reconcile turns a report transition into an explicit write plan.
// The db layer executes a plan inside a single transaction; keeping the
// arithmetic here means the deltas stay testable without a database.
package reconcile

import (
	"fmt"
	"math"

	"github.com/fleetora/fleet-ops-api/internal/models"
)

// BalanceEntry is a driver_balance_transactions row to insert
type BalanceEntry struct {
	Type        string
	Amount      float64
	Description string
}

// VehicleEntry is a vehicle_transactions row to insert
type VehicleEntry struct {
	AdjustmentID int64
	Amount       float64
	Type         string
	Description  string
}

// ApprovalPlan lists every write an approval performs
type ApprovalPlan struct {
	ReportID           int64
	Deposit            *BalanceEntry // nil when no deposit was cut
	BalanceDelta       float64       // applied to drivers.pending_balance
	AdjustmentIDs      []int64       // flipped approved -> applied
	VehicleEntries     []VehicleEntry
	OtherExpensesDelta float64 // folded into the vehicle performance row
	TripDelta          int     // added to vehicles.total_trips
}

// RejectionPlan reverses the deposit side of an approval
type RejectionPlan struct {
	ReportID     int64
	BalanceDelta float64 // negative: deposit rows being deleted
}

// DeletionPlan unlinks applied adjustments and reverses deposits and
// vehicle aggregates before the report row disappears
type DeletionPlan struct {
	ReportID           int64
	AdjustmentIDs      []int64 // reset applied -> approved, applied_to_report NULL
	BalanceDelta       float64
	TripDelta          int     // taken back out of the performance row and vehicles.total_trips
	EarningsDelta      float64 // taken back out of the performance row
	OtherExpensesDelta float64 // reverses the folded adjustment expenses
}

// PlanApproval builds the write plan for approving a pending report given
// the approved adjustments matching the report's driver and date.
func PlanApproval(rep *models.FleetReport, adjustments []*models.CommonAdjustment) (*ApprovalPlan, error) {
	if rep.Status != models.ReportPendingVerification {
		return nil, fmt.Errorf("report %d is %s, only %s reports can be approved", rep.ID, rep.Status, models.ReportPendingVerification)
	}

	plan := &ApprovalPlan{ReportID: rep.ID, TripDelta: rep.TotalTrips}

	if rep.DepositCuttingAmount > 0 {
		plan.Deposit = &BalanceEntry{
			Type:        models.TxnDeposit,
			Amount:      rep.DepositCuttingAmount,
			Description: fmt.Sprintf("Deposit cut for %s shift on %s", rep.Shift, rep.RentDate.Format("2006-01-02")),
		}
		plan.BalanceDelta = rep.DepositCuttingAmount
	}

	for _, adj := range adjustments {
		if adj.Status != models.AdjustmentApproved {
			return nil, fmt.Errorf("adjustment %d is %s, only %s adjustments can be applied", adj.ID, adj.Status, models.AdjustmentApproved)
		}
		amount := math.Abs(adj.Amount)
		plan.AdjustmentIDs = append(plan.AdjustmentIDs, adj.ID)
		plan.VehicleEntries = append(plan.VehicleEntries, VehicleEntry{
			AdjustmentID: adj.ID,
			Amount:       amount,
			Type:         models.TxnExpense,
			Description:  fmt.Sprintf("Adjustment #%d (%s) applied on approval", adj.ID, adj.Category),
		})
		plan.OtherExpensesDelta += amount
	}

	return plan, nil
}

// PlanRejection builds the write plan for rejecting a report. depositRows
// are the deposit ledger rows previously written for this report; their sum
// comes back out of pending_balance. Adjustments are intentionally left
// applied on rejection: the vehicle expense happened even when the report
// figures were wrong. Only deletion takes them back.
func PlanRejection(rep *models.FleetReport, depositRows []*models.DriverTransaction) (*RejectionPlan, error) {
	if rep.Status != models.ReportPendingVerification && rep.Status != models.ReportApproved {
		return nil, fmt.Errorf("report %d is %s and cannot be rejected", rep.ID, rep.Status)
	}
	plan := &RejectionPlan{ReportID: rep.ID}
	for _, row := range depositRows {
		plan.BalanceDelta -= row.Amount
	}
	return plan, nil
}

// PlanDeletion builds the cleanup plan for deleting a report: applied
// adjustments go back to approved with no report link, deposit rows are
// reversed so the balance does not keep money from a vanished report, and
// the vehicle aggregates the approval wrote come back out. vehicleRows are
// the report's expense ledger rows being deleted; their sum reverses
// other_expenses so a re-applied adjustment is not folded twice. Trips and
// earnings are reversed only for a still-verified report, since only
// approval writes them.
func PlanDeletion(rep *models.FleetReport, applied []*models.CommonAdjustment, depositRows []*models.DriverTransaction, vehicleRows []*models.VehicleTransaction) *DeletionPlan {
	plan := &DeletionPlan{ReportID: rep.ID}
	for _, adj := range applied {
		plan.AdjustmentIDs = append(plan.AdjustmentIDs, adj.ID)
	}
	for _, row := range depositRows {
		plan.BalanceDelta -= row.Amount
	}
	for _, row := range vehicleRows {
		if row.Type == models.TxnExpense {
			plan.OtherExpensesDelta -= row.Amount
		}
	}
	if rep.RentVerified {
		plan.TripDelta = -rep.TotalTrips
		plan.EarningsDelta = -rep.TotalEarnings
	}
	return plan
}
