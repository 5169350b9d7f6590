package settlement

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveHighestThresholdWins(t *testing.T) {
	tables := DefaultTables()

	require.Equal(t, 650.0, tables.ResolveRent(0, ShiftMorning))
	require.Equal(t, 650.0, tables.ResolveRent(4, ShiftMorning))
	require.Equal(t, 610.0, tables.ResolveRent(5, ShiftMorning))
	require.Equal(t, 560.0, tables.ResolveRent(11, ShiftMorning))
	require.Equal(t, 535.0, tables.ResolveRent(12, ShiftMorning))
	require.Equal(t, 510.0, tables.ResolveRent(40, ShiftMorning))
}

func TestResolveCeilingWhenNoSlabMatches(t *testing.T) {
	// a table whose lowest threshold is above the trip count
	table := Table{
		{MinTrips: 5, Amount: 400},
		{MinTrips: 10, Amount: 350},
	}
	require.Equal(t, 400.0, table.Resolve(3))
}

func TestResolveEmptyTable(t *testing.T) {
	require.Equal(t, 0.0, Table{}.Resolve(7))
}

func TestUnknownShiftFallsBackToMorning(t *testing.T) {
	tables := DefaultTables()
	require.Equal(t, tables.ResolveRent(12, ShiftMorning), tables.ResolveRent(12, ShiftNone))
}

// More trips must never raise the amount, across every shift and both tables.
func TestSlabMonotonicity(t *testing.T) {
	tables := DefaultTables()
	check := func(name string, table Table) {
		t.Helper()
		sorted := make(Table, len(table))
		copy(sorted, table)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinTrips < sorted[j].MinTrips })
		for i := 1; i < len(sorted); i++ {
			require.LessOrEqual(t, sorted[i].Amount, sorted[i-1].Amount,
				"%s: amount rose between thresholds %d and %d", name, sorted[i-1].MinTrips, sorted[i].MinTrips)
		}
		for trips := 0; trips < 30; trips++ {
			require.GreaterOrEqual(t, table.Resolve(trips), table.Resolve(trips+1),
				"%s: resolve not monotone at %d trips", name, trips)
		}
	}
	for shift, table := range tables.Rent {
		check("rent/"+string(shift), table)
	}
	for shift, table := range tables.CompanyEarnings {
		check("earnings/"+string(shift), table)
	}
}

func TestComputeWorkedExample(t *testing.T) {
	// trips=12, earnings=3000, toll=50, cash=1000 on a morning shift:
	// rent 535, due 1515, company owes driver, stored -1515
	s := Compute(DefaultTables(), ReportFigures{
		TotalTrips:       12,
		Shift:            ShiftMorning,
		TotalEarnings:    3000,
		Toll:             50,
		TotalCashCollect: 1000,
	})
	require.Equal(t, CompanyOwesDriver, s.Direction)
	require.Equal(t, 1515.0, s.Amount)
	require.Equal(t, -1515.0, s.StoredAmount())
}

func TestComputeDriverOwesCompany(t *testing.T) {
	s := Compute(DefaultTables(), ReportFigures{
		TotalTrips:       5,
		Shift:            ShiftNight,
		TotalEarnings:    800,
		TotalCashCollect: 900,
		OtherFee:         50,
	})
	// due = 800 - 900 - 570 - 50 = -720
	require.Equal(t, DriverOwesCompany, s.Direction)
	require.Equal(t, 720.0, s.Amount)
	require.Equal(t, 720.0, s.StoredAmount())
}

func TestComputeSettledToZero(t *testing.T) {
	s := Compute(DefaultTables(), ReportFigures{
		TotalTrips:       12,
		Shift:            ShiftMorning,
		TotalEarnings:    1535,
		TotalCashCollect: 1000,
	})
	require.Equal(t, Settled, s.Direction)
	require.Equal(t, 0.0, s.StoredAmount())
}

func TestComputeDeterministic(t *testing.T) {
	f := ReportFigures{
		TotalTrips:           9,
		Shift:                Shift24Hr,
		TotalEarnings:        4100,
		Toll:                 120,
		TotalCashCollect:     1800,
		OtherFee:             60,
		DepositCuttingAmount: 500,
	}
	first := Compute(DefaultTables(), f)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Compute(DefaultTables(), f))
	}
}

func TestActualRentOverrideBeatsSlab(t *testing.T) {
	override := 800.0
	s := Compute(DefaultTables(), ReportFigures{
		TotalTrips:       12,
		Shift:            ShiftMorning,
		TotalEarnings:    3000,
		Toll:             50,
		TotalCashCollect: 1000,
		ActualRent:       &override,
	})
	// due = 3050 - 1000 - 800 = 1250
	require.Equal(t, 1250.0, s.Amount)
	require.Equal(t, CompanyOwesDriver, s.Direction)
}

func TestServiceDayUsesCompanyEarnings(t *testing.T) {
	tables := DefaultTables()
	f := ReportFigures{
		TotalTrips:    12,
		Shift:         ShiftMorning,
		IsServiceDay:  true,
		TotalEarnings: 2000,
	}
	require.Equal(t, tables.ResolveCompanyEarnings(12, ShiftMorning), Rent(tables, f))
}

func TestFromStoredRoundTrip(t *testing.T) {
	for _, s := range []Settlement{
		{Direction: CompanyOwesDriver, Amount: 1515},
		{Direction: DriverOwesCompany, Amount: 720},
		{Direction: Settled},
	} {
		require.Equal(t, s, FromStored(s.StoredAmount()))
	}
}
