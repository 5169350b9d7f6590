package settlement

// Direction says who owes whom after a shift
type Direction int

const (
	Settled Direction = iota
	DriverOwesCompany
	CompanyOwesDriver
)

func (d Direction) String() string {
	switch d {
	case DriverOwesCompany:
		return "driver_owes_company"
	case CompanyOwesDriver:
		return "company_owes_driver"
	}
	return "settled"
}

// Settlement is the outcome of a daily reconciliation: an unsigned amount
// tagged with its direction. The legacy signed column is produced only by
// StoredAmount so the sign convention lives in exactly one place.
type Settlement struct {
	Direction Direction `json:"direction"`
	Amount    float64   `json:"amount"`
}

// StoredAmount reproduces the persisted rent_paid_amount convention:
// negative = company owes the driver, positive = driver owes the company.
func (s Settlement) StoredAmount() float64 {
	switch s.Direction {
	case CompanyOwesDriver:
		return -s.Amount
	case DriverOwesCompany:
		return s.Amount
	}
	return 0
}

// FromStored converts a legacy signed rent_paid_amount back into a tagged
// settlement.
func FromStored(amount float64) Settlement {
	switch {
	case amount < 0:
		return Settlement{Direction: CompanyOwesDriver, Amount: -amount}
	case amount > 0:
		return Settlement{Direction: DriverOwesCompany, Amount: amount}
	}
	return Settlement{Direction: Settled}
}

// ReportFigures are the numeric inputs of one shift submission
type ReportFigures struct {
	TotalTrips           int
	Shift                Shift
	IsServiceDay         bool
	TotalEarnings        float64
	Toll                 float64
	TotalCashCollect     float64
	OtherFee             float64
	DepositCuttingAmount float64
	ActualRent           *float64 // vehicle-level override, beats the slab
}

// Rent resolves the rent charged for the shift: the vehicle override when
// set, the company-earnings table on service days, the rent table otherwise.
func Rent(t Tables, f ReportFigures) float64 {
	if f.ActualRent != nil {
		return *f.ActualRent
	}
	if f.IsServiceDay {
		return t.ResolveCompanyEarnings(f.TotalTrips, f.Shift)
	}
	return t.ResolveRent(f.TotalTrips, f.Shift)
}

// Compute runs the daily settlement:
//
//	due = earnings + toll - cash collected - rent - other fee - deposit cutting
//
// due > 0 means the company owes the driver.
func Compute(t Tables, f ReportFigures) Settlement {
	rent := Rent(t, f)
	gross := f.TotalEarnings + f.Toll
	due := gross - f.TotalCashCollect - rent - f.OtherFee - f.DepositCuttingAmount
	switch {
	case due > 0:
		return Settlement{Direction: CompanyOwesDriver, Amount: due}
	case due < 0:
		return Settlement{Direction: DriverOwesCompany, Amount: -due}
	}
	return Settlement{Direction: Settled}
}
