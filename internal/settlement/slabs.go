package settlement

// Shift identifies the roster a driver works
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftNight   Shift = "night"
	Shift24Hr    Shift = "24hr"
	ShiftNone    Shift = "none"
)

// Slab maps a minimum trip count to a fixed amount
type Slab struct {
	MinTrips int     `json:"min_trips" mapstructure:"min_trips"`
	Amount   float64 `json:"amount" mapstructure:"amount"`
}

// Table is an ordered slab list. Resolution walks thresholds in descending
// order and the highest MinTrips <= trips wins.
type Table []Slab

// Resolve returns the amount for the given trip count. When no slab matches
// the maximum-amount slab acts as the ceiling.
func (t Table) Resolve(trips int) float64 {
	if len(t) == 0 {
		return 0
	}
	best := -1
	for i, s := range t {
		if s.MinTrips <= trips {
			if best == -1 || s.MinTrips > t[best].MinTrips {
				best = i
			}
		}
	}
	if best != -1 {
		return t[best].Amount
	}
	// no slab matched: fall back to the maximum amount as ceiling
	max := t[0].Amount
	for _, s := range t[1:] {
		if s.Amount > max {
			max = s.Amount
		}
	}
	return max
}

// Tables holds the rent and company-earnings slab tables per shift.
// Admin-configured tables override these at startup; DefaultTables is the
// fallback when no override file is present.
type Tables struct {
	Rent            map[Shift]Table
	CompanyEarnings map[Shift]Table
}

// DefaultTables returns the hardcoded slab thresholds. More trips always
// means the same or lower amount.
func DefaultTables() Tables {
	return Tables{
		Rent: map[Shift]Table{
			ShiftMorning: {
				{MinTrips: 0, Amount: 650},
				{MinTrips: 5, Amount: 610},
				{MinTrips: 8, Amount: 585},
				{MinTrips: 10, Amount: 560},
				{MinTrips: 12, Amount: 535},
				{MinTrips: 15, Amount: 510},
			},
			ShiftNight: {
				{MinTrips: 0, Amount: 600},
				{MinTrips: 5, Amount: 570},
				{MinTrips: 8, Amount: 550},
				{MinTrips: 10, Amount: 530},
				{MinTrips: 12, Amount: 510},
				{MinTrips: 15, Amount: 490},
			},
			Shift24Hr: {
				{MinTrips: 0, Amount: 1100},
				{MinTrips: 8, Amount: 1040},
				{MinTrips: 12, Amount: 980},
				{MinTrips: 16, Amount: 930},
				{MinTrips: 20, Amount: 880},
			},
		},
		CompanyEarnings: map[Shift]Table{
			ShiftMorning: {
				{MinTrips: 0, Amount: 500},
				{MinTrips: 8, Amount: 470},
				{MinTrips: 12, Amount: 440},
				{MinTrips: 15, Amount: 410},
			},
			ShiftNight: {
				{MinTrips: 0, Amount: 460},
				{MinTrips: 8, Amount: 430},
				{MinTrips: 12, Amount: 410},
				{MinTrips: 15, Amount: 390},
			},
			Shift24Hr: {
				{MinTrips: 0, Amount: 900},
				{MinTrips: 10, Amount: 850},
				{MinTrips: 16, Amount: 800},
			},
		},
	}
}

// ResolveRent maps (trips, shift) to the rent amount. Unknown shifts fall
// back to the morning table.
func (t Tables) ResolveRent(trips int, shift Shift) float64 {
	table, ok := t.Rent[shift]
	if !ok {
		table = t.Rent[ShiftMorning]
	}
	return table.Resolve(trips)
}

// ResolveCompanyEarnings maps (trips, shift) to the company-earnings amount
// charged on designated service days.
func (t Tables) ResolveCompanyEarnings(trips int, shift Shift) float64 {
	table, ok := t.CompanyEarnings[shift]
	if !ok {
		table = t.CompanyEarnings[ShiftMorning]
	}
	return table.Resolve(trips)
}
