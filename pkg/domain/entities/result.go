package entities

// AllocationRow is one line of the optimizer's flat result table: a cell
// with positive allocation, its demand, the derived satisfaction rate and
// the composite priority that drove it. Rows are produced fresh on each
// run and never mutated afterward.
type AllocationRow struct {
	Product      Product `json:"product"`
	Channel      Channel `json:"channel"`
	Region       Region  `json:"region"`
	Period       Period  `json:"period"`
	Demand       float64 `json:"demand"`
	Allocation   float64 `json:"allocation"`
	Satisfaction float64 `json:"satisfaction"`
	Priority     float64 `json:"priority"`
}

// GroupSummary is one line of an aggregated view: summed demand and
// allocation for a group key, with the group-level satisfaction rate.
// Satisfaction is NaN when the group's total demand is zero.
type GroupSummary struct {
	Product      Product `json:"product,omitempty"`
	Channel      Channel `json:"channel,omitempty"`
	Region       Region  `json:"region,omitempty"`
	Period       Period  `json:"period,omitempty"`
	Demand       float64 `json:"demand"`
	Allocation   float64 `json:"allocation"`
	Satisfaction float64 `json:"satisfaction"`
}
