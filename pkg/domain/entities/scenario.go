package entities

// Scenario bundles everything one optimizer run consumes: the four raw
// input tables, the priority weights and the override constraints. A
// scenario is immutable for the duration of a solve.
type Scenario struct {
	Name      string
	Tables    TableSet
	Weights   PriorityWeights
	Overrides []OverrideConstraint
}
