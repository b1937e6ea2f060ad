package entities

// Default weights applied to identifiers missing from the caller-supplied
// maps. Products default high so that an unconfigured product still
// competes; the Default channel/region buckets sit at the bottom of the
// scale. Defaults are never zero: a zero weight would strike a cell from
// the objective while its demand still occupies the constraint set.
const (
	DefaultProductWeight = 5.0
	DefaultChannelWeight = 1.0
	DefaultRegionWeight  = 1.0
)

// PriorityWeights holds the three independent weight maps. Weights are
// positive numbers; the UI convention is 1-10 but nothing enforces an
// upper bound.
type PriorityWeights struct {
	Product map[Product]float64
	Channel map[Channel]float64
	Region  map[Region]float64
}

// NewPriorityWeights creates an empty weight set (everything falls back to
// the documented defaults).
func NewPriorityWeights() PriorityWeights {
	return PriorityWeights{
		Product: make(map[Product]float64),
		Channel: make(map[Channel]float64),
		Region:  make(map[Region]float64),
	}
}

// ProductWeight returns the weight for a product, falling back to the default.
func (w PriorityWeights) ProductWeight(p Product) float64 {
	if v, ok := w.Product[p]; ok {
		return v
	}
	return DefaultProductWeight
}

// ChannelWeight returns the weight for a channel, falling back to the default.
func (w PriorityWeights) ChannelWeight(c Channel) float64 {
	if v, ok := w.Channel[c]; ok {
		return v
	}
	return DefaultChannelWeight
}

// RegionWeight returns the weight for a region, falling back to the default.
func (w PriorityWeights) RegionWeight(r Region) float64 {
	if v, ok := w.Region[r]; ok {
		return v
	}
	return DefaultRegionWeight
}

// Composite combines the three independent weights into one multiplicative
// priority for a (product, channel, region) triple.
func (w PriorityWeights) Composite(p Product, c Channel, r Region) float64 {
	return w.ProductWeight(p) * w.ChannelWeight(c) * w.RegionWeight(r)
}
