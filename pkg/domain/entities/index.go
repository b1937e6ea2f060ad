package entities

// Period is an opaque, ordered label for a time bucket (typically a week).
// Ordering is positional: periods keep the column order of the table they
// came from, they are never sorted lexically.
type Period string

// Product identifies a sellable variant.
type Product string

// Channel identifies a sales route.
type Channel string

// Region identifies a geography.
type Region string

const (
	// DefaultChannel is the fallback bucket used when demand rows carry no
	// channel-specific priority.
	DefaultChannel Channel = "Default"

	// DefaultRegion is the fallback bucket for regions.
	DefaultRegion Region = "Default"
)

// Cell is the finest allocation granularity: one
// (product, channel, region, period) tuple.
type Cell struct {
	Product Product
	Channel Channel
	Region  Region
	Period  Period
}
