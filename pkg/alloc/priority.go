package alloc

import "github.com/planwise/allocator/pkg/domain/entities"

// priorityTable caches the composite priority per (product, channel,
// region) id triple. The same triple recurs once per period, so the
// optimizer computes each composite exactly once per solve.
type priorityTable struct {
	ds     *Dataset
	values []float64
}

func buildPriorityTable(ds *Dataset, weights entities.PriorityWeights) *priorityTable {
	values := make([]float64, len(ds.Products)*len(ds.Channels)*len(ds.Regions))
	i := 0
	for _, p := range ds.Products {
		for _, c := range ds.Channels {
			for _, r := range ds.Regions {
				values[i] = weights.Composite(p, c, r)
				i++
			}
		}
	}
	return &priorityTable{ds: ds, values: values}
}

func (t *priorityTable) at(pi, ci, ri int) float64 {
	return t.values[(pi*len(t.ds.Channels)+ci)*len(t.ds.Regions)+ri]
}
