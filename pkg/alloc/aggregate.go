package alloc

import (
	"math"
	"sort"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// Summaries holds the four grouped views of one allocation result.
type Summaries struct {
	ByProduct              []entities.GroupSummary
	ByProductPeriod        []entities.GroupSummary
	ByProductChannelRegion []entities.GroupSummary
	ByPeriod               []entities.GroupSummary
}

type groupTotal struct {
	demand     float64
	allocation float64
}

// Summarize rolls the flat result rows up along the four reporting axes.
// Group satisfaction is summed allocation over summed demand; a group
// whose total demand is zero reports NaN rather than panicking.
func Summarize(rows []entities.AllocationRow) *Summaries {
	byProduct := make(map[entities.Product]*groupTotal)
	byProductPeriod := make(map[[2]string]*groupTotal)
	byProductChannelRegion := make(map[[3]string]*groupTotal)
	byPeriod := make(map[entities.Period]*groupTotal)

	for _, row := range rows {
		accumulate(byProduct, row.Product, row)
		accumulate(byProductPeriod, [2]string{string(row.Product), string(row.Period)}, row)
		accumulate(byProductChannelRegion, [3]string{string(row.Product), string(row.Channel), string(row.Region)}, row)
		accumulate(byPeriod, row.Period, row)
	}

	s := &Summaries{}
	for key, total := range byProduct {
		s.ByProduct = append(s.ByProduct, summary(entities.GroupSummary{Product: key}, total))
	}
	for key, total := range byProductPeriod {
		s.ByProductPeriod = append(s.ByProductPeriod, summary(entities.GroupSummary{
			Product: entities.Product(key[0]),
			Period:  entities.Period(key[1]),
		}, total))
	}
	for key, total := range byProductChannelRegion {
		s.ByProductChannelRegion = append(s.ByProductChannelRegion, summary(entities.GroupSummary{
			Product: entities.Product(key[0]),
			Channel: entities.Channel(key[1]),
			Region:  entities.Region(key[2]),
		}, total))
	}
	for key, total := range byPeriod {
		s.ByPeriod = append(s.ByPeriod, summary(entities.GroupSummary{Period: key}, total))
	}

	sortSummaries(s.ByProduct)
	sortSummaries(s.ByProductPeriod)
	sortSummaries(s.ByProductChannelRegion)
	sortSummaries(s.ByPeriod)
	return s
}

func accumulate[K comparable](groups map[K]*groupTotal, key K, row entities.AllocationRow) {
	total, ok := groups[key]
	if !ok {
		total = &groupTotal{}
		groups[key] = total
	}
	total.demand += row.Demand
	total.allocation += row.Allocation
}

func summary(base entities.GroupSummary, total *groupTotal) entities.GroupSummary {
	base.Demand = total.demand
	base.Allocation = total.allocation
	if total.demand == 0 {
		base.Satisfaction = math.NaN()
	} else {
		base.Satisfaction = total.allocation / total.demand
	}
	return base
}

func sortSummaries(rows []entities.GroupSummary) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.Period < b.Period
	})
}
