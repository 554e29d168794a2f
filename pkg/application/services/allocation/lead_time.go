package allocation

import "github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"

// LeadTimeEstimate is the fulfillment window for one line item's allocation
type LeadTimeEstimate struct {
	MinDays      int  `json:"min_days"`
	MaxDays      int  `json:"max_days"`
	HasBackorder bool `json:"has_backorder"`
}

// LeadTimeCalculator derives fulfillment windows from supplier lead times
type LeadTimeCalculator struct {
	BackorderPenaltyDays int
}

// NewLeadTimeCalculator creates a calculator with the given backorder penalty
func NewLeadTimeCalculator(backorderPenaltyDays int) *LeadTimeCalculator {
	return &LeadTimeCalculator{BackorderPenaltyDays: backorderPenaltyDays}
}

// CalculateLeadTime uses the default backorder penalty
func CalculateLeadTime(allocation []entities.AllocationEntry, suppliers []*entities.SupplierLink) (LeadTimeEstimate, bool) {
	return NewLeadTimeCalculator(DefaultBackorderPenaltyDays).Calculate(allocation, suppliers)
}

// Calculate returns the min/max lead time across the allocation. The second
// return value is false for an empty allocation, which has no estimate.
// Entries whose supplier is missing from suppliers count as zero days.
func (c *LeadTimeCalculator) Calculate(
	allocation []entities.AllocationEntry,
	suppliers []*entities.SupplierLink,
) (LeadTimeEstimate, bool) {
	if len(allocation) == 0 {
		return LeadTimeEstimate{}, false
	}

	leadTimes := make(map[entities.SupplierID]int, len(suppliers))
	for _, s := range suppliers {
		if s == nil {
			continue
		}
		if _, seen := leadTimes[s.SupplierID]; !seen {
			leadTimes[s.SupplierID] = s.LeadTimeDays
		}
	}

	estimate := LeadTimeEstimate{}
	for i, entry := range allocation {
		days := leadTimes[entry.SupplierID]
		if i == 0 || days < estimate.MinDays {
			estimate.MinDays = days
		}
		if i == 0 || days > estimate.MaxDays {
			estimate.MaxDays = days
		}
		if entry.IsBackorder {
			estimate.HasBackorder = true
		}
	}

	if estimate.HasBackorder {
		estimate.MaxDays += c.BackorderPenaltyDays
	}
	return estimate, true
}
