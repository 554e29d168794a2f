package allocation

const (
	// DefaultBackorderPenaltyDays is added to the longest lead time when any entry is backordered
	DefaultBackorderPenaltyDays = 14
	// DefaultReorderPoint is the stock level at or below which a link needs replenishment
	DefaultReorderPoint = 5
	// DefaultReorderQuantity is the amount suggested when a link needs replenishment
	DefaultReorderQuantity = 10
)

// Policy holds the tunable allocation constants
type Policy struct {
	BackorderPenaltyDays int
	ReorderPoint         int
	ReorderQuantity      int
}

// DefaultPolicy returns the standard allocation constants
func DefaultPolicy() Policy {
	return Policy{
		BackorderPenaltyDays: DefaultBackorderPenaltyDays,
		ReorderPoint:         DefaultReorderPoint,
		ReorderQuantity:      DefaultReorderQuantity,
	}
}

// LeadTimeCalculator returns a calculator using the policy's backorder penalty
func (p Policy) LeadTimeCalculator() *LeadTimeCalculator {
	return NewLeadTimeCalculator(p.BackorderPenaltyDays)
}

// ReorderMonitor returns a monitor using the policy's reorder point and quantity
func (p Policy) ReorderMonitor() *ReorderMonitor {
	return NewReorderMonitor(p.ReorderPoint, p.ReorderQuantity)
}
