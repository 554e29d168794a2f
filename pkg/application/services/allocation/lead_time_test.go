package allocation

import (
	"testing"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

func TestCalculateLeadTime(t *testing.T) {
	suppliers := []*entities.SupplierLink{link("1", 1, 8, 3), link("2", 2, 15, 7)}

	testCases := []struct {
		name       string
		allocation []entities.AllocationEntry
		expected   LeadTimeEstimate
	}{
		{
			"single supplier",
			[]entities.AllocationEntry{{SupplierID: "1", Quantity: 5}},
			LeadTimeEstimate{MinDays: 3, MaxDays: 3},
		},
		{
			"split across suppliers",
			[]entities.AllocationEntry{{SupplierID: "1", Quantity: 8}, {SupplierID: "2", Quantity: 2}},
			LeadTimeEstimate{MinDays: 3, MaxDays: 7},
		},
		{
			"backorder adds penalty",
			[]entities.AllocationEntry{{SupplierID: "2", Quantity: 8}, {SupplierID: "1", Quantity: 2, IsBackorder: true}},
			LeadTimeEstimate{MinDays: 3, MaxDays: 21, HasBackorder: true},
		},
		{
			"unknown supplier counts as zero",
			[]entities.AllocationEntry{{SupplierID: "ghost", Quantity: 1}, {SupplierID: "2", Quantity: 1}},
			LeadTimeEstimate{MinDays: 0, MaxDays: 7},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CalculateLeadTime(tc.allocation, suppliers)
			if !ok {
				t.Fatal("Expected an estimate")
			}
			if got != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestCalculateLeadTime_EmptyAllocation(t *testing.T) {
	got, ok := CalculateLeadTime(nil, []*entities.SupplierLink{link("1", 1, 1, 4)})
	if ok {
		t.Errorf("Expected no estimate for empty allocation, got %+v", got)
	}
	if got != (LeadTimeEstimate{}) {
		t.Errorf("Expected zero estimate, got %+v", got)
	}
}

func TestCalculateLeadTime_BackorderMonotonicity(t *testing.T) {
	suppliers := []*entities.SupplierLink{link("1", 1, 0, 4), link("2", 2, 3, 11)}
	calc := NewLeadTimeCalculator(DefaultBackorderPenaltyDays)

	withoutBackorder := []entities.AllocationEntry{{SupplierID: "2", Quantity: 3}, {SupplierID: "1", Quantity: 2}}
	withBackorder := []entities.AllocationEntry{{SupplierID: "2", Quantity: 3}, {SupplierID: "1", Quantity: 2, IsBackorder: true}}

	base, _ := calc.Calculate(withoutBackorder, suppliers)
	penalised, _ := calc.Calculate(withBackorder, suppliers)

	if penalised.MaxDays < base.MaxDays+DefaultBackorderPenaltyDays {
		t.Errorf("Expected max days >= %d, got %d", base.MaxDays+DefaultBackorderPenaltyDays, penalised.MaxDays)
	}
	if penalised.MinDays != base.MinDays {
		t.Errorf("Expected min days unaffected by backorder, got %d vs %d", penalised.MinDays, base.MinDays)
	}
}

func TestLeadTimeCalculator_CustomPenalty(t *testing.T) {
	calc := DefaultPolicy().LeadTimeCalculator()
	calc.BackorderPenaltyDays = 30

	got, _ := calc.Calculate([]entities.AllocationEntry{{SupplierID: "1", Quantity: 1, IsBackorder: true}},
		[]*entities.SupplierLink{link("1", 1, 0, 5)})

	if got.MaxDays != 35 {
		t.Errorf("Expected 35 days with a 30 day penalty, got %d", got.MaxDays)
	}
}
