package entities

import "testing"

func TestNewOverrideConstraint(t *testing.T) {
	tests := []struct {
		name      string
		product   Product
		channel   Channel
		region    Region
		period    Period
		rate      float64
		expectErr bool
	}{
		{
			name:    "valid_full_satisfaction",
			product: "Superman Plus",
			channel: "Online Store",
			region:  "AMR",
			period:  "wk1",
			rate:    1.0,
		},
		{
			name:    "valid_partial_floor",
			product: "Dwarf Plus",
			channel: "Retail Store",
			region:  "Europe",
			period:  "wk2",
			rate:    0.5,
		},
		{
			name:      "rate_above_one",
			product:   "Superman Plus",
			channel:   "Online Store",
			region:    "AMR",
			period:    "wk1",
			rate:      1.2,
			expectErr: true,
		},
		{
			name:      "negative_rate",
			product:   "Superman Plus",
			channel:   "Online Store",
			region:    "AMR",
			period:    "wk1",
			rate:      -0.1,
			expectErr: true,
		},
		{
			name:      "empty_product",
			product:   "",
			channel:   "Online Store",
			region:    "AMR",
			period:    "wk1",
			rate:      0.8,
			expectErr: true,
		},
		{
			name:      "empty_period",
			product:   "Superman Plus",
			channel:   "Online Store",
			region:    "AMR",
			period:    "",
			rate:      0.8,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override, err := NewOverrideConstraint(tt.product, tt.channel, tt.region, tt.period, tt.rate)
			if tt.expectErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if override.MinSatisfactionRate != tt.rate {
				t.Errorf("rate = %g, want %g", override.MinSatisfactionRate, tt.rate)
			}
		})
	}
}

func TestNewSupplyFact_RejectsNegative(t *testing.T) {
	if _, err := NewSupplyFact("wk1", -1); err == nil {
		t.Error("expected error for negative supply")
	}
	fact, err := NewSupplyFact("wk1", 0)
	if err != nil {
		t.Fatalf("zero supply should be valid: %v", err)
	}
	if fact.Quantity != 0 {
		t.Errorf("quantity = %g, want 0", fact.Quantity)
	}
}

func TestNewDemandFact_RejectsEmptyIdentifiers(t *testing.T) {
	if _, err := NewDemandFact("", "Online Store", "AMR", "wk1", 10); err == nil {
		t.Error("expected error for empty product")
	}
	if _, err := NewDemandFact("Superman Plus", "Online Store", "AMR", "wk1", -5); err == nil {
		t.Error("expected error for negative demand")
	}
}
