package network

import (
	"errors"
	"testing"

	"github.com/dd0wney/stockflow/pkg/validation"
)

func TestNewInventoryPolicy(t *testing.T) {
	tests := []struct {
		name          string
		coverageDays  float64
		reorderPoint  float64
		orderQuantity float64
		wantErr       bool
	}{
		{"valid", 7, 500, 1000, false},
		{"zero_reorder_point", 7, 0, 1000, false},
		{"zero_coverage", 0, 500, 1000, true},
		{"negative_coverage", -7, 500, 1000, true},
		{"negative_reorder_point", 7, -1, 1000, true},
		{"zero_order_quantity", 7, 500, 0, true},
		{"negative_order_quantity", 7, 500, -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewInventoryPolicy(tt.coverageDays, tt.reorderPoint, tt.orderQuantity)
			if tt.wantErr {
				if !errors.Is(err, validation.ErrValidation) {
					t.Errorf("Expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if policy.CoverageDays != tt.coverageDays {
				t.Errorf("CoverageDays = %g, want %g", policy.CoverageDays, tt.coverageDays)
			}
		})
	}
}
