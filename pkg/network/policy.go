package network

import (
	"github.com/dd0wney/stockflow/pkg/validation"
)

// InventoryPolicy describes how a node manages its buffer stock. Immutable
// after construction.
type InventoryPolicy struct {
	CoverageDays  float64
	ReorderPoint  float64
	OrderQuantity float64
}

// NewInventoryPolicy validates and constructs an inventory policy.
func NewInventoryPolicy(coverageDays, reorderPoint, orderQuantity float64) (*InventoryPolicy, error) {
	err := validation.NewConfigValidator("InventoryPolicy").
		PositiveFloat("coverage_days", coverageDays).
		NonNegativeFloat("reorder_point", reorderPoint).
		PositiveFloat("order_quantity", orderQuantity).
		Err()
	if err != nil {
		return nil, err
	}

	return &InventoryPolicy{
		CoverageDays:  coverageDays,
		ReorderPoint:  reorderPoint,
		OrderQuantity: orderQuantity,
	}, nil
}
