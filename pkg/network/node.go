package network

import (
	"fmt"

	"github.com/dd0wney/stockflow/pkg/demand"
	"github.com/dd0wney/stockflow/pkg/validation"
)

// Order is a replenishment in flight: a quantity that becomes available at
// ArrivalTime.
type Order struct {
	Quantity    float64
	ArrivalTime float64
}

// Node represents a participant in the supply chain: a supplier, distribution
// center, retailer or similar. It tracks physical inventory and orders that
// have been placed but not yet received.
type Node struct {
	ID     string
	Type   string
	Demand *demand.Generator
	Policy *InventoryPolicy

	InventoryLevel float64
	pending        []Order
}

// NodeOption customizes a node at construction time.
type NodeOption func(*Node)

// WithDemand attaches a demand generator to the node.
func WithDemand(gen *demand.Generator) NodeOption {
	return func(n *Node) { n.Demand = gen }
}

// WithPolicy attaches an inventory policy to the node.
func WithPolicy(policy *InventoryPolicy) NodeOption {
	return func(n *Node) { n.Policy = policy }
}

// NewNode creates a node with zero starting inventory.
func NewNode(id, nodeType string, opts ...NodeOption) *Node {
	n := &Node{ID: id, Type: nodeType}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// PlaceOrder records an order that will arrive at the given time.
func (n *Node) PlaceOrder(quantity, arrivalTime float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: order quantity must be positive, got %g", validation.ErrValidation, quantity)
	}
	n.pending = append(n.pending, Order{Quantity: quantity, ArrivalTime: arrivalTime})
	return nil
}

// ReceiveOrders credits every pending order due at or before currentTime into
// the inventory level and returns the total quantity received. Each order is
// credited exactly once; a second call at the same time returns 0 for orders
// already received.
func (n *Node) ReceiveOrders(currentTime float64) float64 {
	received := 0.0
	remaining := n.pending[:0]

	for _, order := range n.pending {
		if order.ArrivalTime <= currentTime {
			received += order.Quantity
			n.InventoryLevel += order.Quantity
		} else {
			remaining = append(remaining, order)
		}
	}

	n.pending = remaining
	return received
}

// PendingOrders returns a copy of the orders still in flight.
func (n *Node) PendingOrders() []Order {
	out := make([]Order, len(n.pending))
	copy(out, n.pending)
	return out
}
