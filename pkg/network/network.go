package network

import (
	"container/list"
	"fmt"

	"github.com/dd0wney/stockflow/pkg/validation"
)

// Edge is a directed transport link. Capacity is optional; HasCapacity
// reports whether one was set. At most one edge exists per ordered node pair.
type Edge struct {
	From        string
	To          string
	LeadTime    float64
	Capacity    float64
	HasCapacity bool
}

type edgeKey struct {
	from, to string
}

// Network owns a directed graph of supply chain nodes and lead-time-labeled
// edges. It is an explicitly owned object, never shared global state; it is
// not safe for uncoordinated concurrent mutation.
type Network struct {
	nodes map[string]*Node
	out   map[string][]*Edge
	in    map[string][]*Edge

	// capacity snapshots taken before disruption derating, keyed by edge,
	// so a disruption can be explicitly rolled back
	preDisruption map[edgeKey]float64
}

// New creates an empty supply chain network.
func New() *Network {
	return &Network{
		nodes:         make(map[string]*Node),
		out:           make(map[string][]*Edge),
		in:            make(map[string][]*Edge),
		preDisruption: make(map[edgeKey]float64),
	}
}

// AddNode inserts a node. Fails with ErrDuplicateNode if the id is taken;
// the network is unchanged on failure.
func (n *Network) AddNode(node *Node) error {
	if node == nil || node.ID == "" {
		return fmt.Errorf("%w: node must have a non-empty id", validation.ErrValidation)
	}
	if _, exists := n.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, node.ID)
	}
	n.nodes[node.ID] = node
	return nil
}

// AddEdge creates a directed edge without a capacity label.
func (n *Network) AddEdge(from, to string, leadTime float64) error {
	return n.addEdge(from, to, leadTime, 0, false)
}

// AddEdgeWithCapacity creates a directed edge carrying a flow capacity.
func (n *Network) AddEdgeWithCapacity(from, to string, leadTime, capacity float64) error {
	return n.addEdge(from, to, leadTime, capacity, true)
}

func (n *Network) addEdge(from, to string, leadTime, capacity float64, hasCapacity bool) error {
	if _, ok := n.nodes[from]; !ok {
		return fmt.Errorf("%w: source node %q does not exist", validation.ErrValidation, from)
	}
	if _, ok := n.nodes[to]; !ok {
		return fmt.Errorf("%w: target node %q does not exist", validation.ErrValidation, to)
	}
	if leadTime <= 0 {
		return fmt.Errorf("%w: lead time must be positive, got %g", validation.ErrValidation, leadTime)
	}

	// Overwrite in place when the ordered pair already has an edge
	if existing, ok := n.edge(from, to); ok {
		existing.LeadTime = leadTime
		existing.Capacity = capacity
		existing.HasCapacity = hasCapacity
		delete(n.preDisruption, edgeKey{from, to})
		return nil
	}

	e := &Edge{From: from, To: to, LeadTime: leadTime, Capacity: capacity, HasCapacity: hasCapacity}
	n.out[from] = append(n.out[from], e)
	n.in[to] = append(n.in[to], e)
	return nil
}

func (n *Network) edge(from, to string) (*Edge, bool) {
	for _, e := range n.out[from] {
		if e.To == to {
			return e, true
		}
	}
	return nil, false
}

// Edge returns a copy of the edge between the ordered pair, if present.
func (n *Network) Edge(from, to string) (Edge, bool) {
	e, ok := n.edge(from, to)
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Node returns the node with the given id, if present.
func (n *Network) Node(id string) (*Node, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// NodeIDs returns the ids of all nodes in insertion-independent map order.
func (n *Network) NodeIDs() []string {
	ids := make([]string, 0, len(n.nodes))
	for id := range n.nodes {
		ids = append(ids, id)
	}
	return ids
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of directed edges.
func (n *Network) EdgeCount() int {
	count := 0
	for _, edges := range n.out {
		count += len(edges)
	}
	return count
}

// Edges returns copies of all edges.
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, n.EdgeCount())
	for _, edges := range n.out {
		for _, e := range edges {
			out = append(out, *e)
		}
	}
	return out
}

// Neighbors returns the target node ids of edges leaving the given node.
func (n *Network) Neighbors(id string) []string {
	edges := n.out[id]
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.To)
	}
	return ids
}

// PathLeadTime sums the lead times along the hop-minimal directed path from
// source to target. The path is chosen by edge count, not by lead-time
// weight, so a longer-hop route with lower cumulative lead time is never
// picked; downstream figures depend on these hop-count semantics. Fails with
// ErrNoPath when target is unreachable.
func (n *Network) PathLeadTime(source, target string) (float64, error) {
	if _, ok := n.nodes[source]; !ok {
		return 0, fmt.Errorf("%w: source node %q does not exist", validation.ErrValidation, source)
	}
	if _, ok := n.nodes[target]; !ok {
		return 0, fmt.Errorf("%w: target node %q does not exist", validation.ErrValidation, target)
	}

	path, found := n.shortestHopPath(source, target)
	if !found {
		return 0, fmt.Errorf("%w: %q -> %q", ErrNoPath, source, target)
	}

	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		e, _ := n.edge(path[i], path[i+1])
		total += e.LeadTime
	}
	return total, nil
}

// shortestHopPath runs BFS from source and reconstructs the hop-minimal path.
func (n *Network) shortestHopPath(source, target string) ([]string, bool) {
	if source == target {
		return []string{source}, true
	}

	queue := list.New()
	parent := make(map[string]string) // node -> parent
	queue.PushBack(source)
	parent[source] = source

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(string)

		for _, e := range n.out[current] {
			if _, seen := parent[e.To]; seen {
				continue
			}
			parent[e.To] = current

			if e.To == target {
				return reconstructPath(target, parent), true
			}
			queue.PushBack(e.To)
		}
	}

	return nil, false
}

// reconstructPath walks parent pointers back from target and reverses.
func reconstructPath(target string, parent map[string]string) []string {
	path := []string{target}
	node := target
	for parent[node] != node {
		node = parent[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SimulateDisruption derates the capacity of every edge incident to nodeID
// by the given fraction: capacity becomes capacity * (1 - capacityReduction).
// Edges without a capacity label are untouched. The derating is permanent in
// the model; duration is recorded for reporting only and nothing restores
// capacity when it elapses. Use RestoreCapacity for explicit rollback.
func (n *Network) SimulateDisruption(nodeID string, duration, capacityReduction float64) error {
	if _, ok := n.nodes[nodeID]; !ok {
		return fmt.Errorf("%w: node %q does not exist", validation.ErrValidation, nodeID)
	}
	if capacityReduction < 0 || capacityReduction > 1 {
		return fmt.Errorf("%w: capacity reduction %g is outside range [0, 1]", validation.ErrValidation, capacityReduction)
	}
	if duration < 0 {
		return fmt.Errorf("%w: disruption duration %g must not be negative", validation.ErrValidation, duration)
	}

	for _, e := range n.incidentEdges(nodeID) {
		if !e.HasCapacity {
			continue
		}
		key := edgeKey{e.From, e.To}
		if _, taken := n.preDisruption[key]; !taken {
			n.preDisruption[key] = e.Capacity
		}
		e.Capacity *= 1 - capacityReduction
	}
	return nil
}

// RestoreCapacity resets every edge incident to nodeID to the capacity it
// had before its first disruption. The companion to SimulateDisruption: the
// caller decides when a disruption's duration has elapsed.
func (n *Network) RestoreCapacity(nodeID string) error {
	if _, ok := n.nodes[nodeID]; !ok {
		return fmt.Errorf("%w: node %q does not exist", validation.ErrValidation, nodeID)
	}

	for _, e := range n.incidentEdges(nodeID) {
		key := edgeKey{e.From, e.To}
		if original, ok := n.preDisruption[key]; ok {
			e.Capacity = original
			delete(n.preDisruption, key)
		}
	}
	return nil
}

// incidentEdges returns incoming and outgoing edges of a node. An edge that
// is both (self-loop) appears once.
func (n *Network) incidentEdges(nodeID string) []*Edge {
	edges := make([]*Edge, 0, len(n.in[nodeID])+len(n.out[nodeID]))
	edges = append(edges, n.in[nodeID]...)
	for _, e := range n.out[nodeID] {
		if e.From != e.To {
			edges = append(edges, e)
		}
	}
	return edges
}
