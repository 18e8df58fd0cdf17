package board

import "github.com/google/uuid"

// Edge connects two nodes. Edges are undirected for deduplication: an
// edge between A and B in either order is the same edge.
type Edge struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// NewEdge creates an edge between two node ids.
func NewEdge(from, to string) *Edge {
	return &Edge{ID: uuid.NewString(), From: from, To: to}
}

// Connects reports whether the edge joins a and b, in either direction.
func (e *Edge) Connects(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// Touches reports whether the edge has the given node as an endpoint.
func (e *Edge) Touches(id string) bool {
	return e.From == id || e.To == id
}
