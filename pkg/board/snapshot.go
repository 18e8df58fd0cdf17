package board

// Snapshot is a deep copy of the full canvas state, safe to hand to
// hosts and to park on the undo stack.
type Snapshot struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// Capture deep-copies the given collections into a snapshot.
func Capture(nodes []*Node, edges []*Edge) Snapshot {
	s := Snapshot{
		Nodes: make([]*Node, len(nodes)),
		Edges: make([]*Edge, len(edges)),
	}
	for i, n := range nodes {
		s.Nodes[i] = n.Clone()
	}
	for i, e := range edges {
		c := *e
		s.Edges[i] = &c
	}
	return s
}

// Clone returns an independent deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Capture(s.Nodes, s.Edges)
}
