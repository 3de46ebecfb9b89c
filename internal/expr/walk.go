package expr

// Slot is an assignable position in a tree together with the depth of the
// node currently held there (root = 1). Writing through Ptr splices a new
// subtree into the owning tree.
type Slot struct {
	Ptr   *Node
	Depth int
}

// CollectSlots returns one slot per node of the tree rooted at *root, in
// preorder. The root itself is slot 0.
func CollectSlots(root *Node) []Slot {
	var slots []Slot
	collectSlots(root, 1, &slots)
	return slots
}

func collectSlots(node *Node, depth int, slots *[]Slot) {
	*slots = append(*slots, Slot{Ptr: node, Depth: depth})
	switch n := (*node).(type) {
	case *Unary:
		collectSlots(&n.Child, depth+1, slots)
	case *Binary:
		collectSlots(&n.Left, depth+1, slots)
		collectSlots(&n.Right, depth+1, slots)
	}
}

// CollectNodes returns every node of the tree in preorder, without exposing
// assignable positions.
func CollectNodes(root Node) []Node {
	var nodes []Node
	collectNodes(root, &nodes)
	return nodes
}

func collectNodes(node Node, nodes *[]Node) {
	*nodes = append(*nodes, node)
	switch n := node.(type) {
	case *Unary:
		collectNodes(n.Child, nodes)
	case *Binary:
		collectNodes(n.Left, nodes)
		collectNodes(n.Right, nodes)
	}
}
