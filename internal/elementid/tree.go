package elementid

import "github.com/petrijr/featuretour/pkg/api"

// Walk visits root and its descendants depth-first, pre-order, using an
// explicit stack. visit returning false stops the walk.
func Walk(root api.Node, visit func(api.Node) bool) {
	if root == nil {
		return
	}
	stack := []api.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n == nil {
			continue
		}
		if !visit(n) {
			return
		}

		children := n.Children()
		// Push in reverse so the first child is visited first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// FindByAutomationID returns the first node in pre-order whose automation id
// equals id.
func FindByAutomationID(root api.Node, id string) (api.Node, bool) {
	if id == "" {
		return nil, false
	}
	var found api.Node
	Walk(root, func(n api.Node) bool {
		if n.AutomationID() == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// SyncTree attaches every node of the tree that declares an id to reg,
// making elements that only carry an automation id addressable by it.
// It returns the number of nodes attached.
func SyncTree(reg *Registry, root api.Node) int {
	n := 0
	Walk(root, func(node api.Node) bool {
		if reg.Attach(node) != "" {
			n++
		}
		return true
	})
	return n
}
