package voronoi

import "testing"

type rbStub struct {
	node *rbNode
	id   int
}

func (s *rbStub) bindToNode(n *rbNode) { s.node = n }

func TestRBTree_InsertSuccessorKeepsOrder(t *testing.T) {
	var tree rbTree
	const n = 100
	stubs := make([]*rbStub, n)
	for i := range n {
		stubs[i] = &rbStub{id: i}
		var after *rbNode
		if i > 0 {
			after = stubs[i-1].node
		}
		tree.insertSuccessor(after, stubs[i])
	}

	assertThreadedIDs(t, &tree, ascendingIDs(0, n, 1))
	assertRedBlackInvariants(t, &tree)
}

func TestRBTree_InsertAtFront(t *testing.T) {
	var tree rbTree
	const n = 20
	for i := range n {
		tree.insertSuccessor(nil, &rbStub{id: i})
	}

	assertThreadedIDs(t, &tree, ascendingIDs(n-1, -1, -1))
	assertRedBlackInvariants(t, &tree)
}

func TestRBTree_RemoveEveryOther(t *testing.T) {
	var tree rbTree
	const n = 64
	stubs := make([]*rbStub, n)
	for i := range n {
		stubs[i] = &rbStub{id: i}
		var after *rbNode
		if i > 0 {
			after = stubs[i-1].node
		}
		tree.insertSuccessor(after, stubs[i])
	}
	for i := 0; i < n; i += 2 {
		tree.removeNode(stubs[i].node)
	}

	assertThreadedIDs(t, &tree, ascendingIDs(1, n, 2))
	assertRedBlackInvariants(t, &tree)
}

func TestRBTree_RemoveAll(t *testing.T) {
	var tree rbTree
	const n = 33
	stubs := make([]*rbStub, n)
	for i := range n {
		stubs[i] = &rbStub{id: i}
		var after *rbNode
		if i > 0 {
			after = stubs[i-1].node
		}
		tree.insertSuccessor(after, stubs[i])
	}
	// Remove from the middle out, then the rest.
	for i := n / 2; i < n; i++ {
		tree.removeNode(stubs[i].node)
		assertRedBlackInvariants(t, &tree)
	}
	for i := n/2 - 1; i >= 0; i-- {
		tree.removeNode(stubs[i].node)
		assertRedBlackInvariants(t, &tree)
	}

	if tree.root != nil {
		t.Errorf("tree.root = %v after removing every node, want nil", tree.root)
	}
}

// Helpers

func ascendingIDs(start, stop, step int) []int {
	var ids []int
	if step > 0 {
		for i := start; i < stop; i += step {
			ids = append(ids, i)
		}
	} else {
		for i := start; i > stop; i += step {
			ids = append(ids, i)
		}
	}
	return ids
}

func assertThreadedIDs(t *testing.T, tree *rbTree, want []int) {
	t.Helper()
	var got []int
	for node := tree.first(tree.root); node != nil; node = node.next {
		got = append(got, node.value.(*rbStub).id)
	}
	if len(got) != len(want) {
		t.Fatalf("forward walk visited %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("forward walk ids = %v, want %v", got, want)
		}
	}

	// The previous links mirror the next links.
	last := tree.first(tree.root)
	for last != nil && last.next != nil {
		last = last.next
	}
	for i := len(want) - 1; i >= 0; i-- {
		if last == nil {
			t.Fatalf("backward walk ended after %d nodes, want %d", len(want)-1-i, len(want))
		}
		if got := last.value.(*rbStub).id; got != want[i] {
			t.Fatalf("backward walk id = %d, want %d", got, want[i])
		}
		last = last.previous
	}
}

func assertRedBlackInvariants(t *testing.T, tree *rbTree) {
	t.Helper()
	if tree.root == nil {
		return
	}
	if tree.root.red {
		t.Errorf("tree root is red, want black")
	}
	if tree.root.parent != nil {
		t.Errorf("tree root has a parent, want nil")
	}

	var walk func(node *rbNode) int
	walk = func(node *rbNode) int {
		if node == nil {
			return 1
		}
		if node.left != nil && node.left.parent != node {
			t.Errorf("node %d: left child parent link broken", node.value.(*rbStub).id)
		}
		if node.right != nil && node.right.parent != node {
			t.Errorf("node %d: right child parent link broken", node.value.(*rbStub).id)
		}
		if node.red && node.parent != nil && node.parent.red {
			t.Errorf("red node %d has a red parent", node.value.(*rbStub).id)
		}
		lh := walk(node.left)
		rh := walk(node.right)
		if lh != rh {
			t.Errorf("node %d: black height mismatch %d vs %d", node.value.(*rbStub).id, lh, rh)
		}
		if node.red {
			return lh
		}
		return lh + 1
	}
	walk(tree.root)
}
