package suspense

import (
	"testing"

	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

type nodeSet []host.Node

func (s nodeSet) Nodes() []host.Node { return s }

func TestTransitionInsertBeforeAppends(t *testing.T) {
	rt := weft.NewRuntime()
	h := host.NewMemHost()
	parent := h.CreateElement("div")

	afterRan := false
	tr := NewTransition(rt, h, WithAfter(func(nodes []host.Node, done func()) {
		afterRan = true
		done()
	}))

	n := h.CreateText("x")
	tr.InsertBefore(parent, nodeSet{n}, nil)

	if len(parent.Children()) != 1 {
		t.Fatalf("len(children) = %d, want 1", len(parent.Children()))
	}
	if !afterRan {
		t.Errorf("after effect did not run")
	}
}

func TestTransitionSwitchingSwapsNodes(t *testing.T) {
	rt := weft.NewRuntime()
	h := host.NewMemHost()
	parent := h.CreateElement("div")
	old := h.CreateText("old")
	h.InsertBefore(parent, old, nil)

	tr := NewTransition(rt, h)
	incoming := h.CreateText("new")
	tr.Switching(nodeSet{old}, nodeSet{incoming})

	children := parent.Children()
	if len(children) != 1 || children[0].Text() != "new" {
		t.Errorf("children = %v, want single [new]", children)
	}
}

// starting a cancellable transition B while A's before effect is still
// pending aborts A's remaining steps: A's swap never happens and A's
// after effect never fires, but mutations already issued stay.
func TestSecondTransitionCancelsPendingBefore(t *testing.T) {
	rt := weft.NewRuntime()
	h := host.NewMemHost()
	parent := h.CreateElement("div")
	old := h.CreateText("old")
	h.InsertBefore(parent, old, nil)

	var pendingBefore func()
	afterTargets := []string{}
	tr := NewTransition(rt, h,
		WithBefore(func(nodes []host.Node, done func()) {
			if pendingBefore == nil {
				pendingBefore = done // A awaits here
				return
			}
			done()
		}),
		WithAfter(func(nodes []host.Node, done func()) {
			for _, n := range nodes {
				afterTargets = append(afterTargets, n.Text())
			}
			done()
		}),
	)

	aIn := h.CreateText("a")
	tr.Switching(nodeSet{old}, nodeSet{aIn})
	if pendingBefore == nil {
		t.Fatalf("transition A's before effect did not start")
	}

	bIn := h.CreateText("b")
	tr.Switching(nodeSet{old}, nodeSet{bIn})

	// B completed: old replaced by b.
	children := parent.Children()
	if len(children) != 1 || children[0].Text() != "b" {
		t.Fatalf("children = %v, want single [b]", renderTexts(children))
	}

	// A's pending before effect completes late; its swap and after
	// effect must not run.
	pendingBefore()
	children = parent.Children()
	if len(children) != 1 || children[0].Text() != "b" {
		t.Errorf("children after stale completion = %v, want single [b]", renderTexts(children))
	}
	for _, target := range afterTargets {
		if target == "a" {
			t.Errorf("transition A's after effect fired despite cancellation")
		}
	}
}

func TestTransitionDetachRemovesNodes(t *testing.T) {
	rt := weft.NewRuntime()
	h := host.NewMemHost()
	parent := h.CreateElement("div")
	n := h.CreateText("x")
	h.InsertBefore(parent, n, nil)

	tr := NewTransition(rt, h)
	tr.Detach(nodeSet{n})

	if len(parent.Children()) != 0 {
		t.Errorf("len(children) = %d after detach, want 0", len(parent.Children()))
	}
}

func renderTexts(nodes []host.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Text()
	}
	return out
}
