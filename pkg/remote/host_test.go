package remote

import (
	"testing"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/build"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

func ops(batch *MutationBatch) []MutationOp {
	out := make([]MutationOp, len(batch.Mutations))
	for i, m := range batch.Mutations {
		out[i] = m.Op
	}
	return out
}

func TestTreeHostRecordsMutations(t *testing.T) {
	h := NewTreeHost()

	body := h.CreateElement("body")
	div := h.CreateElement("div")
	txt := h.CreateText("hi")
	h.InsertBefore(div, txt, nil)
	h.InsertBefore(body, div, nil)
	div.SetAttr("class", "box")
	txt.SetText("bye")

	batch := h.Flush()
	if batch == nil || batch.Seq != 1 {
		t.Fatalf("Flush() = %+v, want seq 1", batch)
	}
	want := []MutationOp{
		OpCreateElement, OpCreateElement, OpCreateText,
		OpInsertBefore, OpInsertBefore, OpSetAttr, OpSetText,
	}
	got := ops(batch)
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}

	// Buffer resets; the next flush is empty.
	if h.Flush() != nil {
		t.Errorf("second Flush() not nil on a quiet tree")
	}
	if h.Pending() != 0 {
		t.Errorf("Pending() = %d after flush", h.Pending())
	}
}

func TestTreeHostMirrorsStructure(t *testing.T) {
	h := NewTreeHost()
	parent := h.CreateElement("ul")
	a := h.CreateElement("li")
	b := h.CreateElement("li")
	h.InsertBefore(parent, a, nil)
	h.InsertBefore(parent, b, a) // b before a

	kids := parent.Children()
	if len(kids) != 2 || kids[0] != b || kids[1] != a {
		t.Fatalf("children = %v", kids)
	}
	if a.Parent() != parent {
		t.Errorf("parent link missing")
	}

	// Moving an already-parented child keeps the list consistent.
	h.InsertBefore(parent, a, b)
	kids = parent.Children()
	if kids[0] != a || kids[1] != b {
		t.Errorf("children after move = %v", kids)
	}

	h.Remove(a)
	if len(parent.Children()) != 1 {
		t.Errorf("children after remove = %v", parent.Children())
	}
}

func TestTreeHostEventDispatch(t *testing.T) {
	h := NewTreeHost()
	btn := h.CreateElement("button").(*treeNode)

	var got host.Event
	off := btn.On("click", func(ev host.Event) { got = ev })

	// Listener registration surfaces to the shell as an "@click" prop.
	if btn.Prop("@click") != true {
		t.Errorf("listener prop not recorded")
	}

	h.DispatchEvent(btn.ID(), host.Event{Type: "click", Key: "Enter"})
	if got.Type != "click" || got.Key != "Enter" {
		t.Errorf("event = %+v", got)
	}

	off()
	got = host.Event{}
	h.DispatchEvent(btn.ID(), host.Event{Type: "click"})
	if got.Type != "" {
		t.Errorf("removed listener still fired")
	}

	// Events addressed to ids this session never created are dropped.
	h.DispatchEvent(9999, host.Event{Type: "click"})
}

// Removal may be a temporary detach: reinserting the same subtree must
// leave its ids routable, as transition staging and instance detach do.
func TestTreeHostDetachReattachKeepsEventRouting(t *testing.T) {
	h := NewTreeHost()
	body := h.CreateElement("body")
	btn := h.CreateElement("button").(*treeNode)
	h.InsertBefore(body, btn, nil)

	fired := 0
	btn.On("click", func(host.Event) { fired++ })

	h.DispatchEvent(btn.ID(), host.Event{Type: "click"})

	h.Remove(btn)
	h.InsertBefore(body, btn, nil)
	h.DispatchEvent(btn.ID(), host.Event{Type: "click"})
	if fired != 2 {
		t.Errorf("fired = %d after reattach, want 2", fired)
	}
}

func TestTreeHostListenerRemovalCompacts(t *testing.T) {
	h := NewTreeHost()
	btn := h.CreateElement("button").(*treeNode)

	for i := 0; i < 10; i++ {
		off := btn.On("click", func(host.Event) {})
		off()
		off() // second call is a no-op
	}
	if got := len(btn.listeners["click"]); got != 0 {
		t.Errorf("listener entries after add/remove cycles = %d, want 0", got)
	}
	if btn.Prop("@click") != false {
		t.Errorf("listener prop = %v after last removal, want false", btn.Prop("@click"))
	}

	// Removing one of several keeps the others firing.
	fired := 0
	offA := btn.On("click", func(host.Event) { fired++ })
	btn.On("click", func(host.Event) { fired += 10 })
	offA()
	btn.fire(host.Event{Type: "click"})
	if fired != 10 {
		t.Errorf("fired = %d, want 10", fired)
	}
}

func TestTreeHostObservationDispatch(t *testing.T) {
	h := NewTreeHost()
	input := h.CreateElement("input").(*treeNode)

	var got any
	input.Observe(host.ObserveInput, func(v any) { got = v })
	if input.Prop("@observe.input") != true {
		t.Errorf("observer prop not recorded")
	}

	h.DispatchObservation(input.ID(), host.ObserveInput, "typed")
	if got != "typed" {
		t.Errorf("observed value = %v", got)
	}
}

// a real builder drives the mirroring host: the mount produces a full
// creation batch and a signal write produces exactly one SetText.
func TestTreeHostUnderBuilder(t *testing.T) {
	rt := weft.NewRuntime()
	h := NewTreeHost()
	b := build.New(rt, h)

	container := h.CreateElement("body")
	n := weft.NewSignal(rt, 1)
	bp := blueprint.Node("div", blueprint.TextSignal(n))

	if _, err := b.Mount(bp, container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	batch := h.Flush()
	if batch == nil {
		t.Fatalf("mount produced no mutations")
	}

	n.Set(2)
	batch = h.Flush()
	if batch == nil || batch.Seq != 2 {
		t.Fatalf("write produced no batch")
	}
	if len(batch.Mutations) != 1 || batch.Mutations[0].Op != OpSetText || batch.Mutations[0].Str != "2" {
		t.Errorf("write batch = %+v, want one SetText(2)", batch.Mutations)
	}
}
