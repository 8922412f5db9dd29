package blueprint

import (
	"testing"

	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

func TestNodeBuildsElement(t *testing.T) {
	b := Node("div",
		Attr{Key: "class", Value: "card"},
		Node("span", "hello"),
		"tail",
	)

	if b.Kind != KindElement || b.Tag != "div" {
		t.Fatalf("Kind/Tag = %v/%q, want element/div", b.Kind, b.Tag)
	}
	if b.Props["class"] != "card" {
		t.Errorf("Props[class] = %v, want card", b.Props["class"])
	}
	if len(b.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(b.Children))
	}
	if b.Children[0].Kind != KindElement || b.Children[0].Tag != "span" {
		t.Errorf("first child = %v/%q, want element/span", b.Children[0].Kind, b.Children[0].Tag)
	}
	if b.Children[1].Kind != KindText || b.Children[1].Text != "tail" {
		t.Errorf("second child = %v/%v, want text/tail", b.Children[1].Kind, b.Children[1].Text)
	}
}

func TestNodeKeyBecomesBlueprintKey(t *testing.T) {
	b := Node("li", Attr{Key: "key", Value: 42}, "x")
	if b.Key != 42 {
		t.Errorf("Key = %v, want 42", b.Key)
	}
	if _, exists := b.Props["key"]; exists {
		t.Errorf("key leaked into Props")
	}
}

func TestNodeArgForms(t *testing.T) {
	handler := On("click", func(host.Event) {})
	b := Node("button",
		nil,
		[]Attr{{Key: "id", Value: "go"}, {Key: "disabled", Value: true}},
		Props{"title": "run"},
		handler,
		[]*Blueprint{Text("a"), nil, Text("b")},
	)

	if b.Props["id"] != "go" || b.Props["disabled"] != true || b.Props["title"] != "run" {
		t.Errorf("props not merged: %v", b.Props)
	}
	if _, ok := b.Props["click"].(EventHandler); !ok {
		t.Errorf("Props[click] = %T, want EventHandler", b.Props["click"])
	}
	if len(b.Children) != 2 {
		t.Errorf("len(Children) = %d, want 2 (nils skipped)", len(b.Children))
	}
}

func TestNodeReactiveTextChild(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, "live")

	b := Node("p", s)
	if len(b.Children) != 1 || b.Children[0].Kind != KindText {
		t.Fatalf("expected one text child, got %v", b.Children)
	}
	if _, ok := b.Children[0].Text.(weft.Reactive); !ok {
		t.Errorf("Text = %T, want weft.Reactive", b.Children[0].Text)
	}
}

func TestComponentNew(t *testing.T) {
	comp := Define("Greeting", func(ctx Ctx, props Props, children []*Blueprint) Output {
		return Output{Node: Text("hi")}
	}, WithDefaults(PropTypes{"name": "world"}))

	b := comp.New(Attr{Key: "name", Value: "weft"}, Text("child"))

	if b.Kind != KindComponent || b.Component != comp {
		t.Fatalf("Kind/Component = %v/%v, want component use", b.Kind, b.Component)
	}
	if b.CompProps["name"] != "weft" {
		t.Errorf("CompProps[name] = %v, want weft", b.CompProps["name"])
	}
	if len(b.Children) != 1 {
		t.Errorf("len(Children) = %d, want 1", len(b.Children))
	}

	merged := comp.ResolveProps(Props{})
	if merged["name"] != "world" {
		t.Errorf("ResolveProps default = %v, want world", merged["name"])
	}
}

func TestNodeWithComponentFirstArg(t *testing.T) {
	comp := Define("C", func(ctx Ctx, props Props, children []*Blueprint) Output {
		return Output{Node: Placeholder()}
	})
	b := Node(comp, Attr{Key: "x", Value: 1})
	if b.Kind != KindComponent || b.CompProps["x"] != 1 {
		t.Errorf("Node(component) = %v props %v", b.Kind, b.CompProps)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{0, false},
		{3, true},
		{0.0, false},
		{1.5, true},
		{struct{}{}, true},
	}
	for _, tc := range cases {
		if got := Truthy(tc.in); got != tc.want {
			t.Errorf("Truthy(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCloneResetsObservation(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, "")

	orig := Node("input").Observe(map[string]weft.Reactive{"value": s})
	if !orig.Obs.MarkBuilt() {
		t.Fatalf("first MarkBuilt should succeed")
	}
	if orig.Obs.MarkBuilt() {
		t.Fatalf("second MarkBuilt should fail")
	}

	dup := orig.Clone()
	if dup.Obs == orig.Obs {
		t.Fatalf("clone shares observation state")
	}
	if dup.Obs.Built() {
		t.Errorf("cloned observation already built")
	}
	if !dup.Obs.MarkBuilt() {
		t.Errorf("clone must be buildable once")
	}
}

func TestCloneCopiesChildrenDeep(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, "")

	child := Node("input").Observe(map[string]weft.Reactive{"value": s})
	parent := Node("form", child)
	child.Obs.MarkBuilt()

	dup := parent.Clone()
	if dup.Children[0] == child {
		t.Fatalf("clone shares child pointer")
	}
	if dup.Children[0].Obs.Built() {
		t.Errorf("cloned child observation already built")
	}
}

func TestSwitchAndWhenShapes(t *testing.T) {
	rt := weft.NewRuntime()
	idx := weft.NewSignal(rt, 1)
	cond := weft.NewSignal(rt, true)

	sw := Switch(idx, Text("a"), Text("b"))
	if sw.Kind != KindSwitch || len(sw.Cond.Branches) != 2 {
		t.Fatalf("Switch shape wrong: %v", sw)
	}
	if got := sw.Cond.Index(); got != 1 {
		t.Errorf("Switch index = %d, want 1", got)
	}

	wh := When(cond, Text("on"))
	if wh.Kind != KindWhen {
		t.Fatalf("When kind = %v", wh.Kind)
	}
	if got := wh.Cond.Index(); got != 0 {
		t.Errorf("When index = %d, want 0 while true", got)
	}
	cond.Set(false)
	if got := wh.Cond.Index(); got != -1 {
		t.Errorf("When index = %d, want -1 while false", got)
	}
}

func TestForEachShape(t *testing.T) {
	rt := weft.NewRuntime()
	items := weft.NewSignal(rt, []string{"a", "b"})

	list := ForEach(items, func(s string) any { return s }, func(s string) *Blueprint {
		return Text(s)
	})

	if list.Kind != KindList {
		t.Fatalf("Kind = %v, want list", list.Kind)
	}
	got := list.List.Items()
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("Items() = %v, want [a b]", got)
	}
	if list.List.KeyOf(got[1]) != "b" {
		t.Errorf("KeyOf(b) = %v, want b", list.List.KeyOf(got[1]))
	}
	if r := list.List.Render(got[0]); r.Kind != KindText || r.Text != "a" {
		t.Errorf("Render(a) = %v", r)
	}
}
