package build_test

import (
	"errors"
	"testing"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/build"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

type row struct {
	ID int
	V  string
}

func rowList(rt *weft.Runtime, rows []row) (*weft.Signal[[]row], *blueprint.Blueprint) {
	src := weft.NewSignal(rt, rows)
	bp := blueprint.ForEach[row](src,
		func(r row) any { return r.ID },
		func(r row) *blueprint.Blueprint { return blueprint.Node("li", r.V) },
	)
	return src, bp
}

func liTexts(ul *host.MemNode) []string {
	var out []string
	for _, li := range ul.Children() {
		kids := li.Children()
		if len(kids) == 1 {
			out = append(out, kids[0].Text())
		} else {
			out = append(out, li.Text())
		}
	}
	return out
}

// [{1,a},{2,b}] -> [{2,b},{3,c}]: one remove (1), one reuse-with-move
// (2), one insert (3), final order matching the new sequence.
func TestListReconciliation(t *testing.T) {
	rt, _, b, container := newFixture()
	src, lp := rowList(rt, []row{{1, "a"}, {2, "b"}})

	if _, err := b.Mount(blueprint.Node("ul", lp), container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	ul := container.FindByTag("ul")
	if got := liTexts(ul); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("initial rows = %v", got)
	}
	reused := ul.Children()[1] // id 2's node

	src.Set([]row{{2, "b"}, {3, "c"}})

	got := liTexts(ul)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("rows after update = %v, want [b c]", got)
	}
	if ul.Children()[0] != reused {
		t.Errorf("id 2's instance was rebuilt, want reuse-with-move")
	}
}

func TestListReorderMovesInstances(t *testing.T) {
	rt, _, b, container := newFixture()
	src, lp := rowList(rt, []row{{1, "a"}, {2, "b"}, {3, "c"}})

	if _, err := b.Mount(blueprint.Node("ul", lp), container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	ul := container.FindByTag("ul")
	first := ul.Children()[0]

	src.Set([]row{{3, "c"}, {2, "b"}, {1, "a"}})

	got := liTexts(ul)
	if len(got) != 3 || got[0] != "c" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("rows after reverse = %v, want [c b a]", got)
	}
	if ul.Children()[2] != first {
		t.Errorf("id 1's node identity changed across a move")
	}
}

// a duplicate key in one update is fatal, raised before any mutation.
func TestListDuplicateKeyFatalBeforeMutation(t *testing.T) {
	rt, _, b, container := newFixture()
	src, lp := rowList(rt, []row{{1, "a"}, {2, "b"}})

	if _, err := b.Mount(blueprint.Node("ul", lp), container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	ul := container.FindByTag("ul")

	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatalf("duplicate key did not fail")
			}
			if err, ok := r.(error); !ok || !errors.Is(err, build.ErrDuplicateKey) {
				t.Errorf("failure = %v, want ErrDuplicateKey", r)
			}
		}()
		src.Set([]row{{1, "x"}, {1, "y"}})
	}()

	if got := liTexts(ul); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("rows mutated before the duplicate was detected: %v", got)
	}
}

func TestListDuplicateKeyOnInitialBuild(t *testing.T) {
	rt, _, b, container := newFixture()
	_, lp := rowList(rt, []row{{1, "a"}, {1, "b"}})

	_, err := b.Mount(blueprint.Node("ul", lp), container)
	if !errors.Is(err, build.ErrDuplicateKey) {
		t.Errorf("Mount() error = %v, want ErrDuplicateKey", err)
	}
}

// an empty result set leaves one placeholder as a stable anchor.
func TestListEmptyUsesPlaceholderAnchor(t *testing.T) {
	rt, _, b, container := newFixture()
	src, lp := rowList(rt, nil)

	if _, err := b.Mount(blueprint.Node("ul", lp), container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	ul := container.FindByTag("ul")
	if len(ul.Children()) != 1 || ul.Children()[0].Kind() != host.NodeText {
		t.Fatalf("empty list children = %d, want one placeholder", len(ul.Children()))
	}

	src.Set([]row{{1, "a"}})
	if got := liTexts(ul); len(got) != 1 || got[0] != "a" {
		t.Fatalf("rows = %v after fill, want [a]", got)
	}

	src.Set(nil)
	if len(ul.Children()) != 1 || ul.Children()[0].Kind() != host.NodeText {
		t.Errorf("children = %d after emptying, want one placeholder", len(ul.Children()))
	}
}

func TestListKeepsSiblingsOutsideGroup(t *testing.T) {
	rt, _, b, container := newFixture()
	src, lp := rowList(rt, []row{{1, "a"}})

	bp := blueprint.Node("ul",
		blueprint.Node("li", "head"),
		lp,
		blueprint.Node("li", "tail"),
	)
	if _, err := b.Mount(bp, container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	ul := container.FindByTag("ul")

	src.Set([]row{{1, "a"}, {2, "b"}})
	got := liTexts(ul)
	want := []string{"head", "a", "b", "tail"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
}

// the multi-branch form treats a same-index reselection as a no-op; the
// standalone form rebuilds on every selector notification.
func TestSwitchSameIndexIsNoOp(t *testing.T) {
	rt, _, b, container := newFixture()
	word := weft.NewSignal(rt, "x")

	builds := 0
	counting := blueprint.Define("counting", func(ctx blueprint.Ctx, props blueprint.Props, children []*blueprint.Blueprint) blueprint.Output {
		builds++
		return blueprint.Output{Node: blueprint.Text("on")}
	})

	bp := blueprint.IfElse(word, counting.New(), blueprint.Text("off"))
	if _, err := b.Mount(blueprint.Node("div", bp), container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if builds != 1 {
		t.Fatalf("builds = %d after mount, want 1", builds)
	}

	word.Set("y") // still truthy: same branch index
	if builds != 1 {
		t.Errorf("builds = %d after same-index notification, want 1", builds)
	}

	word.Set("") // falsy: branch changes
	if got := host.RenderToString(container); got != "<div>off</div>" {
		t.Errorf("rendered = %s, want <div>off</div>", got)
	}
}

func TestWhenRebuildsEveryNotification(t *testing.T) {
	rt, _, b, container := newFixture()
	word := weft.NewSignal(rt, "x")

	builds := 0
	counting := blueprint.Define("counting", func(ctx blueprint.Ctx, props blueprint.Props, children []*blueprint.Blueprint) blueprint.Output {
		builds++
		return blueprint.Output{Node: blueprint.Text("on")}
	})

	bp := blueprint.When(word, counting.New())
	if _, err := b.Mount(blueprint.Node("div", bp), container); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if builds != 1 {
		t.Fatalf("builds = %d after mount, want 1", builds)
	}

	word.Set("y") // still truthy, but the standalone form rebuilds
	if builds != 2 {
		t.Errorf("builds = %d after same-truthiness notification, want 2", builds)
	}

	word.Set("")
	div := container.FindByTag("div")
	if len(div.Children()) != 1 || div.Children()[0].Kind() != host.NodeText || div.Children()[0].Text() != "" {
		t.Errorf("falsy When did not leave a placeholder")
	}
}
