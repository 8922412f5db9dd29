package weft_test

import (
	"strings"
	"testing"

	"github.com/weft-dev/weft"
	. "github.com/weft-dev/weft/el"
	"github.com/weft-dev/weft/pkg/wtest"
)

func TestCounterThroughPublicAPI(t *testing.T) {
	app := wtest.New(t)

	counter := weft.Define("counter", func(ctx weft.Ctx, props weft.Props, children []*weft.Blueprint) weft.Output {
		count := weft.UseSignal(ctx, 0)
		return weft.Output{Node: Div(
			Button(OnClick(func(weft.Event) {
				count.Update(func(n int) int { return n + 1 })
			}), "+"),
			Span(Tmpl("count: {0}", count)),
		)}
	})

	app.MustMount(counter.New())
	app.AssertContains("count: 0")

	app.Click("button")
	app.AssertContains("count: 1")

	app.Click("button")
	app.AssertContains("count: 2")
}

func TestListAndConditionalThroughPublicAPI(t *testing.T) {
	app := wtest.New(t)
	rt := app.Runtime

	items := weft.NewSignal(rt, []string{"alpha", "beta"})
	showAll := weft.NewSignal(rt, true)

	view := Div(
		weft.IfElse(showAll,
			Ul(ForEach(items,
				func(s string) any { return s },
				func(s string) *Blueprint { return Li(s) },
			)),
			P("hidden"),
		),
	)

	app.MustMount(view)
	app.AssertContains("alpha")
	app.AssertContains("beta")

	items.Set([]string{"beta", "gamma"})
	app.AssertContains("gamma")
	app.AssertNotContains("alpha")

	showAll.Set(false)
	app.AssertContains("hidden")
	if strings.Contains(app.Render(), "<ul>") {
		t.Errorf("list branch still rendered: %s", app.Render())
	}
}

func TestDerivedThroughPublicAPI(t *testing.T) {
	rt := weft.NewRuntime()
	defer rt.Close()

	base := weft.NewSignal(rt, 3)
	doubled := weft.NewDerived(rt, func() int { return base.Get() * 2 })

	if doubled.Get() != 6 {
		t.Fatalf("doubled = %d, want 6", doubled.Get())
	}
	base.Set(5)
	if doubled.Get() != 10 {
		t.Fatalf("doubled = %d after write, want 10", doubled.Get())
	}
}
