// Package wtest provides test helpers for weft applications: an
// in-memory harness wiring a runtime, builder, and host container
// together, plus assertion and interaction shorthands.
//
// Example:
//
//	app := wtest.New(t)
//	app.MustMount(counterComponent.New())
//	app.Click("button")
//	app.AssertContains("count: 1")
package wtest

import (
	"strings"
	"testing"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/build"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

// App is an in-memory application under test.
type App struct {
	t *testing.T

	Runtime   *weft.Runtime
	Host      *host.MemHost
	Builder   *build.Builder
	Container *host.MemNode
}

// New creates a harness with a fresh runtime, in-memory host, and a
// detached container element. The runtime runs synchronously on the
// test goroutine; no loop is started.
func New(t *testing.T) *App {
	t.Helper()
	rt := weft.NewRuntime()
	t.Cleanup(rt.Close)
	h := host.NewMemHost()
	return &App{
		t:         t,
		Runtime:   rt,
		Host:      h,
		Builder:   build.New(rt, h),
		Container: h.CreateElement("body").(*host.MemNode),
	}
}

// MustMount mounts bp into the container, failing the test on error.
func (a *App) MustMount(bp *blueprint.Blueprint) *build.Instance {
	a.t.Helper()
	in, err := a.Builder.Mount(bp, a.Container)
	if err != nil {
		a.t.Fatalf("mount: %v", err)
	}
	return in
}

// MustHydrate hydrates bp against node, failing the test on error.
func (a *App) MustHydrate(bp *blueprint.Blueprint, node host.Node) *build.Instance {
	a.t.Helper()
	in, err := a.Builder.Hydrate(bp, node)
	if err != nil {
		a.t.Fatalf("hydrate: %v", err)
	}
	return in
}

// Render serializes the container subtree.
func (a *App) Render() string {
	return host.RenderToString(a.Container)
}

// AssertContains fails the test when the rendered output lacks substr.
func (a *App) AssertContains(substr string) {
	a.t.Helper()
	got := a.Render()
	if !strings.Contains(got, substr) {
		a.t.Errorf("rendered output %q does not contain %q", got, substr)
	}
}

// AssertNotContains fails the test when the rendered output has substr.
func (a *App) AssertNotContains(substr string) {
	a.t.Helper()
	got := a.Render()
	if strings.Contains(got, substr) {
		a.t.Errorf("rendered output %q contains %q", got, substr)
	}
}

// Find returns the first element with the given tag, failing the test
// when none exists.
func (a *App) Find(tag string) *host.MemNode {
	a.t.Helper()
	n := a.Container.FindByTag(tag)
	if n == nil {
		a.t.Fatalf("no <%s> in %q", tag, a.Render())
	}
	return n
}

// Click fires a click event on the first element with the given tag.
func (a *App) Click(tag string) {
	a.t.Helper()
	a.Find(tag).Fire(host.Event{Type: "click"})
}

// Input fires an input event with the given value on the first element
// with the given tag.
func (a *App) Input(tag, value string) {
	a.t.Helper()
	a.Find(tag).Fire(host.Event{Type: "input", Value: value})
}
