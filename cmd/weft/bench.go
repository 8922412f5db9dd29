package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/weft-dev/weft"
	"github.com/weft-dev/weft/el"
)

func benchCmd() *cobra.Command {
	var iters int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure signal propagation and build throughput",
		Long: `Run the built-in benchmarks: signal writes propagating through
derived chains of varying width and depth, and full blueprint builds
against the in-memory host.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			benchPropagation(iters)
			benchBuild(iters)
			reportMemory()
			return nil
		},
	}

	cmd.Flags().IntVarP(&iters, "iterations", "n", 100, "Samples per benchmark case")

	return cmd
}

var (
	widths = []int{1, 10, 100}
	depths = []int{1, 10, 100}
)

// benchPropagation times one source write reaching every watcher
// through w parallel chains of h deriveds each.
func benchPropagation(iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Signal Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, h := range depths {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := weft.NewRuntime()
			src := weft.NewSignal(rt, 1)
			for i := 0; i < w; i++ {
				var last interface{ Get() int } = src
				for j := 0; j < h; j++ {
					prev := last
					last = weft.NewDerived(rt, func() int { return prev.Get() + 1 })
				}
				weft.Watch(rt, func() { last.Get() })
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				rt.Dispatch(func() { src.Set(src.Peek() + 1) })
				tach.AddTime(time.Since(start))
			}
			rt.Close()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{{
				fmt.Sprintf("propagate: %d * %d", w, h),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			}})
		}
	}

	tbl.Render()
}

// benchBuild times mounting a list-heavy blueprint from scratch.
func benchBuild(iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Blueprint Build")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, rows := range []int{10, 100, 1000} {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		for i := 0; i < iters; i++ {
			rt := weft.NewRuntime()
			h := weft.NewMemHost()
			b := weft.NewBuilder(rt, h)
			container := h.CreateElement("body")

			bp := el.Div(
				el.H1(el.Text("bench")),
				el.Ul(el.Repeat(rows, func(i int) *el.Blueprint {
					return el.Li(el.Textf("row %d", i))
				})),
			)

			start := time.Now()
			if _, err := b.Mount(bp, container); err != nil {
				fmt.Fprintf(os.Stderr, "mount failed: %s\n", err)
				os.Exit(1)
			}
			tach.AddTime(time.Since(start))
			rt.Close()
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{{
			fmt.Sprintf("mount: %s rows", humanize.Comma(int64(rows))),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		}})
	}

	tbl.Render()
}

func reportMemory() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("\nheap in use: %s, total allocated: %s, gc cycles: %s\n",
		humanize.Bytes(m.HeapInuse),
		humanize.Bytes(m.TotalAlloc),
		humanize.Comma(int64(m.NumGC)))
}
