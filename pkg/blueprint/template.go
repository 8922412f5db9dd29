package blueprint

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/weft-dev/weft/pkg/weft"
)

// tmplCache holds parsed templates keyed by the xxhash of the format
// string. Templates come from author code, so the set is small and
// stable; parsing each once is enough. The cache is shared across
// runtimes and guarded for that reason.
var tmplCache = struct {
	sync.RWMutex
	m map[uint64]*parsedTmpl
}{m: make(map[uint64]*parsedTmpl)}

type segment struct {
	literal string
	arg     int // -1 for literals
}

type parsedTmpl struct {
	segments []segment
}

// Tmpl is the templated-string helper: positional {0}, {1}, ...
// placeholders are substituted with the arguments. When any argument is
// reactive the result is a text blueprint backed by a derived signal
// that re-renders as the arguments change; otherwise the text is static.
//
//	blueprint.Tmpl("{0} of {1} done", doneCount, total)
func Tmpl(format string, args ...any) *Blueprint {
	parsed := parseTmpl(format)

	var rt *weft.Runtime
	for _, arg := range args {
		if r, ok := arg.(weft.Reactive); ok {
			rt = r.Runtime()
			break
		}
	}

	if rt == nil {
		return Text(parsed.render(args, false))
	}

	d := weft.NewDerived(rt, func() string {
		return parsed.render(args, true)
	})
	return TextSignal(d)
}

// Textf is the fmt-style convenience variant of Tmpl.
func Textf(format string, args ...any) *Blueprint {
	var rt *weft.Runtime
	for _, arg := range args {
		if r, ok := arg.(weft.Reactive); ok {
			rt = r.Runtime()
			break
		}
	}

	if rt == nil {
		return Text(fmt.Sprintf(format, args...))
	}

	d := weft.NewDerived(rt, func() string {
		resolved := make([]any, len(args))
		for i, arg := range args {
			if r, ok := arg.(weft.Reactive); ok {
				resolved[i] = r.ReadAny()
				continue
			}
			resolved[i] = arg
		}
		return fmt.Sprintf(format, resolved...)
	})
	return TextSignal(d)
}

// render substitutes arguments into the parsed segments. tracked
// selects whether reactive arguments register dependencies.
func (p *parsedTmpl) render(args []any, tracked bool) string {
	var sb strings.Builder
	for _, seg := range p.segments {
		if seg.arg < 0 {
			sb.WriteString(seg.literal)
			continue
		}
		if seg.arg >= len(args) {
			continue
		}
		arg := args[seg.arg]
		if r, ok := arg.(weft.Reactive); ok {
			if tracked {
				arg = r.ReadAny()
			} else {
				arg = r.PeekAny()
			}
		}
		sb.WriteString(fmt.Sprint(arg))
	}
	return sb.String()
}

func parseTmpl(format string) *parsedTmpl {
	key := xxhash.Sum64String(format)

	tmplCache.RLock()
	cached := tmplCache.m[key]
	tmplCache.RUnlock()
	if cached != nil {
		return cached
	}

	parsed := &parsedTmpl{}
	rest := format
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			break
		}
		close += open

		idx, err := strconv.Atoi(rest[open+1 : close])
		if err != nil || idx < 0 {
			// Not a placeholder; keep the braces literal.
			parsed.segments = append(parsed.segments, segment{literal: rest[:close+1], arg: -1})
			rest = rest[close+1:]
			continue
		}

		if open > 0 {
			parsed.segments = append(parsed.segments, segment{literal: rest[:open], arg: -1})
		}
		parsed.segments = append(parsed.segments, segment{arg: idx})
		rest = rest[close+1:]
	}
	if rest != "" {
		parsed.segments = append(parsed.segments, segment{literal: rest, arg: -1})
	}

	tmplCache.Lock()
	tmplCache.m[key] = parsed
	tmplCache.Unlock()
	return parsed
}
