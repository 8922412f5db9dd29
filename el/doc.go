// Package el provides the UI DSL for Weft.
//
// It re-exports HTML element constructors, attribute helpers, event helpers,
// and common blueprint utilities from github.com/weft-dev/weft/pkg/blueprint.
//
// Typical usage:
//
//	import (
//	    "github.com/weft-dev/weft/pkg/weft"
//	    . "github.com/weft-dev/weft/el"
//	)
//
// This keeps the DSL in a dedicated package while the reactive APIs live in weft.
package el
