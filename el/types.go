package el

import "github.com/weft-dev/weft/pkg/blueprint"

// Type aliases for the blueprint primitives used by the DSL.
type Blueprint = blueprint.Blueprint
type Kind = blueprint.Kind
type Props = blueprint.Props
type Attr = blueprint.Attr
type EventHandler = blueprint.EventHandler
type EventOption = blueprint.EventOption
type Component = blueprint.Component
type ComponentOption = blueprint.ComponentOption
type Ctx = blueprint.Ctx
type Output = blueprint.Output
type PropTypes = blueprint.PropTypes
type AsyncResult = blueprint.AsyncResult
