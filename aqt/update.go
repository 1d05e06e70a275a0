package aqt

// UpdateAction is one action of a CREATE, CREATE UNIQUE, SET, REMOVE,
// DELETE, or FOREACH clause, flattened into the Query's ordered Updates
// list.
type UpdateAction interface {
	updateAction()
}

// CreateNodeAction creates one node. Bare records whether the source wrote
// `CREATE n` without parentheses around a lone node — same AQT otherwise,
// kept per the open question in §9(a) rather than "fixed".
type CreateNodeAction struct {
	Pos        Position
	Variable   string
	Labels     []string
	Properties Expression
	Bare       bool
}

func (*CreateNodeAction) updateAction() {}

// CreateRelationshipAction creates one relationship between two endpoints
// referenced by name (possibly a name introduced earlier in the same CREATE
// pattern).
type CreateRelationshipAction struct {
	Pos        Position
	Variable   string
	Type       string
	FromName   string
	ToName     string
	Direction  Direction
	Properties Expression
}

func (*CreateRelationshipAction) updateAction() {}

// DeleteEntityAction is `DETACH? DELETE expr`.
type DeleteEntityAction struct {
	Pos    Position
	Expr   Expression
	Detach bool
}

// DeletePropertyAction is `DELETE n.p`, accepted only under dialect v1_9
// (§4.5); v2_0 requires the equivalent REMOVE form.
type DeletePropertyAction struct {
	Pos    Position
	Target Expression
	Key    string
}

func (*DeleteEntityAction) updateAction()   {}
func (*DeletePropertyAction) updateAction() {}

// PropertySetAction is `SET n.p = expr`.
type PropertySetAction struct {
	Pos    Position
	Target Expression
	Key    string
	Value  Expression
}

// MapPropertySetAction is `SET n = {map}` (Merge=false) or `SET n += {map}`
// (Merge=true).
type MapPropertySetAction struct {
	Pos    Position
	Target Expression
	Value  Expression
	Merge  bool
}

func (*PropertySetAction) updateAction()    {}
func (*MapPropertySetAction) updateAction() {}

// LabelOp discriminates SET from REMOVE for a LabelAction.
type LabelOp int

const (
	LabelSet LabelOp = iota
	LabelRemove
)

// LabelAction is `SET n:Label...` or `REMOVE n:Label...`, from dialect
// v2_0 only.
type LabelAction struct {
	Pos    Position
	Target string
	Op     LabelOp
	Labels []string
}

func (*LabelAction) updateAction() {}

// Foreach is `FOREACH (x IN expr | body)`. The body separator is `|` in any
// dialect, and quietly also `:` outside v2_0 — an asymmetry preserved per
// §9(b) rather than rejected.
type Foreach struct {
	Pos      Position
	Variable string
	Iterable Expression
	Body     []UpdateAction
}

func (*Foreach) updateAction() {}

// UniqueEndpoint is one side of a CREATE UNIQUE link: either a name already
// bound earlier in the query (Bound=true) or an inline node pattern to
// create if no match exists.
type UniqueEndpoint struct {
	Name       string
	Labels     []string
	Properties Expression
	Bound      bool
}

// UniqueLink is one relationship of a CREATE UNIQUE pattern.
type UniqueLink struct {
	Pos           Position
	Left          UniqueEndpoint
	Right         UniqueEndpoint
	RelVariable   string
	Type          string
	Direction     Direction
	RelProperties Expression
}

func (*UniqueLink) updateAction() {}

// ----------------------------------------------------------------------------
// Hints
// ----------------------------------------------------------------------------

// Hint is a USING INDEX or USING SCAN clause attached to the nearest
// enclosing query segment.
type Hint interface {
	hint()
}

// SchemaIndexHint is `USING INDEX v:L(p)` (Kind/Value empty) or its seek
// variants that supply an index kind and/or probe value.
type SchemaIndexHint struct {
	Node     string
	Label    string
	Property string
	Kind     string
	Value    Expression
}

// NodeByLabelHint is `USING SCAN v:L`.
type NodeByLabelHint struct {
	Node  string
	Label string
}

func (*SchemaIndexHint) hint() {}
func (*NodeByLabelHint) hint() {}
