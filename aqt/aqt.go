// Package aqt defines the Abstract Query Tree: the immutable, version-aware
// hand-off contract the GQL front end produces for a downstream
// planner/executor. Every type in this package is a plain value constructed
// once during parsing; nothing here mutates after Parse returns.
package aqt

// Position is a byte offset into the source text, plus the line/column it
// was derived from on demand. It is carried on every AQT node that can be
// the anchor of an anonymous name or a diagnostic.
type Position struct {
	Offset int
	Line   int
	Column int
}

// AQT is the sealed set of values Parse can return: a Query, a Union, or one
// of the three standalone schema commands.
type AQT interface {
	aqtNode()
}

// Query is the root of a (possibly tail-chained) single query. Exactly one
// of Return.Kind's three states holds: ReturnItems, ReturnAllIdentifiers, or
// ReturnEmpty (terminal update queries with no projection).
type Query struct {
	Pos        Position
	Start      []StartItem
	Matches    []PatternRecord
	NamedPaths map[string]*NamedPath
	Where      Expression
	Updates    []UpdateAction
	Hints      []Hint
	Aggregation *Aggregation
	OrderBy    []*SortItem
	Skip       *IntOrParam
	Limit      *IntOrParam
	Return     ReturnSpec
	Tail       *Query
}

func (*Query) aqtNode() {}

// Union is a left-associative chain of two or more queries joined by UNION
// or UNION ALL. Distinct is a property of the whole chain (I4): true for a
// bare UNION, false the instant any branch used UNION ALL.
type Union struct {
	Pos      Position
	Queries  []*Query
	Distinct bool
}

func (*Union) aqtNode() {}

// ReturnKind discriminates the three legal shapes of a return/with spec.
type ReturnKind int

const (
	// ReturnItems is an explicit, possibly-aliased projection list.
	ReturnItems ReturnKind = iota
	// ReturnAllIdentifiers is RETURN * / WITH *.
	ReturnAllIdentifiers
	// ReturnEmpty marks a terminal update query with no RETURN at all.
	ReturnEmpty
)

// ReturnSpec is the projection attached to RETURN or WITH.
type ReturnSpec struct {
	Kind  ReturnKind
	Items []*ReturnItem
}

// ReturnItem is a single projected expression, optionally aliased.
type ReturnItem struct {
	Pos   Position
	Expr  Expression
	Alias string
}

// Aggregation marks that a RETURN/WITH body groups its output. Keys holds
// the non-aggregate projection expressions that become the implicit GROUP
// BY; a DISTINCT projection with no aggregate function present still
// produces an Aggregation value (Keys covering every item) — a grouping-only
// aggregation with nothing to aggregate.
type Aggregation struct {
	Keys []Expression
}

// SortItem is one ORDER BY term.
type SortItem struct {
	Expr       Expression
	Descending bool
}

// IntOrParam is the value of a SKIP or LIMIT clause: a literal integer or a
// parameter name, never both.
type IntOrParam struct {
	Int   *int64
	Param string
}

// NamedPath records a path pattern bound to a name (`p = (a)-[r]->(b)`), so
// downstream consumers can answer nodes(p)/rels(p)/length(p) without
// re-deriving path shape from the flattened Matches list. Direction here is
// exactly as written in the source — named paths are never normalized (see
// §4.4 direction-normalization carve-out).
type NamedPath struct {
	Name  string
	Nodes []NodeRef
	Rels  []PathRelSegment
}

// PathRelSegment is one relationship hop inside a NamedPath.
type PathRelSegment struct {
	Name      string
	Types     []string
	Direction Direction
	Min, Max  *int
	Optional  bool
}
