package aqt

// Direction is the relationship direction of a pattern edge.
type Direction int

const (
	// DirOut is a(-[r]->)b, or any relationship pattern normalized into OUT
	// form outside of a named path (P5).
	DirOut Direction = iota
	// DirIn is a(<-[r]-)b. MATCH pattern records outside a named path never
	// carry it — they are normalized to DirOut by swapping endpoints — while
	// named paths and CREATE / CREATE UNIQUE actions keep it as written.
	DirIn
	// DirBoth is a(-[r]-)b with no arrowhead.
	DirBoth
)

// NodeRef is a reference to a pattern-bound node: SingleNode, or — from
// dialect v2_0 only, by optional propagation (I5) — SingleOptionalNode.
type NodeRef interface {
	nodeRef()
}

// SingleNode is an ordinarily-bound node pattern element. It doubles as a
// standalone PatternRecord when a MATCH pattern is just a bare node with no
// relationship chain.
type SingleNode struct {
	Name   string
	Labels []string
}

func (*SingleNode) nodeRef()       {}
func (*SingleNode) patternRecord() {}

// SingleOptionalNode is a node reached only through an optional relationship.
// Produced exclusively under dialect v2_0 (§4.4); pre-2.0 the same node stays
// a SingleNode and optionality lives solely on the relationship record.
type SingleOptionalNode struct {
	Name   string
	Labels []string
}

func (*SingleOptionalNode) nodeRef() {}

// PatternRecord is one normalized relation produced by pattern desugaring:
// RelatedTo, VarLengthRelatedTo, ShortestPath, or a bare SingleNode.
type PatternRecord interface {
	patternRecord()
}

// RelatedTo is a fixed-length relationship between two node endpoints.
// Outside of a named path its Direction is never DirIn (P5): `b<-[r]-a`
// normalizes to RelatedTo(a, b, r, ..., DirOut).
type RelatedTo struct {
	Pos       Position
	From      NodeRef
	To        NodeRef
	RelName   string
	Types     []string
	Direction Direction
	Optional  bool
}

func (*RelatedTo) patternRecord() {}

// VarLengthRelatedTo is a `*min..max` relationship. RelBinding is empty when
// the relationship chain was not given a variable.
type VarLengthRelatedTo struct {
	Pos        Position
	PathName   string
	From       NodeRef
	To         NodeRef
	Min, Max   *int
	Types      []string
	Direction  Direction
	RelBinding string
	Optional   bool
}

func (*VarLengthRelatedTo) patternRecord() {}

// ShortestPath is shortestPath(...) (Single=true) or allShortestPaths(...)
// (Single=false).
type ShortestPath struct {
	Pos        Position
	Name       string
	From       NodeRef
	To         NodeRef
	Types      []string
	Direction  Direction
	Max        *int
	Optional   bool
	Single     bool
	RelBinding string
}

func (*ShortestPath) patternRecord() {}
