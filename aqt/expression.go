package aqt

import "strings"

// Expression is the closed set of value-producing AQT nodes. A concrete
// type switch over Expression is exhaustive and stable across dialects;
// dialect differences are in which constructors the builder reaches for
// (e.g. boolean literal lowering), never in the set of types itself.
type Expression interface {
	expression()
}

// ----------------------------------------------------------------------------
// Literals
// ----------------------------------------------------------------------------

type IntLiteral struct{ Value int64 }
type FloatLiteral struct{ Value float64 }
type StringLiteral struct{ Value string }
type NullLiteral struct{}

// BoolLiteral is the pre-2.0 lowering of `true`/`false`: a plain boolean
// value, not a predicate term.
type BoolLiteral struct{ Value bool }

// True is the >=2.0 lowering of the `true` token. `false` lowers to
// Not{Expr: &True{}} — see the dialect note on boolean literals in §4.3.
type True struct{}

type ListLiteral struct{ Items []Expression }

type MapEntry struct {
	Key   string
	Value Expression
}
type MapLiteral struct{ Entries []MapEntry }

func (*IntLiteral) expression()    {}
func (*FloatLiteral) expression()  {}
func (*StringLiteral) expression() {}
func (*NullLiteral) expression()   {}
func (*BoolLiteral) expression()   {}
func (*True) expression()          {}
func (*ListLiteral) expression()   {}
func (*MapLiteral) expression()    {}

// ----------------------------------------------------------------------------
// References
// ----------------------------------------------------------------------------

type Identifier struct{ Name string }
type Parameter struct{ Name string }

// Property is `expr.key`.
type Property struct {
	Expr Expression
	Key  string
}

// Nullable is the pre-2.0 lowering of `a.p?` in a value position.
type Nullable struct{ Expr Expression }

// NullablePredicate is the pre-2.0 lowering of `a.p!` in a predicate
// position: the inner expression wrapped with a default used when the
// property is absent (see the operator-lowering design note in §9).
type NullablePredicate struct {
	Inner   Expression
	Default bool
}

func (*Identifier) expression()        {}
func (*Parameter) expression()         {}
func (*Property) expression()          {}
func (*Nullable) expression()          {}
func (*NullablePredicate) expression() {}

// ----------------------------------------------------------------------------
// Arithmetic
// ----------------------------------------------------------------------------

type Add struct{ Left, Right Expression }
type Sub struct{ Left, Right Expression }
type Mul struct{ Left, Right Expression }
type Div struct{ Left, Right Expression }
type Mod struct{ Left, Right Expression }
type Pow struct{ Left, Right Expression }
type Neg struct{ Expr Expression }

func (*Add) expression() {}
func (*Sub) expression() {}
func (*Mul) expression() {}
func (*Div) expression() {}
func (*Mod) expression() {}
func (*Pow) expression() {}
func (*Neg) expression() {}

// ----------------------------------------------------------------------------
// Comparison, regex, boolean
// ----------------------------------------------------------------------------

type Eq struct{ Left, Right Expression }
type Ne struct{ Left, Right Expression }
type Lt struct{ Left, Right Expression }
type Le struct{ Left, Right Expression }
type Gt struct{ Left, Right Expression }
type Ge struct{ Left, Right Expression }

func (*Eq) expression() {}
func (*Ne) expression() {}
func (*Lt) expression() {}
func (*Le) expression() {}
func (*Gt) expression() {}
func (*Ge) expression() {}

// RegularExpression is `expr =~ dynamicPattern` where the pattern is not a
// string literal.
type RegularExpression struct{ Left, Pattern Expression }

// LiteralRegularExpression is `expr =~ "pattern"`, lowered specially because
// the pattern can be precompiled.
type LiteralRegularExpression struct {
	Left    Expression
	Pattern string
}

func (*RegularExpression) expression()        {}
func (*LiteralRegularExpression) expression() {}

type And struct{ Left, Right Expression }
type Or struct{ Left, Right Expression }
type Xor struct{ Left, Right Expression }
type Not struct{ Expr Expression }

func (*And) expression() {}
func (*Or) expression()  {}
func (*Xor) expression() {}
func (*Not) expression() {}

// ----------------------------------------------------------------------------
// Collections, predicates, functions
// ----------------------------------------------------------------------------

// FunctionCall is any named function or aggregate invocation, including
// `count(*)` (Star=true, Args empty).
type FunctionCall struct {
	Name     string
	Args     []Expression
	Distinct bool
	Star     bool
}

func (*FunctionCall) expression() {}

// aggregateNames is the closed set of functions that make a RETURN/WITH
// item an aggregate for implicit-grouping detection.
var aggregateNames = map[string]bool{
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
	"collect": true, "stdev": true, "stdevp": true,
	"percentilecont": true, "percentiledisc": true,
}

// IsAggregate reports whether this call is one of the aggregate functions
// that trigger implicit grouping in a RETURN/WITH body.
func (f *FunctionCall) IsAggregate() bool {
	return f != nil && aggregateNames[strings.ToLower(f.Name)]
}

// AnyInCollection, AllInCollection, NoneInCollection, SingleInCollection are
// the `all|any|none|single(x IN expr WHERE pred)` predicate forms. AnyIn is
// also how a bare `expr IN collectionLiteral` desugars (§4.3), with
// Variable fixed to the synthetic name InnerVariableName.
type AnyInCollection struct {
	Collection Expression
	Variable   string
	Predicate  Expression
}
type AllInCollection struct {
	Collection Expression
	Variable   string
	Predicate  Expression
}
type NoneInCollection struct {
	Collection Expression
	Variable   string
	Predicate  Expression
}
type SingleInCollection struct {
	Collection Expression
	Variable   string
	Predicate  Expression
}

func (*AnyInCollection) expression()    {}
func (*AllInCollection) expression()    {}
func (*NoneInCollection) expression()   {}
func (*SingleInCollection) expression() {}

// FilterFunction is `filter(x IN c WHERE p)`.
type FilterFunction struct {
	Collection Expression
	Variable   string
	Predicate  Expression
}

// ExtractFunction is `extract(x IN c | e)`, or the desugaring of
// `[x IN c WHERE p | e]` into ExtractFunction{Collection: FilterFunction{...}}.
type ExtractFunction struct {
	Collection Expression
	Variable   string
	Expr       Expression
}

// ReduceFunction is `reduce(acc = init, x IN c | expr)`.
type ReduceFunction struct {
	Collection  Expression
	Variable    string
	Expr        Expression
	Accumulator string
	Init        Expression
}

func (*FilterFunction) expression()  {}
func (*ExtractFunction) expression() {}
func (*ReduceFunction) expression()  {}

// HasLabel is `expr:Label`.
type HasLabel struct {
	Expr  Expression
	Label string
}

// IsNull is `expr IS NULL` (Negated=false) or `expr IS NOT NULL`
// (Negated=true).
type IsNull struct {
	Expr     Expression
	Negated  bool
}

func (*HasLabel) expression() {}
func (*IsNull) expression()   {}

// PatternPredicate is a bare pattern used as a predicate, from dialect
// v2_0. Pre-2.0 the same source form lowers to NonEmpty{Path: PathExpression}.
type PatternPredicate struct{ Patterns []PatternRecord }

// PathExpression wraps a pattern used as a value (e.g. inside NonEmpty, or
// as the argument to nodes()/rels()/length() applied to an inline pattern).
type PathExpression struct{ Patterns []PatternRecord }

// NonEmpty is the pre-2.0 lowering of a pattern-as-predicate.
type NonEmpty struct{ Path *PathExpression }

func (*PatternPredicate) expression() {}
func (*PathExpression) expression()   {}
func (*NonEmpty) expression()         {}

// CaseAlternative is one WHEN/THEN arm of a CASE expression.
type CaseAlternative struct {
	When Expression
	Then Expression
}

// SimpleCase is `CASE expr WHEN v THEN r ... [ELSE d] END`. Else is nil when
// absent (semantic null).
type SimpleCase struct {
	Input Expression
	Whens []CaseAlternative
	Else  Expression
}

// GenericCase is `CASE WHEN pred THEN r ... [ELSE d] END`.
type GenericCase struct {
	Whens []CaseAlternative
	Else  Expression
}

func (*SimpleCase) expression()  {}
func (*GenericCase) expression() {}

// ShortestPathExpression wraps a shortestPath()/allShortestPaths() call used
// as a value rather than as a MATCH pattern element.
type ShortestPathExpression struct{ Path *ShortestPath }

func (*ShortestPathExpression) expression() {}

// Index is `expr[position]`, the highest-precedence postfix form (§4.3).
type Index struct {
	Collection Expression
	Position   Expression
}

// Slice is `expr[start?..end?]`. Start and End are nil for an open bound.
type Slice struct {
	Collection  Expression
	Start, End  Expression
}

func (*Index) expression() {}
func (*Slice) expression() {}
