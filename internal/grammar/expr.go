package grammar

import "github.com/alecthomas/participle/v2/lexer"

// The precedence chain, lowest to highest: OR, XOR, AND, NOT, comparison
// (=, <>, <, <=, >, >=, =~, IS [NOT] NULL, IN), +/-, */%, ^, unary minus,
// postfix (.property, [index], :Label, ?, !). Each level's struct wraps
// the next, mirroring the grammar's own precedence climb instead of a
// hand-written Pratt parser.

type ExprG struct {
	Pos    lexer.Position
	Left   *XorExprG   `@@`
	Rights []*XorExprG `( "OR" @@ )*`
}

type XorExprG struct {
	Pos    lexer.Position
	Left   *AndExprG   `@@`
	Rights []*AndExprG `( "XOR" @@ )*`
}

type AndExprG struct {
	Pos    lexer.Position
	Left   *NotExprG   `@@`
	Rights []*NotExprG `( "AND" @@ )*`
}

type NotExprG struct {
	Pos  lexer.Position
	Not  bool             `@"NOT"?`
	Expr *ComparisonExprG `@@`
}

type ComparisonExprG struct {
	Pos   lexer.Position
	Left  *AddSubExprG       `@@`
	Tails []*ComparisonTailG `@@*`
}

// ComparisonTailG carries exactly one of: a binary comparison operator
// (Op/CmpRhs), a regex match (RegexRhs), an IN test (InRhs), or an IS
// [NOT] NULL probe (IsNotNull/IsNullBare).
type ComparisonTailG struct {
	Pos        lexer.Position
	Op         string      `(   @( NotEqual | LessEqual | GreaterEqual | Eq | Less | Greater )`
	CmpRhs     *AddSubExprG `    @@`
	RegexRhs   *AddSubExprG `  | RegexOp @@`
	InRhs      *AddSubExprG `  | "IN" @@`
	IsNotNull  bool        `  | "IS" ( @"NOT" "NULL"`
	IsNullBare bool        `          | @"NULL" ) )`
}

type AddSubExprG struct {
	Pos  lexer.Position
	Left *MultDivExprG `@@`
	Ops  []*AddSubOpG  `@@*`
}

type AddSubOpG struct {
	Pos   lexer.Position
	Op    string        `@( Plus | Minus )`
	Right *MultDivExprG `@@`
}

type MultDivExprG struct {
	Pos  lexer.Position
	Left *PowerExprG   `@@`
	Ops  []*MultDivOpG `@@*`
}

type MultDivOpG struct {
	Pos   lexer.Position
	Op    string      `@( Star | Slash | Percent )`
	Right *PowerExprG `@@`
}

// PowerExprG is right-associative: `2^3^2` is `2^(3^2)`.
type PowerExprG struct {
	Pos   lexer.Position
	Left  *UnaryExprG `@@`
	Right *PowerExprG `( Caret @@ )?`
}

type UnaryExprG struct {
	Pos  lexer.Position
	Neg  bool         `@Minus?`
	Expr *PostfixExprG `@@`
}

type PostfixExprG struct {
	Pos      lexer.Position
	Atom     *Atom              `@@`
	Suffixes []*PostfixSuffixG `@@*`
}

type PostfixSuffixG struct {
	Pos          lexer.Position
	Property     string          `(   Dot @Ident`
	Index        *IndexSuffixG   `  | @@`
	Labels       *NodeLabelsG    `  | @@`
	Nullable     bool            `  | @Question`
	NullablePred bool            `  | @Bang )`
}

type IndexSuffixG struct {
	Pos   lexer.Position
	Start *ExprG `LBracket @@?`
	Range bool   `@Range?`
	End   *ExprG `@@? RBracket`
}

// ----------------------------------------------------------------------------
// Atoms
// ----------------------------------------------------------------------------

// Atom is tried in the order below. Order matters for disambiguation:
// list/pattern comprehension and the reduce/extract/filter special forms
// must be tried before the generic FunctionCall and before a bracketed
// list literal, COUNT(*) needs its own rule, a pattern used as a
// predicate must be tried before a plain parenthesized expression, and
// FunctionCall uses a lookahead so it only fires on an actual call.
type Atom struct {
	Pos              lexer.Position
	ListComp         *ListComprehensionG  `  @@`
	ReduceCall       *ReduceCallG         `| @@`
	ExtractCall      *ExtractCallG        `| @@`
	Filter           *FilterPredicateG    `| @@`
	PatternPred      *PatternPredicateLit `| @@`
	ShortestPathExpr *ShortestPathLit     `| @@`
	Param            *ParamLitG           `| @@`
	CaseExpr         *CaseExpressionG     `| @@`
	CountStar        *CountStarG          `| @@`
	Parenthesized    *ExprG               `| LParen @@ RParen`
	FuncCall         *FunctionCallG       `| @@`
	Literal          *LiteralG            `| @@`
	Variable         string               `| @Ident`
}

type CountStarG struct {
	Pos    lexer.Position
	Marker bool `"COUNT" LParen @Star RParen`
}

type ListComprehensionG struct {
	Pos      lexer.Position
	Variable string `LBracket @Ident "IN"`
	Source   *ExprG `@@`
	Where    *ExprG `( "WHERE" @@ )?`
	Mapping  *ExprG `( Pipe @@ )? RBracket`
}

// FilterPredicateG is ALL/ANY/NONE/SINGLE/FILTER(x IN expr sep pred). The
// separator is normally "WHERE"; a bare `:` is the filter()-only v1_9
// spelling, gated in the builder.
type FilterPredicateG struct {
	Pos       lexer.Position
	Kind      string `@( "ALL" | "ANY" | "NONE" | "SINGLE" | "FILTER" ) LParen`
	Variable  string `@Ident "IN"`
	Source    *ExprG `@@`
	ColonSep  bool   `( @Colon | "WHERE" )`
	Predicate *ExprG `@@ RParen`
}

type ReduceCallG struct {
	Pos         lexer.Position
	Accumulator string `"REDUCE" LParen @Ident Eq`
	Init        *ExprG `@@ Comma`
	Variable    string `@Ident "IN"`
	Source      *ExprG `@@`
	Expr        *ExprG `Pipe @@ RParen`
}

type ExtractCallG struct {
	Pos      lexer.Position
	Variable string `"EXTRACT" LParen @Ident "IN"`
	Source   *ExprG `@@`
	Where    *ExprG `( "WHERE" @@ )?`
	Expr     *ExprG `Pipe @@ RParen`
}

// PatternPredicateLit is a bare pattern used where an expression is
// expected, e.g. `WHERE (a)-->(b)`. It must be tried before Parenthesized
// since both start with `(`; it only succeeds when a relationship chain
// actually follows, so a plain `(expr)` falls through cleanly.
type PatternPredicateLit struct {
	Pos   lexer.Position
	Node  *NodePatternG        `@@`
	Chain []*PatternElemChainG `@@+`
}

type FunctionCallG struct {
	Pos      lexer.Position
	Name     string   `@Ident (?= LParen )`
	Distinct bool     `LParen @"DISTINCT"?`
	Args     []*ExprG `( @@ ( Comma @@ )* )? RParen`
}

// ----------------------------------------------------------------------------
// CASE
// ----------------------------------------------------------------------------

// CaseExpressionG covers both the simple form (Input present) and the
// generic form (no Input, gated to v2_0 via features.GenericCase).
type CaseExpressionG struct {
	Pos   lexer.Position
	Input *ExprG       `"CASE" ( (?! "WHEN" ) @@ )?`
	Whens []*CaseWhenG `@@+`
	Else  *ExprG       `( "ELSE" @@ )?`
	End   bool         `@"END"`
}

type CaseWhenG struct {
	Pos  lexer.Position
	When *ExprG `"WHEN" @@`
	Then *ExprG `"THEN" @@`
}
