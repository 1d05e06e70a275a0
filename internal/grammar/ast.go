package grammar

import "github.com/alecthomas/participle/v2/lexer"

// This file is the surface grammar for the union of the v1_9 and v2_0
// Cypher-style syntax. It accepts a superset of either dialect on purpose:
// every construct that differs by version (optional propagation, schema
// DDL, CASE without an input expression, and so on) parses here
// unconditionally, and the feature table in the builder rejects whatever
// the requested dialect does not actually support. One grammar, one place
// that knows what each dialect means. The `|` and `|:` type separators are
// both accepted under every dialect; the builder does not check which one
// was written.

// Root is the top of the parse: an optional `cypher <version>` directive,
// then either a standalone schema command or a regular query, then an
// optional trailing semicolon.
type Root struct {
	Pos       lexer.Position
	Directive string         `( "cypher" @( Ident | Float | Int ) )?`
	Schema    *SchemaCommand `(   @@`
	Query     *RegularQuery  `  | @@ )`
	Semi      bool           `@Semicolon?`
}

// SchemaCommand is one of the three standalone DDL forms (§4.5, schema
// commands).
type SchemaCommand struct {
	Pos        lexer.Position
	CreateIdx  *CreateIndexCmd      `  @@`
	DropIdx    *DropIndexCmd        `| @@`
	Constraint *CreateConstraintCmd `| @@`
}

// Properties is deliberately able to come out empty: `CREATE INDEX ON
// :Label` with no parens at all, and `CREATE INDEX ON :Label()` with empty
// parens, must both reach buildSchema's arity check as a present-but-empty
// list rather than fail the grammar itself and fall through to Query.
type CreateIndexCmd struct {
	Pos        lexer.Position
	Label      string   `"CREATE" "INDEX" "ON" Colon @Ident`
	Properties []string `( LParen (@Ident (Comma @Ident)*)? RParen )?`
}

type DropIndexCmd struct {
	Pos        lexer.Position
	Label      string   `"DROP" "INDEX" "ON" Colon @Ident`
	Properties []string `( LParen (@Ident (Comma @Ident)*)? RParen )?`
}

type CreateConstraintCmd struct {
	Pos      lexer.Position
	Variable string `"CREATE" "CONSTRAINT" "ON" LParen @Ident`
	Label    string `Colon @Ident RParen`
	Assert   string `"ASSERT" @Ident`
	Property string `Dot @Ident "IS" "UNIQUE"`
}

// RegularQuery is a single query, plus any UNION-joined siblings.
type RegularQuery struct {
	Pos    lexer.Position
	First  *SingleQuery   `@@`
	Unions []*UnionClause `@@*`
}

type UnionClause struct {
	Pos   lexer.Position
	All   bool         `"UNION" @"ALL"?`
	Query *SingleQuery `@@`
}

// SingleQuery is a flat clause sequence. The builder, not the grammar,
// enforces canonical clause ordering and splits the sequence into a
// head/tail chain at each WITH (§4.5).
type SingleQuery struct {
	Pos     lexer.Position
	Clauses []*Clause `@@+`
}

// Clause is the tagged union of every clause kind. CreateUnique is tried
// before Create: both start with the "CREATE" keyword, and only the
// former continues with "UNIQUE".
type Clause struct {
	Pos          lexer.Position
	Start        *StartClause        `  @@`
	Using        *UsingClause        `| @@`
	Match        *MatchClause        `| @@`
	Where        *WhereClauseG       `| @@`
	CreateUnique *CreateUniqueClause `| @@`
	Create       *CreateClause       `| @@`
	Set          *SetClause          `| @@`
	Remove       *RemoveClause       `| @@`
	Delete       *DeleteClause       `| @@`
	Foreach      *ForeachClause      `| @@`
	With         *WithClauseG        `| @@`
	Return       *ReturnClauseG      `| @@`
}

// UpdatingClauseG is the subset of Clause legal inside a FOREACH body.
type UpdatingClauseG struct {
	Pos          lexer.Position
	CreateUnique *CreateUniqueClause `  @@`
	Create       *CreateClause       `| @@`
	Set          *SetClause          `| @@`
	Remove       *RemoveClause       `| @@`
	Delete       *DeleteClause       `| @@`
	Foreach      *ForeachClause      `| @@`
}

// ----------------------------------------------------------------------------
// START
// ----------------------------------------------------------------------------

type StartClause struct {
	Pos   lexer.Position
	Items []*StartItemG `"START" @@ (Comma @@)*`
}

type StartItemG struct {
	Pos     lexer.Position
	Name    string         `@Ident Eq`
	Node    *NodeStartSpec `(   "NODE" @@`
	Rel     *RelStartSpec  `  | ( "RELATIONSHIP" | "REL" ) @@`
	Create  *CreatePropsSpec `  | "CREATE" LParen @@ RParen`
	Unique  *Pattern       `  | "CREATE" "UNIQUE" @@ )`
}

type NodeStartSpec struct {
	Pos   lexer.Position
	ById  *ByIdSpec  `(   LParen @@ RParen`
	Index *IndexBody `  | Colon @@ )`
}

type RelStartSpec struct {
	Pos   lexer.Position
	ById  *ByIdSpec  `(   LParen @@ RParen`
	Index *IndexBody `  | Colon @@ )`
}

type ByIdSpec struct {
	Pos   lexer.Position
	Star  bool        `(   @Star`
	Param *ParamLitG  `  | @@`
	Ids   []int64     `  | @Int (Comma @Int)* )`
}

// IndexBody tries the "key = value" probe form before falling back to a
// bare query expression; on a plain identifier with no following `=` the
// first alternative fails cleanly and backtracks.
type IndexBody struct {
	Pos   lexer.Position
	Index string `@Ident LParen`
	Key   *ExprG `(   @@ Eq`
	Value *ExprG `    @@`
	Query *ExprG `  | @@ ) RParen`
}

// CreatePropsSpec covers the legacy START items `CREATE(from, to, "TYPE",
// {props})` and `CREATE({props})`; the four-part relationship form is
// tried first so a lone map literal falls through to SoleProps.
type CreatePropsSpec struct {
	Pos       lexer.Position
	From      string `(   @Ident Comma`
	To        string `    @Ident Comma`
	Type      string `    @String Comma`
	Props     *ExprG `    @@`
	SoleProps *ExprG `  | @@ )`
}

// ----------------------------------------------------------------------------
// USING INDEX / USING SCAN
// ----------------------------------------------------------------------------

type UsingClause struct {
	Pos   lexer.Position
	Index *UsingIndexHint `"USING" (   @@`
	Scan  *UsingScanHint  `         | @@ )`
}

type UsingIndexHint struct {
	Pos      lexer.Position
	Node     string `"INDEX" @Ident Colon`
	Label    string `@Ident LParen`
	Property string `@Ident RParen`
}

type UsingScanHint struct {
	Pos   lexer.Position
	Node  string `"SCAN" @Ident Colon`
	Label string `@Ident`
}

// ----------------------------------------------------------------------------
// MATCH / WHERE / WITH / RETURN
// ----------------------------------------------------------------------------

type MatchClause struct {
	Pos      lexer.Position
	Optional bool     `@"OPTIONAL"?`
	Pattern  *Pattern `"MATCH" @@`
}

type WhereClauseG struct {
	Pos  lexer.Position
	Expr *ExprG `"WHERE" @@`
}

type WithClauseG struct {
	Pos  lexer.Position
	Body *ProjectionBody `"WITH" @@`
}

type ReturnClauseG struct {
	Pos  lexer.Position
	Body *ProjectionBody `"RETURN" @@`
}

type ProjectionBody struct {
	Pos      lexer.Position
	Distinct bool                `@"DISTINCT"?`
	Star     bool                `(   @Star`
	Items    []*ProjectionItemG  `  | @@ (Comma @@)* )`
	Order    *OrderByG           `@@?`
	Skip     *SkipG              `@@?`
	Limit    *LimitG             `@@?`
}

type ProjectionItemG struct {
	Pos   lexer.Position
	Expr  *ExprG `@@`
	Alias string `( "AS" @Ident )?`
}

type OrderByG struct {
	Pos   lexer.Position
	Items []*OrderItemG `"ORDER" "BY" @@ (Comma @@)*`
}

type OrderItemG struct {
	Pos  lexer.Position
	Expr *ExprG `@@`
	Desc bool   `( @( "DESC" | "DESCENDING" ) | "ASC" | "ASCENDING" )?`
}

type SkipG struct {
	Pos   lexer.Position
	Value *IntOrParamG `"SKIP" @@`
}

type LimitG struct {
	Pos   lexer.Position
	Value *IntOrParamG `"LIMIT" @@`
}

type IntOrParamG struct {
	Pos   lexer.Position
	Int   *int64     `(   @Int`
	Param *ParamLitG `  | @@ )`
}

// ----------------------------------------------------------------------------
// CREATE / CREATE UNIQUE / SET / REMOVE / DELETE / FOREACH
// ----------------------------------------------------------------------------

type CreateClause struct {
	Pos     lexer.Position
	Pattern *Pattern `"CREATE" @@`
}

type CreateUniqueClause struct {
	Pos     lexer.Position
	Pattern *Pattern `"CREATE" "UNIQUE" @@`
}

type SetClause struct {
	Pos   lexer.Position
	Items []*SetItemG `"SET" @@ (Comma @@)*`
}

// SetItemG disambiguates its three shapes structurally rather than by
// keyword lookahead: a property path needs at least one `.field` before
// the `=`, a label set needs a `:` right after the variable, and a bare
// variable assignment needs neither.
type SetItemG struct {
	Pos       lexer.Position
	Property  *PropertyPathG `(   @@ Eq`
	PropExpr  *ExprG         `    @@`
	LabelVar  string         `  | ( @Ident`
	Labels    *NodeLabelsG   `      @@ )`
	Variable  string         `  | ( @Ident`
	AddAssign bool           `      ( @AddAssign`
	Assign    bool           `      | @Eq )`
	VarExpr   *ExprG         `      @@ ) )`
}

type PropertyPathG struct {
	Pos   lexer.Position
	Base  string   `@Ident`
	Props []string `( Dot @Ident )+`
}

type RemoveClause struct {
	Pos   lexer.Position
	Items []*RemoveItemG `"REMOVE" @@ (Comma @@)*`
}

type RemoveItemG struct {
	Pos      lexer.Position
	Variable string         `@Ident`
	Labels   *NodeLabelsG   `(   @@`
	Property *PropertyPathDotsG `  | @@ )`
}

// PropertyPathDotsG is the suffix of a property path once its leading
// variable has already been consumed by RemoveItemG.
type PropertyPathDotsG struct {
	Pos   lexer.Position
	Props []string `( Dot @Ident )+`
}

type DeleteClause struct {
	Pos    lexer.Position
	Detach bool     `@"DETACH"?`
	Exprs  []*ExprG `"DELETE" @@ (Comma @@)*`
}

type ForeachClause struct {
	Pos      lexer.Position
	Variable string             `"FOREACH" LParen @Ident "IN"`
	Iterable *ExprG             `@@`
	Colon    bool               `( @Colon | Pipe )`
	Body     []*UpdatingClauseG `@@+ RParen`
}

// ----------------------------------------------------------------------------
// Patterns (§4.4)
// ----------------------------------------------------------------------------

type Pattern struct {
	Pos   lexer.Position
	Parts []*PatternPartG `@@ (Comma @@)*`
}

type PatternPartG struct {
	Pos     lexer.Position
	Var     string          `( @Ident Eq )?`
	Element *PatternElementG `@@`
}

type PatternElementG struct {
	Pos          lexer.Position
	ShortestPath *ShortestPathLit `(   @@`
	Plain        *PlainElementG   `  | @@ )`
}

type ShortestPathLit struct {
	Pos   lexer.Position
	Kind  string              `@( "shortestPath" | "allShortestPaths" ) LParen`
	Node  *NodePatternG       `@@`
	Chain []*PatternElemChainG `@@+ RParen`
}

type PlainElementG struct {
	Pos   lexer.Position
	Node  *NodePatternG        `@@`
	Chain []*PatternElemChainG `@@*`
}

// NodePatternG allows a bare identifier in addition to the parenthesized
// form: classic Cypher permits `match n-->m return m` with no parens at
// all (gated in the builder via features.BareNodeIdentifiers, which both
// dialects currently enable).
type NodePatternG struct {
	Pos        lexer.Position
	Variable   string        `(   LParen @Ident?`
	Labels     *NodeLabelsG  `    @@?`
	Properties *PropertiesG  `    @@? RParen`
	Bare       string        `  | @Ident )`
}

type NodeLabelsG struct {
	Pos    lexer.Position
	Labels []string `( Colon @Ident )+`
}

type PropertiesG struct {
	Pos   lexer.Position
	Map   *MapLiteralG `(   @@`
	Param *ParamLitG   `  | @@ )`
}

type PatternElemChainG struct {
	Pos  lexer.Position
	Rel  *RelationshipPatternG `@@`
	Node *NodePatternG         `@@`
}

type RelationshipPatternG struct {
	Pos        lexer.Position
	LeftArrow  bool                  `@Less? Minus`
	Detail     *RelationshipDetailG  `( LBracket @@ RBracket )?`
	RightArrow bool                  `Minus @Greater?`
}

type RelationshipDetailG struct {
	Pos        lexer.Position
	Variable   string               `@Ident?`
	Optional   bool                 `@Question?`
	Types      *RelationshipTypesG  `@@?`
	Range      *RangeLiteralG       `@@?`
	Properties *PropertiesG         `@@?`
}

type RelationshipTypesG struct {
	Pos   lexer.Position
	Types []string `Colon @Ident ( ( Pipe | PipeColon ) @Ident )*`
}

type RangeLiteralG struct {
	Pos   lexer.Position
	Star  bool   `@Star`
	Min   *int64 `@Int?`
	Range bool   `@Range?`
	Max   *int64 `@Int?`
}

// ----------------------------------------------------------------------------
// Literals, parameters
// ----------------------------------------------------------------------------

type ParamLitG struct {
	Pos  lexer.Position
	Name string `LBrace @( Ident | Int | EscapedIdent ) RBrace`
}

type MapLiteralG struct {
	Pos   lexer.Position
	Pairs []*MapPairG `LBrace ( @@ (Comma @@)* )? RBrace`
}

type MapPairG struct {
	Pos   lexer.Position
	Key   string `@Ident Colon`
	Value *ExprG `@@`
}

type ListLiteralG struct {
	Pos   lexer.Position
	Items []*ExprG `LBracket ( @@ (Comma @@)* )? RBracket`
}

type LiteralG struct {
	Pos   lexer.Position
	Null  bool     `(   @"NULL"`
	True  bool     `  | @"TRUE"`
	False bool     `  | @"FALSE"`
	Float *float64 `  | @Float`
	Int   *int64   `  | @Int`
	Str   *string  `  | @String`
	List  *ListLiteralG `  | @@`
	Map   *MapLiteralG  `  | @@ )`
}
