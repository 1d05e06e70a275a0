package grammar

import "github.com/alecthomas/participle/v2"

// Parser is the participle parser for the union grammar. It is built once
// at package init and is safe to share across goroutines, since
// participle's generated parser holds no mutable state between calls.
var Parser = participle.MustBuild[Root](
	participle.Lexer(cypherLexer),
	participle.Elide("Whitespace", "LineComment"),
	participle.UseLookahead(10),
	participle.CaseInsensitive("Ident"),
)

// Parse parses a surface query string into the union grammar. Dialect
// gating happens afterward, in the builder — this function never fails
// because a construct belongs to the "wrong" dialect.
func Parse(query string) (*Root, error) {
	return Parser.ParseString("", query)
}

// ParseBytes is Parse for a []byte source.
func ParseBytes(query []byte) (*Root, error) {
	return Parser.ParseBytes("", query)
}

// IsFloat reports whether this literal is a floating-point number.
func (l *LiteralG) IsFloat() bool { return l != nil && l.Float != nil }

// IsInt reports whether this literal is an integer.
func (l *LiteralG) IsInt() bool { return l != nil && l.Int != nil }

// IsString reports whether this literal is a string.
func (l *LiteralG) IsString() bool { return l != nil && l.Str != nil }

// IsBool reports whether this literal is `true` or `false`.
func (l *LiteralG) IsBool() bool { return l != nil && (l.True || l.False) }

// IsNull reports whether this literal is `NULL`.
func (l *LiteralG) IsNull() bool { return l != nil && l.Null }

// HasOR reports whether this expression uses OR at its top level.
func (e *ExprG) HasOR() bool { return e != nil && len(e.Rights) > 0 }
