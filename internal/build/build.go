// Package build turns the surface parse tree from internal/grammar into the
// Abstract Query Tree defined in aqt. This is where every dialect gate
// lives: the grammar accepts the union of v1_9 and v2_0 syntax, and this
// package is the single place that decides what the requested dialect
// actually allows (§9 design note).
package build

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/dialect"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/names"
	"github.com/oxidegraph/cyql/internal/synerr"
)

type builder struct {
	v    dialect.Version
	feat dialect.Features
}

// Build lowers a parsed Root into the AQT under the given dialect. The
// Root's own `cypher <version>` directive, if any, has already been
// reconciled with v by the caller (the public Parse entry point).
func Build(root *grammar.Root, v dialect.Version) (aqt.AQT, error) {
	b := &builder{v: v, feat: dialect.FeaturesFor(v)}

	if root.Schema != nil {
		return b.buildSchema(root.Schema)
	}
	if root.Query == nil {
		return nil, b.errAt(root.Pos, synerr.UnexpectedToken, "empty query").WithExpected("a schema command or a query")
	}
	return b.buildRegularQuery(root.Query)
}

func pos(p lexer.Position) aqt.Position {
	return aqt.Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func unpos(p aqt.Position) lexer.Position {
	return lexer.Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (b *builder) errAt(p lexer.Position, kind synerr.Kind, format string, args ...any) *synerr.Error {
	return synerr.New(kind, b.v, p.Offset, p.Line, p.Column, fmt.Sprintf(format, args...))
}

func (b *builder) dialectErr(p lexer.Position, construct string) *synerr.Error {
	return b.errAt(p, synerr.DialectFeature, "%s is not available under dialect %s", construct, b.v.Resolve())
}

// autoName returns name unchanged if non-empty, otherwise mints the I2
// sentinel anchored at p's byte offset.
func autoName(name string, p lexer.Position) string {
	if name != "" {
		return name
	}
	return names.UnnamedPrefix + strconv.Itoa(p.Offset)
}

func unquoteString(s string) string {
	if len(s) < 2 {
		return s
	}
	quote := s[0]
	inner := s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case quote:
				sb.WriteByte(quote)
			default:
				sb.WriteByte(inner[i])
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func unescapeBacktick(s string) string {
	if len(s) >= 2 && s[0] == '`' {
		return s[1 : len(s)-1]
	}
	return s
}

func toInt(v *int64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func (b *builder) buildSchema(s *grammar.SchemaCommand) (aqt.AQT, error) {
	if !b.feat.SchemaDDL {
		return nil, b.dialectErr(s.Pos, "schema commands")
	}
	switch {
	case s.CreateIdx != nil:
		if len(s.CreateIdx.Properties) != 1 {
			return nil, b.errAt(s.CreateIdx.Pos, synerr.SemanticArity, "CREATE INDEX accepts exactly one property")
		}
		return &aqt.CreateIndex{Pos: pos(s.CreateIdx.Pos), Label: s.CreateIdx.Label, Properties: s.CreateIdx.Properties}, nil
	case s.DropIdx != nil:
		if len(s.DropIdx.Properties) != 1 {
			return nil, b.errAt(s.DropIdx.Pos, synerr.SemanticArity, "DROP INDEX accepts exactly one property")
		}
		return &aqt.DropIndex{Pos: pos(s.DropIdx.Pos), Label: s.DropIdx.Label, Properties: s.DropIdx.Properties}, nil
	case s.Constraint != nil:
		c := s.Constraint
		if c.Variable != c.Assert {
			return nil, b.errAt(c.Pos, synerr.UnexpectedToken, "constraint ON variable must match ASSERT variable").
				WithExpected(c.Variable).WithFound(c.Assert)
		}
		return &aqt.CreateUniqueConstraint{Pos: pos(c.Pos), Variable: c.Variable, Label: c.Label, Property: c.Property}, nil
	}
	return nil, b.errAt(s.Pos, synerr.Internal, "schema command with no alternative set")
}
