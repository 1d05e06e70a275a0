package build

import (
	"strings"

	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/names"
	"github.com/oxidegraph/cyql/internal/synerr"
)

// buildExpr walks the grammar's precedence chain top-down, mirroring its
// own climb from OR down to postfix instead of a hand-written Pratt parser.

func (b *builder) buildExpr(e *grammar.ExprG) (aqt.Expression, error) {
	left, err := b.buildXor(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rights {
		right, err := b.buildXor(r)
		if err != nil {
			return nil, err
		}
		left = &aqt.Or{Left: left, Right: right}
	}
	return left, nil
}

func (b *builder) buildXor(e *grammar.XorExprG) (aqt.Expression, error) {
	left, err := b.buildAnd(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rights {
		right, err := b.buildAnd(r)
		if err != nil {
			return nil, err
		}
		left = &aqt.Xor{Left: left, Right: right}
	}
	return left, nil
}

func (b *builder) buildAnd(e *grammar.AndExprG) (aqt.Expression, error) {
	left, err := b.buildNot(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rights {
		right, err := b.buildNot(r)
		if err != nil {
			return nil, err
		}
		left = &aqt.And{Left: left, Right: right}
	}
	return left, nil
}

func (b *builder) buildNot(e *grammar.NotExprG) (aqt.Expression, error) {
	expr, err := b.buildComparison(e.Expr)
	if err != nil {
		return nil, err
	}
	if e.Not {
		return &aqt.Not{Expr: expr}, nil
	}
	return expr, nil
}

func (b *builder) buildComparison(e *grammar.ComparisonExprG) (aqt.Expression, error) {
	left, err := b.buildAddSub(e.Left)
	if err != nil {
		return nil, err
	}
	for _, tail := range e.Tails {
		switch {
		case tail.CmpRhs != nil:
			right, err := b.buildAddSub(tail.CmpRhs)
			if err != nil {
				return nil, err
			}
			left, err = cmpExpr(tail.Op, left, right)
			if err != nil {
				return nil, err
			}
		case tail.RegexRhs != nil:
			right, err := b.buildAddSub(tail.RegexRhs)
			if err != nil {
				return nil, err
			}
			if lit, ok := right.(*aqt.StringLiteral); ok {
				left = &aqt.LiteralRegularExpression{Left: left, Pattern: lit.Value}
			} else {
				left = &aqt.RegularExpression{Left: left, Pattern: right}
			}
		case tail.InRhs != nil:
			right, err := b.buildAddSub(tail.InRhs)
			if err != nil {
				return nil, err
			}
			left = &aqt.AnyInCollection{
				Collection: right,
				Variable:   names.InnerVariableName,
				Predicate:  &aqt.Eq{Left: left, Right: &aqt.Identifier{Name: names.InnerVariableName}},
			}
		case tail.IsNotNull:
			left = &aqt.IsNull{Expr: left, Negated: true}
		case tail.IsNullBare:
			left = &aqt.IsNull{Expr: left, Negated: false}
		}
	}
	return left, nil
}

func cmpExpr(op string, left, right aqt.Expression) (aqt.Expression, error) {
	switch op {
	case "=":
		return &aqt.Eq{Left: left, Right: right}, nil
	case "<>":
		return &aqt.Ne{Left: left, Right: right}, nil
	case "<":
		return &aqt.Lt{Left: left, Right: right}, nil
	case "<=":
		return &aqt.Le{Left: left, Right: right}, nil
	case ">":
		return &aqt.Gt{Left: left, Right: right}, nil
	case ">=":
		return &aqt.Ge{Left: left, Right: right}, nil
	}
	return nil, synerr.New(synerr.Internal, 0, 0, 0, 0, "unknown comparison operator "+op)
}

func (b *builder) buildAddSub(e *grammar.AddSubExprG) (aqt.Expression, error) {
	left, err := b.buildMultDiv(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := b.buildMultDiv(op.Right)
		if err != nil {
			return nil, err
		}
		if op.Op == "+" {
			left = &aqt.Add{Left: left, Right: right}
		} else {
			left = &aqt.Sub{Left: left, Right: right}
		}
	}
	return left, nil
}

func (b *builder) buildMultDiv(e *grammar.MultDivExprG) (aqt.Expression, error) {
	left, err := b.buildPower(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := b.buildPower(op.Right)
		if err != nil {
			return nil, err
		}
		switch op.Op {
		case "*":
			left = &aqt.Mul{Left: left, Right: right}
		case "/":
			left = &aqt.Div{Left: left, Right: right}
		default:
			left = &aqt.Mod{Left: left, Right: right}
		}
	}
	return left, nil
}

// buildPower is right-associative: the grammar's self-reference already
// gives `2^3^2` the shape `2^(3^2)` for free.
func (b *builder) buildPower(e *grammar.PowerExprG) (aqt.Expression, error) {
	left, err := b.buildUnary(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Right == nil {
		return left, nil
	}
	right, err := b.buildPower(e.Right)
	if err != nil {
		return nil, err
	}
	return &aqt.Pow{Left: left, Right: right}, nil
}

func (b *builder) buildUnary(e *grammar.UnaryExprG) (aqt.Expression, error) {
	expr, err := b.buildPostfix(e.Expr)
	if err != nil {
		return nil, err
	}
	if e.Neg {
		return &aqt.Neg{Expr: expr}, nil
	}
	return expr, nil
}

func (b *builder) buildPostfix(e *grammar.PostfixExprG) (aqt.Expression, error) {
	expr, err := b.buildAtom(e.Atom)
	if err != nil {
		return nil, err
	}
	for _, suf := range e.Suffixes {
		switch {
		case suf.Index != nil:
			idx := suf.Index
			if idx.Range {
				var start, end aqt.Expression
				if idx.Start != nil {
					if start, err = b.buildExpr(idx.Start); err != nil {
						return nil, err
					}
				}
				if idx.End != nil {
					if end, err = b.buildExpr(idx.End); err != nil {
						return nil, err
					}
				}
				expr = &aqt.Slice{Collection: expr, Start: start, End: end}
			} else {
				idxPos, err := b.buildExpr(idx.Start)
				if err != nil {
					return nil, err
				}
				expr = &aqt.Index{Collection: expr, Position: idxPos}
			}
		case suf.Property != "":
			expr = &aqt.Property{Expr: expr, Key: suf.Property}
		case suf.Labels != nil:
			for _, lbl := range suf.Labels.Labels {
				expr = &aqt.HasLabel{Expr: expr, Label: lbl}
			}
		case suf.Nullable:
			if !b.feat.NullablePostfix {
				return nil, b.dialectErr(suf.Pos, "the `?` nullable-property postfix")
			}
			expr = &aqt.Nullable{Expr: expr}
		case suf.NullablePred:
			if !b.feat.NullablePostfix {
				return nil, b.dialectErr(suf.Pos, "the `!` nullable-property postfix")
			}
			expr = &aqt.NullablePredicate{Inner: expr, Default: false}
		}
	}
	return expr, nil
}

func (b *builder) buildAtom(a *grammar.Atom) (aqt.Expression, error) {
	switch {
	case a.ListComp != nil:
		return b.buildListComprehension(a.ListComp)
	case a.ReduceCall != nil:
		if !b.feat.Reduce {
			return nil, b.dialectErr(a.ReduceCall.Pos, "reduce()")
		}
		return b.buildReduce(a.ReduceCall)
	case a.ExtractCall != nil:
		return b.buildExtract(a.ExtractCall)
	case a.Filter != nil:
		return b.buildFilter(a.Filter)
	case a.PatternPred != nil:
		return b.buildPatternPredicate(a.PatternPred)
	case a.ShortestPathExpr != nil:
		sp, _, err := b.buildShortestPath(a.ShortestPathExpr, "", false)
		if err != nil {
			return nil, err
		}
		return &aqt.ShortestPathExpression{Path: sp}, nil
	case a.Param != nil:
		return &aqt.Parameter{Name: a.Param.Name}, nil
	case a.CaseExpr != nil:
		return b.buildCase(a.CaseExpr)
	case a.CountStar != nil:
		return &aqt.FunctionCall{Name: "count", Star: true}, nil
	case a.Parenthesized != nil:
		return b.buildExpr(a.Parenthesized)
	case a.FuncCall != nil:
		return b.buildFuncCall(a.FuncCall)
	case a.Literal != nil:
		return b.buildLiteral(a.Literal)
	}
	return &aqt.Identifier{Name: a.Variable}, nil
}

func (b *builder) buildListComprehension(lc *grammar.ListComprehensionG) (aqt.Expression, error) {
	if !b.feat.ListComprehension {
		return nil, b.dialectErr(lc.Pos, "list comprehension")
	}
	src, err := b.buildExpr(lc.Source)
	if err != nil {
		return nil, err
	}
	switch {
	case lc.Where != nil && lc.Mapping != nil:
		pred, err := b.buildExpr(lc.Where)
		if err != nil {
			return nil, err
		}
		mapping, err := b.buildExpr(lc.Mapping)
		if err != nil {
			return nil, err
		}
		filter := &aqt.FilterFunction{Collection: src, Variable: lc.Variable, Predicate: pred}
		return &aqt.ExtractFunction{Collection: filter, Variable: lc.Variable, Expr: mapping}, nil
	case lc.Where != nil:
		pred, err := b.buildExpr(lc.Where)
		if err != nil {
			return nil, err
		}
		return &aqt.FilterFunction{Collection: src, Variable: lc.Variable, Predicate: pred}, nil
	case lc.Mapping != nil:
		mapping, err := b.buildExpr(lc.Mapping)
		if err != nil {
			return nil, err
		}
		return &aqt.ExtractFunction{Collection: src, Variable: lc.Variable, Expr: mapping}, nil
	default:
		return &aqt.FilterFunction{Collection: src, Variable: lc.Variable, Predicate: &aqt.True{}}, nil
	}
}

func (b *builder) buildReduce(r *grammar.ReduceCallG) (aqt.Expression, error) {
	init, err := b.buildExpr(r.Init)
	if err != nil {
		return nil, err
	}
	src, err := b.buildExpr(r.Source)
	if err != nil {
		return nil, err
	}
	expr, err := b.buildExpr(r.Expr)
	if err != nil {
		return nil, err
	}
	return &aqt.ReduceFunction{Collection: src, Variable: r.Variable, Expr: expr, Accumulator: r.Accumulator, Init: init}, nil
}

func (b *builder) buildExtract(x *grammar.ExtractCallG) (aqt.Expression, error) {
	src, err := b.buildExpr(x.Source)
	if err != nil {
		return nil, err
	}
	if x.Where != nil {
		pred, err := b.buildExpr(x.Where)
		if err != nil {
			return nil, err
		}
		src = &aqt.FilterFunction{Collection: src, Variable: x.Variable, Predicate: pred}
	}
	expr, err := b.buildExpr(x.Expr)
	if err != nil {
		return nil, err
	}
	return &aqt.ExtractFunction{Collection: src, Variable: x.Variable, Expr: expr}, nil
}

func (b *builder) buildFilter(f *grammar.FilterPredicateG) (aqt.Expression, error) {
	kind := strings.ToLower(f.Kind)
	if f.ColonSep {
		if kind != "filter" {
			return nil, b.errAt(f.Pos, synerr.UnexpectedToken, "`:` is only accepted as filter()'s separator").
				WithExpected("filter").WithFound(kind)
		}
		if b.feat.ListComprehension {
			return nil, b.dialectErr(f.Pos, "filter(x IN c: pred)")
		}
	}
	src, err := b.buildExpr(f.Source)
	if err != nil {
		return nil, err
	}
	pred, err := b.buildExpr(f.Predicate)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "all":
		return &aqt.AllInCollection{Collection: src, Variable: f.Variable, Predicate: pred}, nil
	case "any":
		return &aqt.AnyInCollection{Collection: src, Variable: f.Variable, Predicate: pred}, nil
	case "none":
		return &aqt.NoneInCollection{Collection: src, Variable: f.Variable, Predicate: pred}, nil
	case "single":
		return &aqt.SingleInCollection{Collection: src, Variable: f.Variable, Predicate: pred}, nil
	default:
		return &aqt.FilterFunction{Collection: src, Variable: f.Variable, Predicate: pred}, nil
	}
}

func (b *builder) buildPatternPredicate(pp *grammar.PatternPredicateLit) (aqt.Expression, error) {
	records, _, _, _, err := b.buildChain(pp.Node, pp.Chain, "", false)
	if err != nil {
		return nil, err
	}
	if b.feat.PatternPredicateAsValue {
		return &aqt.PatternPredicate{Patterns: records}, nil
	}
	return &aqt.NonEmpty{Path: &aqt.PathExpression{Patterns: records}}, nil
}

func (b *builder) buildCase(c *grammar.CaseExpressionG) (aqt.Expression, error) {
	whens := make([]aqt.CaseAlternative, 0, len(c.Whens))
	for _, w := range c.Whens {
		when, err := b.buildExpr(w.When)
		if err != nil {
			return nil, err
		}
		then, err := b.buildExpr(w.Then)
		if err != nil {
			return nil, err
		}
		whens = append(whens, aqt.CaseAlternative{When: when, Then: then})
	}
	var elseExpr aqt.Expression
	if c.Else != nil {
		var err error
		elseExpr, err = b.buildExpr(c.Else)
		if err != nil {
			return nil, err
		}
	}
	if c.Input == nil {
		if !b.feat.GenericCase {
			return nil, b.dialectErr(c.Pos, "CASE with no input expression")
		}
		return &aqt.GenericCase{Whens: whens, Else: elseExpr}, nil
	}
	input, err := b.buildExpr(c.Input)
	if err != nil {
		return nil, err
	}
	return &aqt.SimpleCase{Input: input, Whens: whens, Else: elseExpr}, nil
}

func (b *builder) buildFuncCall(f *grammar.FunctionCallG) (aqt.Expression, error) {
	args := make([]aqt.Expression, 0, len(f.Args))
	for _, a := range f.Args {
		arg, err := b.buildExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &aqt.FunctionCall{Name: f.Name, Args: args, Distinct: f.Distinct}, nil
}

func (b *builder) buildLiteral(l *grammar.LiteralG) (aqt.Expression, error) {
	switch {
	case l.Null:
		return &aqt.NullLiteral{}, nil
	case l.True:
		if b.feat.BooleanAsTrueNot {
			return &aqt.True{}, nil
		}
		return &aqt.BoolLiteral{Value: true}, nil
	case l.False:
		if b.feat.BooleanAsTrueNot {
			return &aqt.Not{Expr: &aqt.True{}}, nil
		}
		return &aqt.BoolLiteral{Value: false}, nil
	case l.Float != nil:
		return &aqt.FloatLiteral{Value: *l.Float}, nil
	case l.Int != nil:
		return &aqt.IntLiteral{Value: *l.Int}, nil
	case l.Str != nil:
		return &aqt.StringLiteral{Value: unquoteString(*l.Str)}, nil
	case l.List != nil:
		items := make([]aqt.Expression, 0, len(l.List.Items))
		for _, it := range l.List.Items {
			item, err := b.buildExpr(it)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &aqt.ListLiteral{Items: items}, nil
	case l.Map != nil:
		return b.buildMapLiteral(l.Map)
	}
	return &aqt.NullLiteral{}, nil
}

func (b *builder) buildMapLiteral(m *grammar.MapLiteralG) (aqt.Expression, error) {
	entries := make([]aqt.MapEntry, 0, len(m.Pairs))
	for _, p := range m.Pairs {
		v, err := b.buildExpr(p.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, aqt.MapEntry{Key: p.Key, Value: v})
	}
	return &aqt.MapLiteral{Entries: entries}, nil
}
