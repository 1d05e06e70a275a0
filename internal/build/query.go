package build

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/synerr"
)

func (b *builder) buildRegularQuery(rq *grammar.RegularQuery) (aqt.AQT, error) {
	first, err := b.buildSingleQuery(rq.First)
	if err != nil {
		return nil, err
	}
	if len(rq.Unions) == 0 {
		return first, nil
	}
	if !b.feat.Union {
		return nil, b.dialectErr(rq.Unions[0].Pos, "UNION")
	}
	queries := []*aqt.Query{first}
	distinct := true
	for _, u := range rq.Unions {
		q, err := b.buildSingleQuery(u.Query)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
		if u.All {
			distinct = false
		}
	}
	return &aqt.Union{Pos: pos(rq.Pos), Queries: queries, Distinct: distinct}, nil
}

// buildSingleQuery walks a flat clause list, splitting it into a head/tail
// chain at every WITH (§4.5): a WITH closes the current segment (its
// projection becomes that segment's Return) and everything after it
// becomes Tail; a RETURN closes the chain; running out of clauses with
// neither produces ReturnEmpty.
func (b *builder) buildSingleQuery(sq *grammar.SingleQuery) (*aqt.Query, error) {
	return b.buildFrom(sq.Clauses, sq.Pos)
}

func (b *builder) buildFrom(clauses []*grammar.Clause, anchor lexer.Position) (*aqt.Query, error) {
	q := &aqt.Query{Pos: pos(anchor), NamedPaths: map[string]*aqt.NamedPath{}}

	for i, c := range clauses {
		switch {
		case c.Start != nil:
			if err := b.buildStartClause(q, c.Start); err != nil {
				return nil, err
			}
		case c.Using != nil:
			if err := b.buildUsingClause(q, c.Using); err != nil {
				return nil, err
			}
		case c.Match != nil:
			if err := b.buildMatchClause(q, c.Match); err != nil {
				return nil, err
			}
		case c.Where != nil:
			expr, err := b.buildExpr(c.Where.Expr)
			if err != nil {
				return nil, err
			}
			b.addWhere(q, expr)
		case c.CreateUnique != nil:
			if err := b.buildUniquePattern(q, c.CreateUnique.Pattern); err != nil {
				return nil, err
			}
		case c.Create != nil:
			if err := b.buildCreatePattern(q, c.Create.Pattern); err != nil {
				return nil, err
			}
		case c.Set != nil:
			if err := b.buildSetClause(q, c.Set); err != nil {
				return nil, err
			}
		case c.Remove != nil:
			if err := b.buildRemoveClause(q, c.Remove); err != nil {
				return nil, err
			}
		case c.Delete != nil:
			if err := b.buildDeleteClause(q, c.Delete); err != nil {
				return nil, err
			}
		case c.Foreach != nil:
			action, err := b.buildForeachClause(c.Foreach)
			if err != nil {
				return nil, err
			}
			q.Updates = append(q.Updates, action)
		case c.With != nil:
			ret, agg, order, skip, limit, err := b.buildProjection(c.With.Body, true)
			if err != nil {
				return nil, err
			}
			q.Return = ret
			q.Aggregation = agg
			q.OrderBy = order
			q.Skip = skip
			q.Limit = limit
			tail, err := b.buildFrom(clauses[i+1:], c.With.Pos)
			if err != nil {
				return nil, err
			}
			q.Tail = tail
			if err := b.checkStartRequirement(q); err != nil {
				return nil, err
			}
			return q, nil
		case c.Return != nil:
			ret, agg, order, skip, limit, err := b.buildProjection(c.Return.Body, false)
			if err != nil {
				return nil, err
			}
			q.Return = ret
			q.Aggregation = agg
			q.OrderBy = order
			q.Skip = skip
			q.Limit = limit
			if err := b.checkStartRequirement(q); err != nil {
				return nil, err
			}
			return q, nil
		default:
			return nil, b.errAt(c.Pos, synerr.Internal, "clause with no alternative set")
		}
	}

	q.Return = aqt.ReturnSpec{Kind: aqt.ReturnEmpty}
	if err := b.checkStartRequirement(q); err != nil {
		return nil, err
	}
	return q, nil
}

// buildProjection lowers a RETURN/WITH body. The bool argument (true for
// WITH, false for RETURN) is unused: both clauses share the same grammar,
// `*` yields ReturnAllIdentifiers under either, and the distinction
// downstream consumers care about is Kind, not which keyword introduced it.
func (b *builder) buildProjection(body *grammar.ProjectionBody, _ bool) (aqt.ReturnSpec, *aqt.Aggregation, []*aqt.SortItem, *aqt.IntOrParam, *aqt.IntOrParam, error) {
	var ret aqt.ReturnSpec
	var agg *aqt.Aggregation

	if body.Star {
		ret = aqt.ReturnSpec{Kind: aqt.ReturnAllIdentifiers}
	} else {
		items := make([]*aqt.ReturnItem, 0, len(body.Items))
		hasAggregate := false
		for _, it := range body.Items {
			expr, err := b.buildExpr(it.Expr)
			if err != nil {
				return ret, nil, nil, nil, nil, err
			}
			if fc, ok := expr.(*aqt.FunctionCall); ok && fc.IsAggregate() {
				hasAggregate = true
			}
			items = append(items, &aqt.ReturnItem{Pos: pos(it.Pos), Expr: expr, Alias: it.Alias})
		}
		ret = aqt.ReturnSpec{Kind: aqt.ReturnItems, Items: items}

		if hasAggregate || body.Distinct {
			var keys []aqt.Expression
			for _, it := range items {
				if fc, ok := it.Expr.(*aqt.FunctionCall); ok && fc.IsAggregate() {
					continue
				}
				keys = append(keys, it.Expr)
			}
			agg = &aqt.Aggregation{Keys: keys}
		}
	}

	var order []*aqt.SortItem
	if body.Order != nil {
		for _, it := range body.Order.Items {
			expr, err := b.buildExpr(it.Expr)
			if err != nil {
				return ret, nil, nil, nil, nil, err
			}
			order = append(order, &aqt.SortItem{Expr: expr, Descending: it.Desc})
		}
	}

	skip, err := b.buildIntOrParam(body.Skip)
	if err != nil {
		return ret, nil, nil, nil, nil, err
	}
	limit, err := b.buildLimitIntOrParam(body.Limit)
	if err != nil {
		return ret, nil, nil, nil, nil, err
	}

	return ret, agg, order, skip, limit, nil
}

func (b *builder) buildIntOrParam(s *grammar.SkipG) (*aqt.IntOrParam, error) {
	if s == nil {
		return nil, nil
	}
	return b.intOrParamG(s.Value)
}

func (b *builder) buildLimitIntOrParam(l *grammar.LimitG) (*aqt.IntOrParam, error) {
	if l == nil {
		return nil, nil
	}
	return b.intOrParamG(l.Value)
}

func (b *builder) intOrParamG(v *grammar.IntOrParamG) (*aqt.IntOrParam, error) {
	if v.Int != nil {
		return &aqt.IntOrParam{Int: v.Int}, nil
	}
	return &aqt.IntOrParam{Param: v.Param.Name}, nil
}
