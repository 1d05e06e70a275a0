package build

import (
	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/synerr"
)

func (b *builder) buildSetClause(q *aqt.Query, sc *grammar.SetClause) error {
	for _, item := range sc.Items {
		switch {
		case item.Property != nil:
			value, err := b.buildExpr(item.PropExpr)
			if err != nil {
				return err
			}
			target, key := propertyPathTarget(item.Property)
			q.Updates = append(q.Updates, &aqt.PropertySetAction{Pos: pos(item.Pos), Target: target, Key: key, Value: value})
		case item.Labels != nil:
			if !b.feat.LabelFeatures {
				return b.dialectErr(item.Pos, "SET n:Label")
			}
			q.Updates = append(q.Updates, &aqt.LabelAction{
				Pos: pos(item.Pos), Target: item.LabelVar, Op: aqt.LabelSet, Labels: item.Labels.Labels,
			})
		default:
			value, err := b.buildExpr(item.VarExpr)
			if err != nil {
				return err
			}
			q.Updates = append(q.Updates, &aqt.MapPropertySetAction{
				Pos: pos(item.Pos), Target: &aqt.Identifier{Name: item.Variable}, Value: value, Merge: item.AddAssign,
			})
		}
	}
	return nil
}

// propertyPathTarget turns `n.a.b` into Target=Property(n, a), Key="b": the
// last dotted segment is the key being assigned, everything before it is
// the (possibly nested) property-access target.
func propertyPathTarget(p *grammar.PropertyPathG) (aqt.Expression, string) {
	var target aqt.Expression = &aqt.Identifier{Name: p.Base}
	for i, prop := range p.Props {
		if i == len(p.Props)-1 {
			return target, prop
		}
		target = &aqt.Property{Expr: target, Key: prop}
	}
	return target, ""
}

func (b *builder) buildRemoveClause(q *aqt.Query, rc *grammar.RemoveClause) error {
	for _, item := range rc.Items {
		switch {
		case item.Labels != nil:
			if !b.feat.LabelFeatures {
				return b.dialectErr(item.Pos, "REMOVE n:Label")
			}
			q.Updates = append(q.Updates, &aqt.LabelAction{
				Pos: pos(item.Pos), Target: item.Variable, Op: aqt.LabelRemove, Labels: item.Labels.Labels,
			})
		case item.Property != nil:
			var target aqt.Expression = &aqt.Identifier{Name: item.Variable}
			key := ""
			for i, prop := range item.Property.Props {
				if i == len(item.Property.Props)-1 {
					key = prop
					break
				}
				target = &aqt.Property{Expr: target, Key: prop}
			}
			// REMOVE n.p is the v2_0-legal spelling of the same operation
			// DELETE n.p performs under v1_9; both lower to DeletePropertyAction.
			q.Updates = append(q.Updates, &aqt.DeletePropertyAction{Pos: pos(item.Pos), Target: target, Key: key})
		default:
			return b.errAt(item.Pos, synerr.Internal, "REMOVE item with no alternative set")
		}
	}
	return nil
}

func (b *builder) buildDeleteClause(q *aqt.Query, dc *grammar.DeleteClause) error {
	for _, e := range dc.Exprs {
		expr, err := b.buildExpr(e)
		if err != nil {
			return err
		}
		if prop, ok := expr.(*aqt.Property); ok {
			if !b.feat.DeleteProperty {
				return b.dialectErr(e.Pos, "DELETE of a property (use REMOVE)")
			}
			q.Updates = append(q.Updates, &aqt.DeletePropertyAction{Pos: pos(e.Pos), Target: prop.Expr, Key: prop.Key})
			continue
		}
		q.Updates = append(q.Updates, &aqt.DeleteEntityAction{Pos: pos(e.Pos), Expr: expr, Detach: dc.Detach})
	}
	return nil
}

func (b *builder) buildForeachClause(fc *grammar.ForeachClause) (*aqt.Foreach, error) {
	if fc.Colon && !b.feat.ForeachColonSeparator {
		return nil, b.dialectErr(fc.Pos, "FOREACH's `:` body separator")
	}
	iterable, err := b.buildExpr(fc.Iterable)
	if err != nil {
		return nil, err
	}
	var body []aqt.UpdateAction
	for _, uc := range fc.Body {
		actions, err := b.buildUpdatingClause(uc)
		if err != nil {
			return nil, err
		}
		body = append(body, actions...)
	}
	return &aqt.Foreach{Pos: pos(fc.Pos), Variable: fc.Variable, Iterable: iterable, Body: body}, nil
}

// buildUpdatingClause lowers one FOREACH-body clause by building it against
// a scratch Query and lifting out the resulting Updates — CREATE and CREATE
// UNIQUE can each expand into more than one UpdateAction.
func (b *builder) buildUpdatingClause(uc *grammar.UpdatingClauseG) ([]aqt.UpdateAction, error) {
	tmp := &aqt.Query{}
	switch {
	case uc.CreateUnique != nil:
		if err := b.buildUniquePattern(tmp, uc.CreateUnique.Pattern); err != nil {
			return nil, err
		}
	case uc.Create != nil:
		if err := b.buildCreatePattern(tmp, uc.Create.Pattern); err != nil {
			return nil, err
		}
	case uc.Set != nil:
		if err := b.buildSetClause(tmp, uc.Set); err != nil {
			return nil, err
		}
	case uc.Remove != nil:
		if err := b.buildRemoveClause(tmp, uc.Remove); err != nil {
			return nil, err
		}
	case uc.Delete != nil:
		if err := b.buildDeleteClause(tmp, uc.Delete); err != nil {
			return nil, err
		}
	case uc.Foreach != nil:
		action, err := b.buildForeachClause(uc.Foreach)
		if err != nil {
			return nil, err
		}
		return []aqt.UpdateAction{action}, nil
	default:
		return nil, b.errAt(uc.Pos, synerr.Internal, "FOREACH body clause with no alternative set")
	}
	return tmp.Updates, nil
}
