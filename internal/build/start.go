package build

import (
	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/synerr"
)

func (b *builder) buildStartClause(q *aqt.Query, sc *grammar.StartClause) error {
	for _, item := range sc.Items {
		si, err := b.buildStartItem(item)
		if err != nil {
			return err
		}
		q.Start = append(q.Start, si)
	}
	return nil
}

func (b *builder) buildStartItem(item *grammar.StartItemG) (aqt.StartItem, error) {
	switch {
	case item.Node != nil:
		return b.buildNodeStart(item.Name, item.Node)
	case item.Rel != nil:
		return b.buildRelStart(item.Name, item.Rel)
	case item.Create != nil:
		return b.buildCreateStart(item.Name, item.Create)
	case item.Unique != nil:
		q := &aqt.Query{}
		if err := b.buildUniquePattern(q, item.Unique); err != nil {
			return nil, err
		}
		links := make([]*aqt.UniqueLink, 0, len(q.Updates))
		for _, u := range q.Updates {
			if l, ok := u.(*aqt.UniqueLink); ok {
				links = append(links, l)
			}
		}
		return &aqt.CreateUniqueStart{Pos: pos(item.Pos), Links: links}, nil
	}
	return nil, b.errAt(item.Pos, synerr.Internal, "START item with no alternative set")
}

func (b *builder) buildNodeStart(name string, n *grammar.NodeStartSpec) (aqt.StartItem, error) {
	if n.ById != nil {
		ids, err := b.buildIdsOrParam(n.ById)
		if err != nil {
			return nil, err
		}
		if n.ById.Star {
			return &aqt.AllNodes{Pos: pos(n.Pos), Name: name}, nil
		}
		return &aqt.NodeById{Pos: pos(n.Pos), Name: name, Ids: ids}, nil
	}
	idx := n.Index
	if idx.Query != nil {
		q, err := b.buildExpr(idx.Query)
		if err != nil {
			return nil, err
		}
		return &aqt.NodeByIndexQuery{Pos: pos(idx.Pos), Name: name, Index: idx.Index, Query: q}, nil
	}
	key, err := b.buildExpr(idx.Key)
	if err != nil {
		return nil, err
	}
	val, err := b.buildExpr(idx.Value)
	if err != nil {
		return nil, err
	}
	return &aqt.NodeByIndex{Pos: pos(idx.Pos), Name: name, Index: idx.Index, Key: key, Value: val}, nil
}

func (b *builder) buildRelStart(name string, r *grammar.RelStartSpec) (aqt.StartItem, error) {
	if r.ById != nil {
		ids, err := b.buildIdsOrParam(r.ById)
		if err != nil {
			return nil, err
		}
		if r.ById.Star {
			return &aqt.AllRels{Pos: pos(r.Pos), Name: name}, nil
		}
		return &aqt.RelById{Pos: pos(r.Pos), Name: name, Ids: ids}, nil
	}
	idx := r.Index
	if idx.Query != nil {
		q, err := b.buildExpr(idx.Query)
		if err != nil {
			return nil, err
		}
		return &aqt.RelByIndexQuery{Pos: pos(idx.Pos), Name: name, Index: idx.Index, Query: q}, nil
	}
	key, err := b.buildExpr(idx.Key)
	if err != nil {
		return nil, err
	}
	val, err := b.buildExpr(idx.Value)
	if err != nil {
		return nil, err
	}
	return &aqt.RelByIndex{Pos: pos(idx.Pos), Name: name, Index: idx.Index, Key: key, Value: val}, nil
}

func (b *builder) buildIdsOrParam(s *grammar.ByIdSpec) (aqt.IdsOrParam, error) {
	if s.Param != nil {
		return aqt.IdsOrParam{Param: s.Param.Name}, nil
	}
	return aqt.IdsOrParam{Ids: s.Ids}, nil
}

func (b *builder) buildCreateStart(name string, c *grammar.CreatePropsSpec) (aqt.StartItem, error) {
	if c.Props != nil {
		props, err := b.buildExpr(c.Props)
		if err != nil {
			return nil, err
		}
		return &aqt.CreateRel{Pos: pos(c.Pos), Name: name, Type: unquoteString(c.Type), From: c.From, To: c.To, Properties: props}, nil
	}
	props, err := b.buildExpr(c.SoleProps)
	if err != nil {
		return nil, err
	}
	return &aqt.CreateNode{Pos: pos(c.Pos), Name: name, Properties: props}, nil
}

func (b *builder) buildUsingClause(q *aqt.Query, u *grammar.UsingClause) error {
	if !b.feat.Hints {
		return b.dialectErr(u.Pos, "USING INDEX/SCAN hints")
	}
	if u.Index != nil {
		q.Hints = append(q.Hints, &aqt.SchemaIndexHint{Node: u.Index.Node, Label: u.Index.Label, Property: u.Index.Property})
		return nil
	}
	q.Hints = append(q.Hints, &aqt.NodeByLabelHint{Node: u.Scan.Node, Label: u.Scan.Label})
	return nil
}
