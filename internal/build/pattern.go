package build

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/synerr"
)

// nodeInfo is the decoded form of a NodePatternG, before it is turned into
// a NodeRef (which needs to know, per hop, whether optional propagation
// applies) or a CreateNodeAction/UniqueEndpoint (which keep the inline
// properties expression instead of decomposing it).
type nodeInfo struct {
	name       string
	labels     []string
	pos        lexer.Position
	propsMap   *grammar.MapLiteralG
	propsParam string
	bare       bool
}

func (b *builder) buildNodeDecl(np *grammar.NodePatternG, gateBare bool) (nodeInfo, error) {
	if np.Bare != "" {
		if gateBare && !b.feat.BareNodeIdentifiers {
			return nodeInfo{}, b.dialectErr(np.Pos, "a bare node identifier with no parentheses")
		}
		return nodeInfo{name: np.Bare, pos: np.Pos, bare: true}, nil
	}
	info := nodeInfo{name: autoName(np.Variable, np.Pos), pos: np.Pos}
	if np.Labels != nil {
		info.labels = np.Labels.Labels
	}
	if np.Properties != nil {
		if np.Properties.Map != nil {
			info.propsMap = np.Properties.Map
		} else {
			info.propsParam = np.Properties.Param.Name
		}
	}
	return info, nil
}

func (b *builder) nodeRefFor(info nodeInfo, optional bool) aqt.NodeRef {
	if optional && b.feat.OptionalPropagation {
		return &aqt.SingleOptionalNode{Name: info.name, Labels: info.labels}
	}
	return &aqt.SingleNode{Name: info.name, Labels: info.labels}
}

// propertyEqualityPreds decomposes an inline `{k: v, ...}` property map on a
// MATCH pattern node or relationship into per-key equality predicates, since
// neither SingleNode nor RelatedTo carries a Properties field of its own —
// the map is a filter shorthand, not a property of the AQT node. A
// param-valued property map (`{param}`) cannot be decomposed at parse time
// and is accepted syntactically but contributes no predicate; this is a
// documented simplification, not a silent feature drop of the param form
// itself (it still flows through untouched wherever it is the value, not
// the filter, e.g. CREATE).
func (b *builder) propertyEqualityPreds(identName string, info nodeInfo) ([]aqt.Expression, error) {
	if info.propsMap == nil {
		return nil, nil
	}
	preds := make([]aqt.Expression, 0, len(info.propsMap.Pairs))
	for _, pair := range info.propsMap.Pairs {
		val, err := b.buildExpr(pair.Value)
		if err != nil {
			return nil, err
		}
		preds = append(preds, &aqt.Eq{
			Left:  &aqt.Property{Expr: &aqt.Identifier{Name: identName}, Key: pair.Key},
			Right: val,
		})
	}
	return preds, nil
}

func (b *builder) propsFromDetail(props *grammar.PropertiesG) (*grammar.MapLiteralG, string) {
	if props == nil {
		return nil, ""
	}
	if props.Map != nil {
		return props.Map, ""
	}
	return nil, props.Param.Name
}

func (b *builder) addWhere(q *aqt.Query, preds ...aqt.Expression) {
	for _, p := range preds {
		if p == nil {
			continue
		}
		if q.Where == nil {
			q.Where = p
		} else {
			q.Where = &aqt.And{Left: q.Where, Right: p}
		}
	}
}

func (b *builder) checkStartRequirement(q *aqt.Query) error {
	if len(q.Start) == 0 && len(q.Matches) > 0 && !b.feat.ShortestPathWithoutStart {
		return b.dialectErr(unpos(q.Pos), "MATCH with no START clause")
	}
	return nil
}

func rangeBounds(r *grammar.RangeLiteralG) (*int, *int) {
	if r == nil {
		return nil, nil
	}
	min, max := toInt(r.Min), toInt(r.Max)
	if !r.Range && min != nil {
		// `*3` with no `..` means exactly 3 hops, not "3 or more".
		max = min
	}
	return min, max
}

func rawDirection(b *builder, leftArrow, rightArrow bool, p lexer.Position) (aqt.Direction, error) {
	if leftArrow && rightArrow {
		return aqt.DirBoth, b.errAt(p, synerr.UnexpectedToken, "a relationship cannot point both directions at once").
			WithExpected("-> or <-, not both").WithFound("<- ... ->")
	}
	if leftArrow {
		return aqt.DirIn, nil
	}
	if rightArrow {
		return aqt.DirOut, nil
	}
	return aqt.DirBoth, nil
}

func (b *builder) buildMatchClause(q *aqt.Query, m *grammar.MatchClause) error {
	for _, part := range m.Pattern.Parts {
		if err := b.buildPatternPartInto(q, part, m.Optional); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildPatternPartInto(q *aqt.Query, part *grammar.PatternPartG, optionalMatch bool) error {
	switch {
	case part.Element.ShortestPath != nil:
		sp, preds, err := b.buildShortestPath(part.Element.ShortestPath, part.Var, optionalMatch)
		if err != nil {
			return err
		}
		q.Matches = append(q.Matches, sp)
		if part.Var != "" {
			// sp is direction-normalized; a named path keeps the arrow as written.
			nodes, dir := []aqt.NodeRef{sp.From, sp.To}, sp.Direction
			if rel := part.Element.ShortestPath.Chain[0].Rel; rel.LeftArrow && !rel.RightArrow {
				nodes, dir = []aqt.NodeRef{sp.To, sp.From}, aqt.DirIn
			}
			q.NamedPaths[part.Var] = &aqt.NamedPath{
				Name:  part.Var,
				Nodes: nodes,
				Rels: []aqt.PathRelSegment{{
					Name: sp.RelBinding, Types: sp.Types, Direction: dir,
					Max: sp.Max, Optional: sp.Optional,
				}},
			}
		}
		b.addWhere(q, preds...)
		return nil
	case part.Element.Plain != nil:
		records, rawNodes, rawRels, preds, err := b.buildChain(part.Element.Plain.Node, part.Element.Plain.Chain, part.Var, optionalMatch)
		if err != nil {
			return err
		}
		q.Matches = append(q.Matches, records...)
		if part.Var != "" {
			q.NamedPaths[part.Var] = &aqt.NamedPath{Name: part.Var, Nodes: rawNodes, Rels: rawRels}
		}
		b.addWhere(q, preds...)
		return nil
	}
	return b.errAt(part.Pos, synerr.Internal, "pattern element with no alternative set")
}

// buildChain lowers one comma-separated pattern part into direction-
// normalized PatternRecords (P5: outside a named path, RelatedTo/
// VarLengthRelatedTo never carries DirIn) plus the raw, un-normalized node
// and relationship list a NamedPath needs if this part was given a name.
// Optional propagation (I5) is applied per hop, not chained across the
// whole pattern: the node newly introduced by an optional hop becomes
// SingleOptionalNode, the already-bound endpoint keeps whatever
// optionality it already had.
func (b *builder) buildChain(node *grammar.NodePatternG, chain []*grammar.PatternElemChainG, pathVar string, optionalMatch bool) ([]aqt.PatternRecord, []aqt.NodeRef, []aqt.PathRelSegment, []aqt.Expression, error) {
	infos := make([]nodeInfo, 0, len(chain)+1)
	n0, err := b.buildNodeDecl(node, true)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	infos = append(infos, n0)
	for _, hop := range chain {
		ni, err := b.buildNodeDecl(hop.Node, true)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		infos = append(infos, ni)
	}

	var wherePreds []aqt.Expression
	for _, info := range infos {
		preds, err := b.propertyEqualityPreds(info.name, info)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		wherePreds = append(wherePreds, preds...)
	}

	if len(chain) == 0 {
		// A bare node has no relationship to be "reached through", so it
		// stays a SingleNode even under OPTIONAL MATCH — SingleOptionalNode
		// only ever appears as the far endpoint of an optional hop.
		ref := &aqt.SingleNode{Name: infos[0].name, Labels: infos[0].labels}
		return []aqt.PatternRecord{ref}, []aqt.NodeRef{ref}, nil, wherePreds, nil
	}

	optionalFlags := make([]bool, len(infos))
	for i, hop := range chain {
		optionalFlags[i+1] = optionalMatch || (hop.Rel.Detail != nil && hop.Rel.Detail.Optional)
	}

	var records []aqt.PatternRecord
	var rawNodes []aqt.NodeRef
	var rawRels []aqt.PathRelSegment

	for i, hop := range chain {
		rel := hop.Rel
		rawDir, err := rawDirection(b, rel.LeftArrow, rel.RightArrow, rel.Pos)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		var relVar string
		var types []string
		var rng *grammar.RangeLiteralG
		var propsMap *grammar.MapLiteralG
		var propsParam string
		if rel.Detail != nil {
			relVar = rel.Detail.Variable
			if rel.Detail.Types != nil {
				types = rel.Detail.Types.Types
			}
			rng = rel.Detail.Range
			propsMap, propsParam = b.propsFromDetail(rel.Detail.Properties)
		}
		if propsMap != nil {
			preds, err := b.propertyEqualityPreds(autoName(relVar, rel.Pos), nodeInfo{propsMap: propsMap})
			if err != nil {
				return nil, nil, nil, nil, err
			}
			wherePreds = append(wherePreds, preds...)
		}
		_ = propsParam // accepted syntactically; see propertyEqualityPreds doc.

		optional := optionalFlags[i+1]
		fromInfo, toInfo := infos[i], infos[i+1]
		fromRef := b.nodeRefFor(fromInfo, optionalFlags[i])
		toRef := b.nodeRefFor(toInfo, optionalFlags[i+1])

		if i == 0 {
			rawNodes = append(rawNodes, fromRef)
		}
		rawNodes = append(rawNodes, toRef)
		rawRels = append(rawRels, aqt.PathRelSegment{
			Name: relVar, Types: types, Direction: rawDir,
			Min: toInt(firstOrNil(rng)), Max: toInt(secondOrNil(rng)), Optional: optional,
		})

		normFrom, normTo, normDir := fromRef, toRef, rawDir
		if rawDir == aqt.DirIn {
			normFrom, normTo, normDir = toRef, fromRef, aqt.DirOut
		}

		if rng != nil {
			min, max := rangeBounds(rng)
			records = append(records, &aqt.VarLengthRelatedTo{
				Pos: pos(rel.Pos), PathName: autoName(pathVar, rel.Pos), From: normFrom, To: normTo, Min: min, Max: max,
				Types: types, Direction: normDir, RelBinding: relVar, Optional: optional,
			})
		} else {
			records = append(records, &aqt.RelatedTo{
				Pos: pos(rel.Pos), From: normFrom, To: normTo, RelName: autoName(relVar, rel.Pos),
				Types: types, Direction: normDir, Optional: optional,
			})
		}
	}
	return records, rawNodes, rawRels, wherePreds, nil
}

// firstOrNil/secondOrNil let buildChain compute a NamedPath's raw Min/Max
// without running the `*N` exactly-N normalization rangeBounds applies for
// the PatternRecord it emits — a named path echoes what was written, not
// the normalized reading.
func firstOrNil(r *grammar.RangeLiteralG) *int64 {
	if r == nil {
		return nil
	}
	return r.Min
}

func secondOrNil(r *grammar.RangeLiteralG) *int64 {
	if r == nil {
		return nil
	}
	return r.Max
}

func (b *builder) buildShortestPath(sp *grammar.ShortestPathLit, pathVar string, optionalMatch bool) (*aqt.ShortestPath, []aqt.Expression, error) {
	if len(sp.Chain) != 1 {
		return nil, nil, b.errAt(sp.Pos, synerr.SemanticArity, "shortestPath/allShortestPaths takes exactly one relationship")
	}
	fromInfo, err := b.buildNodeDecl(sp.Node, true)
	if err != nil {
		return nil, nil, err
	}
	hop := sp.Chain[0]
	toInfo, err := b.buildNodeDecl(hop.Node, true)
	if err != nil {
		return nil, nil, err
	}

	var wherePreds []aqt.Expression
	for _, info := range []nodeInfo{fromInfo, toInfo} {
		preds, err := b.propertyEqualityPreds(info.name, info)
		if err != nil {
			return nil, nil, err
		}
		wherePreds = append(wherePreds, preds...)
	}

	rel := hop.Rel
	rawDir, err := rawDirection(b, rel.LeftArrow, rel.RightArrow, rel.Pos)
	if err != nil {
		return nil, nil, err
	}

	var relVar string
	var types []string
	var rng *grammar.RangeLiteralG
	var optional bool
	if rel.Detail != nil {
		relVar = rel.Detail.Variable
		if rel.Detail.Types != nil {
			types = rel.Detail.Types.Types
		}
		rng = rel.Detail.Range
		optional = rel.Detail.Optional
	}
	optional = optional || optionalMatch

	fromRef := b.nodeRefFor(fromInfo, false)
	toRef := b.nodeRefFor(toInfo, optional)

	normFrom, normTo, normDir := fromRef, toRef, rawDir
	if rawDir == aqt.DirIn {
		normFrom, normTo, normDir = toRef, fromRef, aqt.DirOut
	}

	_, max := rangeBounds(rng)

	return &aqt.ShortestPath{
		Pos: pos(sp.Pos), Name: autoName(pathVar, sp.Pos), From: normFrom, To: normTo,
		Types: types, Direction: normDir, Max: max, Optional: optional,
		Single: strEq(sp.Kind, "shortestPath"), RelBinding: relVar,
	}, wherePreds, nil
}

func strEq(a, b string) bool { return a == b }

// ----------------------------------------------------------------------------
// CREATE
// ----------------------------------------------------------------------------

func (b *builder) buildCreatePattern(q *aqt.Query, p *grammar.Pattern) error {
	for _, part := range p.Parts {
		if err := b.buildCreatePart(q, part); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) propsExprFromInfo(info nodeInfo) (aqt.Expression, error) {
	if info.propsMap != nil {
		return b.buildMapLiteral(info.propsMap)
	}
	if info.propsParam != "" {
		return &aqt.Parameter{Name: info.propsParam}, nil
	}
	return nil, nil
}

func (b *builder) buildPropertiesExpr(props *grammar.PropertiesG) (aqt.Expression, error) {
	if props == nil {
		return nil, nil
	}
	if props.Map != nil {
		return b.buildMapLiteral(props.Map)
	}
	return &aqt.Parameter{Name: props.Param.Name}, nil
}

func (b *builder) buildCreatePart(q *aqt.Query, part *grammar.PatternPartG) error {
	if part.Element.ShortestPath != nil {
		return b.errAt(part.Pos, synerr.UnexpectedToken, "shortestPath is not a valid CREATE pattern").
			WithExpected("a node/relationship pattern").WithFound("shortestPath(...)")
	}
	plain := part.Element.Plain

	node0, err := b.buildNodeDecl(plain.Node, false)
	if err != nil {
		return err
	}
	props0, err := b.propsExprFromInfo(node0)
	if err != nil {
		return err
	}
	q.Updates = append(q.Updates, &aqt.CreateNodeAction{
		Pos: pos(plain.Node.Pos), Variable: node0.name, Labels: node0.labels, Properties: props0, Bare: node0.bare,
	})

	prevName := node0.name
	for _, hop := range plain.Chain {
		toInfo, err := b.buildNodeDecl(hop.Node, false)
		if err != nil {
			return err
		}
		propsN, err := b.propsExprFromInfo(toInfo)
		if err != nil {
			return err
		}
		q.Updates = append(q.Updates, &aqt.CreateNodeAction{
			Pos: pos(hop.Node.Pos), Variable: toInfo.name, Labels: toInfo.labels, Properties: propsN, Bare: toInfo.bare,
		})

		rel := hop.Rel
		dir, err := rawDirection(b, rel.LeftArrow, rel.RightArrow, rel.Pos)
		if err != nil {
			return err
		}
		var relVar, typ string
		var relProps aqt.Expression
		if rel.Detail != nil {
			relVar = rel.Detail.Variable
			if rel.Detail.Types != nil {
				if len(rel.Detail.Types.Types) > 1 {
					return b.errAt(rel.Pos, synerr.SemanticArity, "a created relationship takes exactly one type")
				}
				if len(rel.Detail.Types.Types) == 1 {
					typ = rel.Detail.Types.Types[0]
				}
			}
			relProps, err = b.buildPropertiesExpr(rel.Detail.Properties)
			if err != nil {
				return err
			}
		}
		q.Updates = append(q.Updates, &aqt.CreateRelationshipAction{
			Pos: pos(rel.Pos), Variable: autoName(relVar, rel.Pos), Type: typ,
			FromName: prevName, ToName: toInfo.name, Direction: dir, Properties: relProps,
		})
		prevName = toInfo.name
	}
	return nil
}

// ----------------------------------------------------------------------------
// CREATE UNIQUE
// ----------------------------------------------------------------------------

func (b *builder) buildUniquePattern(q *aqt.Query, p *grammar.Pattern) error {
	for _, part := range p.Parts {
		if err := b.buildUniquePart(q, part); err != nil {
			return err
		}
	}
	return nil
}

// uniqueEndpoint heuristically treats a bare-looking endpoint (no labels,
// no inline properties) as already bound by an earlier clause rather than
// a node to create — CREATE UNIQUE's grammar, reused from ordinary
// patterns, gives no other signal to distinguish the two (§9 open
// question).
func (b *builder) uniqueEndpoint(info nodeInfo) (aqt.UniqueEndpoint, error) {
	props, err := b.propsExprFromInfo(info)
	if err != nil {
		return aqt.UniqueEndpoint{}, err
	}
	bound := len(info.labels) == 0 && info.propsMap == nil && info.propsParam == ""
	return aqt.UniqueEndpoint{Name: info.name, Labels: info.labels, Properties: props, Bound: bound}, nil
}

func (b *builder) buildUniquePart(q *aqt.Query, part *grammar.PatternPartG) error {
	if part.Element.ShortestPath != nil {
		return b.errAt(part.Pos, synerr.UnexpectedToken, "shortestPath is not a valid CREATE UNIQUE pattern").
			WithExpected("a node/relationship pattern").WithFound("shortestPath(...)")
	}
	plain := part.Element.Plain
	if len(plain.Chain) == 0 {
		return b.errAt(plain.Node.Pos, synerr.SemanticArity, "CREATE UNIQUE requires at least one relationship")
	}

	node0, err := b.buildNodeDecl(plain.Node, false)
	if err != nil {
		return err
	}
	prevEP, err := b.uniqueEndpoint(node0)
	if err != nil {
		return err
	}

	for _, hop := range plain.Chain {
		toInfo, err := b.buildNodeDecl(hop.Node, false)
		if err != nil {
			return err
		}
		toEP, err := b.uniqueEndpoint(toInfo)
		if err != nil {
			return err
		}

		rel := hop.Rel
		dir, err := rawDirection(b, rel.LeftArrow, rel.RightArrow, rel.Pos)
		if err != nil {
			return err
		}
		var relVar, typ string
		var relProps aqt.Expression
		if rel.Detail != nil {
			relVar = rel.Detail.Variable
			if rel.Detail.Types != nil && len(rel.Detail.Types.Types) > 0 {
				typ = rel.Detail.Types.Types[0]
			}
			relProps, err = b.buildPropertiesExpr(rel.Detail.Properties)
			if err != nil {
				return err
			}
		}
		q.Updates = append(q.Updates, &aqt.UniqueLink{
			Pos: pos(rel.Pos), Left: prevEP, Right: toEP, RelVariable: autoName(relVar, rel.Pos),
			Type: typ, Direction: dir, RelProperties: relProps,
		})
		prevEP = toEP
	}
	return nil
}
