package cyql_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oxidegraph/cyql"
	"github.com/oxidegraph/cyql/aqt"
)

func TestParse_BasicQueries(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		version cyql.Version
	}{
		{"start return", "start s = NODE(1) return s", cyql.V2_0},
		{"simple match", "MATCH (n) RETURN n", cyql.V2_0},
		{"match with label", "MATCH (u:User) RETURN u", cyql.V2_0},
		{"match with properties", `MATCH (u:User {name: "Alice"}) RETURN u`, cyql.V2_0},
		{"match with parameter", "MATCH (u:User {id: {userId}}) RETURN u", cyql.V2_0},
		{"property access", "MATCH (u:User) RETURN u.name", cyql.V2_0},
		{"function call", "MATCH (u:User) RETURN count(u)", cyql.V2_0},
		{"relationship pattern", "MATCH (a)-[:KNOWS]->(b) RETURN a, b", cyql.V2_0},
		{"optional match", "OPTIONAL MATCH (u:User) RETURN u", cyql.V2_0},
		{"list comprehension", "RETURN [x IN [1,2,3] WHERE x > 1 | x * 2]", cyql.V2_0},
		{"arithmetic", "RETURN 1 + 2 * 3", cyql.V2_0},
		{"comparison", "RETURN 1 < 2", cyql.V2_0},
		{"boolean logic", "RETURN true AND false OR NOT true", cyql.V2_0},
		{"case expression", "RETURN CASE WHEN 1 > 0 THEN 'pos' ELSE 'neg' END", cyql.V2_0},
		{"order by", "MATCH (u:User) RETURN u.name ORDER BY u.name", cyql.V2_0},
		{"skip limit", "MATCH (u:User) RETURN u SKIP 10 LIMIT 5", cyql.V2_0},
		{"with clause", "MATCH (u:User) WITH u.name AS name RETURN name", cyql.V2_0},
		{"create", "CREATE (n:Person {name: 'Alice'})", cyql.V2_0},
		{"set property", "MATCH (u:User) SET u.name = {name} RETURN u", cyql.V2_0},
		{"set label", "MATCH (u) SET u:Admin RETURN u", cyql.V2_0},
		{"remove label", "MATCH (u) REMOVE u:Admin RETURN u", cyql.V2_0},
		{"delete", "MATCH (u:User) DELETE u", cyql.V2_0},
		{"detach delete", "MATCH (u:User) DETACH DELETE u", cyql.V2_0},
		{"union", "START s=NODE(1) RETURN s UNION START t=NODE(1) RETURN t", cyql.V2_0},
		{"foreach", "MATCH p = (a)-->(b) FOREACH (n IN nodes(p) | SET n.seen = true)", cyql.V2_0},
		{"shortest path", "MATCH p = shortestPath((a)-[*]->(b)) RETURN p", cyql.V2_0},
		{"var length v1_9", "start a=node(0) match a -[r?*1..3]-> x return x", cyql.V1_9},
		{"bare node pre-2.0", "start a = node(1) match a-->b return b", cyql.V1_9},
		{"schema create index", "CREATE INDEX ON :Person(name)", cyql.V2_0},
		{"schema constraint", "CREATE CONSTRAINT ON (p:Person) ASSERT p.name IS UNIQUE", cyql.V2_0},
		{"create unique", "START a=node(1), b=node(2) CREATE UNIQUE a-[:KNOWS]->b", cyql.V2_0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := cyql.Parse(tt.query, tt.version)
			require.NoError(t, err, "Parse(%q)", tt.query)
			require.NotNil(t, result)
		})
	}
}

// TestParse_Scenarios checks the concrete end-to-end shapes in §8 directly
// against the AQT, rather than just checking that parsing succeeded.
func TestParse_Scenarios(t *testing.T) {
	t.Run("start by id then return", func(t *testing.T) {
		result, err := cyql.Parse("start s = NODE(1) return s", cyql.V2_0)
		require.NoError(t, err)
		q, ok := result.(*aqt.Query)
		require.True(t, ok)
		require.Len(t, q.Start, 1)
		nb, ok := q.Start[0].(*aqt.NodeById)
		require.True(t, ok)
		require.Equal(t, "s", nb.Name)
		require.Equal(t, []int64{1}, nb.Ids.Ids)
		require.Equal(t, aqt.ReturnItems, q.Return.Kind)
		require.Len(t, q.Return.Items, 1)
	})

	t.Run("anonymous relationship name tracks byte offset", func(t *testing.T) {
		result, err := cyql.Parse("start a = NODE(1) match a -[:KNOWS]-> (b) return a, b", cyql.V2_0)
		require.NoError(t, err)
		q := result.(*aqt.Query)
		require.Len(t, q.Matches, 1)
		rel, ok := q.Matches[0].(*aqt.RelatedTo)
		require.True(t, ok)
		require.Equal(t, aqt.DirOut, rel.Direction)
		require.Equal(t, cyql.UnnamedPrefix+"26", rel.RelName)
	})

	t.Run("var length optional propagation under v2_0", func(t *testing.T) {
		result, err := cyql.Parse("start a=node(0) match a -[r?*1..3]-> x return x", cyql.V2_0)
		require.NoError(t, err)
		q := result.(*aqt.Query)
		require.Len(t, q.Matches, 1)
		vl, ok := q.Matches[0].(*aqt.VarLengthRelatedTo)
		require.True(t, ok)
		require.True(t, vl.Optional)
		_, isOptional := vl.To.(*aqt.SingleOptionalNode)
		require.True(t, isOptional, "endpoint should propagate optionality under v2_0")
	})

	t.Run("var length stays SingleNode under v1_9", func(t *testing.T) {
		result, err := cyql.Parse("start a=node(0) match a -[r?*1..3]-> x return x", cyql.V1_9)
		require.NoError(t, err)
		q := result.(*aqt.Query)
		vl, ok := q.Matches[0].(*aqt.VarLengthRelatedTo)
		require.True(t, ok)
		_, isPlain := vl.To.(*aqt.SingleNode)
		require.True(t, isPlain, "endpoint should stay SingleNode under v1_9")
	})

	t.Run("boolean literal lowering differs by dialect", func(t *testing.T) {
		v2, err := cyql.Parse("start a = NODE(1) return true = false", cyql.V2_0)
		require.NoError(t, err)
		eq := v2.(*aqt.Query).Return.Items[0].Expr.(*aqt.Eq)
		_, leftIsTrue := eq.Left.(*aqt.True)
		require.True(t, leftIsTrue)
		not, rightIsNot := eq.Right.(*aqt.Not)
		require.True(t, rightIsNot)
		_, innerIsTrue := not.Expr.(*aqt.True)
		require.True(t, innerIsTrue)

		v1, err := cyql.Parse("start a = NODE(1) return true = false", cyql.V1_9)
		require.NoError(t, err)
		eq1 := v1.(*aqt.Query).Return.Items[0].Expr.(*aqt.Eq)
		lit, leftIsBool := eq1.Left.(*aqt.BoolLiteral)
		require.True(t, leftIsBool)
		require.True(t, lit.Value)
	})

	t.Run("with splits into head and tail", func(t *testing.T) {
		result, err := cyql.Parse(
			"start n=node(0,1,2) with n order by ID(n) desc limit 2 where ID(n) = 1 return n",
			cyql.V2_0,
		)
		require.NoError(t, err)
		outer := result.(*aqt.Query)
		require.NotNil(t, outer.Tail)
		require.Len(t, outer.OrderBy, 1)
		require.True(t, outer.OrderBy[0].Descending)
		require.NotNil(t, outer.Limit)
		require.Equal(t, int64(2), *outer.Limit.Int)
		inner := outer.Tail
		require.NotNil(t, inner.Where)
		require.Equal(t, aqt.ReturnItems, inner.Return.Kind)
	})

	t.Run("union all carries distinct false across the whole chain", func(t *testing.T) {
		result, err := cyql.Parse(
			"start s=NODE(1) return s UNION all start t=NODE(1) return t",
			cyql.V2_0,
		)
		require.NoError(t, err)
		u, ok := result.(*aqt.Union)
		require.True(t, ok)
		require.False(t, u.Distinct)
		require.Len(t, u.Queries, 2)
	})

	t.Run("bare union defaults distinct true", func(t *testing.T) {
		result, err := cyql.Parse(
			"start s=NODE(1) return s UNION start t=NODE(1) return t",
			cyql.V2_0,
		)
		require.NoError(t, err)
		u := result.(*aqt.Union)
		require.True(t, u.Distinct)
	})
}

func TestParse_DialectGating(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		version cyql.Version
	}{
		{"union under v1_9", "START s=NODE(1) RETURN s UNION START t=NODE(1) RETURN t", cyql.V1_9},
		{"set label under v1_9", "MATCH (u) SET u:Admin RETURN u", cyql.V1_9},
		{"schema ddl under v1_9", "CREATE INDEX ON :Person(name)", cyql.V1_9},
		{"using hint under v1_9", "START n=node(1) USING INDEX n:Person(name) RETURN n", cyql.V1_9},
		{"match without start under v1_9", "MATCH (n) RETURN n", cyql.V1_9},
		{"generic case under v1_9", "RETURN CASE WHEN 1 > 0 THEN 'a' END", cyql.V1_9},
		{"delete property under v2_0", "MATCH (u) DELETE u.name", cyql.V2_0},
		{"nullable postfix under v2_0", "MATCH (u) RETURN u.name?", cyql.V2_0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cyql.Parse(tt.query, tt.version)
			require.Error(t, err, "Parse(%q) under %s should be a dialect feature error", tt.query, tt.version)
			var syn *cyql.SyntaxError
			require.ErrorAs(t, err, &syn)
			require.Equal(t, cyql.DialectFeatureError, syn.Kind)
		})
	}
}

func TestParse_SchemaArityErrors(t *testing.T) {
	tests := []string{
		"CREATE INDEX ON :Person",
		"CREATE INDEX ON :Person(a,b)",
		"DROP INDEX ON :Person(a,b)",
	}
	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			_, err := cyql.Parse(query, cyql.V2_0)
			require.Error(t, err)
			var syn *cyql.SyntaxError
			require.ErrorAs(t, err, &syn)
			require.Equal(t, cyql.SemanticArityError, syn.Kind)
		})
	}
}

// TestParse_Determinism is P1: parsing the same input twice yields
// structurally equal AQTs.
func TestParse_Determinism(t *testing.T) {
	queries := []string{
		"start a = NODE(1) match a -[:KNOWS]-> (b) return a, b",
		"MATCH (u:User)-[r:FOLLOWS*1..3]->(v) WHERE u.age > 21 RETURN v ORDER BY v.name SKIP 1 LIMIT 10",
		"START s=NODE(1) RETURN s UNION ALL START t=NODE(1) RETURN t",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			first, err := cyql.Parse(q, cyql.V2_0)
			require.NoError(t, err)
			second, err := cyql.Parse(q, cyql.V2_0)
			require.NoError(t, err)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Parse(%q) not deterministic:\n%s", q, diff)
			}
		})
	}
}

// TestParse_DirectionNormalization is P5: outside a named path an
// incoming-direction relationship is rewritten to OUT with endpoints
// swapped.
func TestParse_DirectionNormalization(t *testing.T) {
	result, err := cyql.Parse("MATCH (a)<-[r:KNOWS]-(b) RETURN a, b", cyql.V2_0)
	require.NoError(t, err)
	q := result.(*aqt.Query)
	rel := q.Matches[0].(*aqt.RelatedTo)
	require.Equal(t, aqt.DirOut, rel.Direction)
	from := rel.From.(*aqt.SingleNode)
	to := rel.To.(*aqt.SingleNode)
	require.Equal(t, "b", from.Name)
	require.Equal(t, "a", to.Name)
}

// TestParse_NamedPathPreservesDirection checks the §4.4 carve-out: inside a
// named path the original arrow direction is kept, not normalized.
func TestParse_NamedPathPreservesDirection(t *testing.T) {
	result, err := cyql.Parse("MATCH p = (a)<-[r:KNOWS]-(b) RETURN p", cyql.V2_0)
	require.NoError(t, err)
	q := result.(*aqt.Query)
	np, ok := q.NamedPaths["p"]
	require.True(t, ok)
	require.Len(t, np.Rels, 1)
	require.Equal(t, aqt.DirIn, np.Rels[0].Direction)
}

func TestParse_DialectDirective(t *testing.T) {
	result, err := cyql.Parse("cypher 1.9 start a = node(1) match a-->b return b", cyql.Default)
	require.NoError(t, err)
	require.NotNil(t, result)

	_, err = cyql.Parse("cypher 1.9 MATCH (u) SET u:Admin RETURN u", cyql.Default)
	require.Error(t, err)

	_, err = cyql.Parse("cypher 2.0 MATCH (n) RETURN n", cyql.V1_9)
	require.Error(t, err, "directive conflicting with requested dialect should fail")
}

func TestParseVersion(t *testing.T) {
	for _, s := range []string{"v1_9", "1.9", "V1_9"} {
		v, err := cyql.ParseVersion(s)
		require.NoError(t, err)
		require.Equal(t, cyql.V1_9, v)
	}
	_, err := cyql.ParseVersion("v3_0")
	require.ErrorIs(t, err, cyql.ErrUnknownDialect)
}
