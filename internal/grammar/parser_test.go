package grammar_test

import (
	"testing"

	"github.com/oxidegraph/cyql/internal/grammar"
)

func TestParse_BasicQueries(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"simple return", "RETURN 42"},
		{"return string", `RETURN "hello"`},
		{"return float", "RETURN 3.14"},
		{"return bool", "RETURN true"},
		{"return list", "RETURN [1, 2, 3]"},
		{"return map", `RETURN {name: "test", age: 25}`},
		{"simple match", "MATCH (n) RETURN n"},
		{"match with label", "MATCH (u:User) RETURN u"},
		{"match with properties", `MATCH (u:User {name: "Alice"}) RETURN u`},
		{"match with parameter", "MATCH (u:User {id: {userId}}) RETURN u"},
		{"property access", "MATCH (u:User) RETURN u.name"},
		{"function call", "MATCH (u:User) RETURN count(u)"},
		{"list comprehension", "MATCH (u:User) RETURN [x IN u.tags | toUpper(x)]"},
		{"list comprehension filter", "MATCH (u:User) RETURN [x IN u.tags WHERE size(x) > 3]"},
		{"arithmetic", "RETURN 1 + 2 * 3"},
		{"comparison", "RETURN 1 < 2"},
		{"boolean logic", "RETURN true AND false OR NOT true"},
		{"case expression", "RETURN CASE WHEN x > 0 THEN 'positive' ELSE 'non-positive' END"},
		{"order by", "MATCH (u:User) RETURN u.name ORDER BY u.name"},
		{"skip limit", "MATCH (u:User) RETURN u SKIP 10 LIMIT 5"},
		{"with clause", "MATCH (u:User) WITH u.name AS name RETURN name"},
		{"create", "CREATE (n:Person {name: 'Alice'})"},
		{"relationship pattern", "MATCH (a)-[:KNOWS]->(b) RETURN a, b"},
		{"optional match", "OPTIONAL MATCH (u:User) RETURN u"},
		{"is null", "MATCH (u:User) WHERE u.email IS NULL RETURN u"},
		{"is not null", "MATCH (u:User) WHERE u.email IS NOT NULL RETURN u"},
		{"in list", "RETURN 1 IN [1, 2, 3]"},
		{"return distinct", "MATCH (u:User) RETURN DISTINCT u.name"},
		{"count star", "MATCH (u:User) RETURN count(*)"},
		{"set property", "MATCH (u:User) SET u.name = {name} RETURN u"},
		{"set variable", "MATCH (u:User) SET u = {props} RETURN u"},
		{"set add assign", "MATCH (u:User) SET u += {props} RETURN u"},
		{"set label", "MATCH (u) SET u:Admin RETURN u"},
		{"delete", "MATCH (u:User) DELETE u"},
		{"detach delete", "MATCH (u:User) DETACH DELETE u"},
		{"start node by id", "START n = NODE(1, 2, 3) RETURN n"},
		{"start all nodes", "START n = NODE(*) RETURN n"},
		{"start node index query", `START n = NODE:names("value:Bob") RETURN n`},
		{"create unique", "MATCH (a), (b) CREATE UNIQUE (a)-[:KNOWS]->(b) RETURN a"},
		{"union", "MATCH (a) RETURN a UNION MATCH (b) RETURN b"},
		{"create index", "CREATE INDEX ON :Person(name)"},
		{"drop index", "DROP INDEX ON :Person(name)"},
		{"create constraint", "CREATE CONSTRAINT ON (p:Person) ASSERT p.id IS UNIQUE"},
		{"foreach", "MATCH (a) FOREACH (x IN a.list | SET x.seen = true)"},
		{"shortest path", "MATCH p = shortestPath((a)-[*]->(b)) RETURN p"},
		{"using index", "MATCH (u:User) USING INDEX u:User(id) WHERE u.id = 1 RETURN u"},
		{"cypher directive", "cypher 2.0 MATCH (n) RETURN n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := grammar.Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.query, err)
			}
			if ast == nil {
				t.Fatalf("Parse(%q) returned nil AST", tt.query)
			}
		})
	}
}

func TestParse_ListLiteralVsComprehension(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"nested list literal", `RETURN [[1, 2], [3, 4]]`},
		{"empty list", `RETURN []`},
		{"list with expressions", `RETURN [1 + 2, 3 * 4]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := grammar.Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.query, err)
			}
			if ast == nil {
				t.Fatalf("Parse(%q) returned nil AST", tt.query)
			}
		})
	}
}

func TestParse_ListComprehension(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"basic comprehension", "RETURN [x IN [1, 2, 3] | x * 2]"},
		{"with filter", "RETURN [x IN [1, 2, 3] WHERE x > 1 | x * 2]"},
		{"filter only", "RETURN [x IN [1, 2, 3] WHERE x > 1]"},
		{"from variable", "MATCH (u:User) RETURN [x IN u.tags | toUpper(x)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := grammar.Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.query, err)
			}
			if ast == nil {
				t.Fatalf("Parse(%q) returned nil AST", tt.query)
			}
		})
	}
}

func TestParse_BareNodeIdentifier(t *testing.T) {
	// Pre-2.0 permits a bare identifier as a node reference in a pattern
	// (no parens); the builder gates it via features.BareNodeIdentifiers.
	ast, err := grammar.Parse("START n = NODE(1) MATCH n-->m RETURN m")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if ast == nil {
		t.Fatalf("Parse returned nil AST")
	}
}
