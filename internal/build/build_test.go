package build

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oxidegraph/cyql/internal/dialect"
	"github.com/oxidegraph/cyql/internal/grammar"
	"github.com/oxidegraph/cyql/internal/names"
)

func TestAutoName(t *testing.T) {
	require.Equal(t, "n", autoName("n", lexer.Position{Offset: 7}))
	require.Equal(t, names.UnnamedPrefix+"7", autoName("", lexer.Position{Offset: 7}))
}

// TestBuild_AutoNameOffsetStability is P2: re-parsing the same text under
// the same dialect assigns identical anonymous names, because autoName is
// purely a function of the byte offset captured at construction time.
func TestBuild_AutoNameOffsetStability(t *testing.T) {
	query := "start a = NODE(1) match a -[:KNOWS]-> (b) return a, b"
	var results []any
	for i := 0; i < 3; i++ {
		root, err := grammar.Parse(query)
		require.NoError(t, err)
		got, err := Build(root, dialect.V2_0)
		require.NoError(t, err)
		results = append(results, got)
	}
	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("Build not stable across repeated parses:\n%s", diff)
		}
	}
}

func TestUnquoteString(t *testing.T) {
	cases := map[string]string{
		`"hello"`:      "hello",
		`'hello'`:      "hello",
		`"a\nb"`:       "a\nb",
		`"a\tb"`:       "a\tb",
		`"say \"hi\""`: `say "hi"`,
		`'it\'s'`:      "it's",
	}
	for in, want := range cases {
		require.Equal(t, want, unquoteString(in), "unquoteString(%q)", in)
	}
}

func TestUnescapeBacktick(t *testing.T) {
	require.Equal(t, "my var", unescapeBacktick("`my var`"))
	require.Equal(t, "plain", unescapeBacktick("plain"))
}

func TestToInt(t *testing.T) {
	require.Nil(t, toInt(nil))
	v := int64(42)
	got := toInt(&v)
	require.NotNil(t, got)
	require.Equal(t, 42, *got)
}

// TestDialectErr_MessageNamesBothConstructAndDialect is a texture check:
// the dialect-feature error message should be self-explanatory without the
// caller needing to inspect Expected/Found.
func TestDialectErr_MessageNamesBothConstructAndDialect(t *testing.T) {
	b := &builder{v: dialect.V1_9, feat: dialect.FeaturesFor(dialect.V1_9)}
	err := b.dialectErr(lexer.Position{Offset: 3, Line: 1, Column: 4}, "UNION")
	require.Contains(t, err.Error(), "UNION")
	require.Contains(t, err.Error(), dialect.V1_9.String())
}
