package cyql_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oxidegraph/cyql"
	"github.com/oxidegraph/cyql/aqt"
)

// corpusCase is one row of testdata/corpus.yaml.
type corpusCase struct {
	Name      string `yaml:"name"`
	Query     string `yaml:"query"`
	Dialect   string `yaml:"dialect"`
	Expect    string `yaml:"expect"` // "accept" or "reject"
	AQTType   string `yaml:"aqtType,omitempty"`
	ErrorKind string `yaml:"errorKind,omitempty"`
}

func loadCorpus(t *testing.T) []corpusCase {
	t.Helper()
	data, err := os.ReadFile("testdata/corpus.yaml")
	require.NoError(t, err)
	var cases []corpusCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func errorKindByName(t *testing.T, name string) cyql.ErrorKind {
	t.Helper()
	switch name {
	case "LexicalError":
		return cyql.LexicalError
	case "UnexpectedToken":
		return cyql.UnexpectedToken
	case "DialectFeatureError":
		return cyql.DialectFeatureError
	case "SemanticArityError":
		return cyql.SemanticArityError
	case "InternalError":
		return cyql.InternalError
	default:
		t.Fatalf("unknown errorKind %q in corpus", name)
		return 0
	}
}

// TestCorpus runs the data-driven golden query corpus: every (query,
// dialect) pair is expected either to parse successfully into the named
// AQT concrete type, or to fail with the named error kind.
func TestCorpus(t *testing.T) {
	for _, tc := range loadCorpus(t) {
		t.Run(tc.Name, func(t *testing.T) {
			v, err := cyql.ParseVersion(tc.Dialect)
			require.NoError(t, err, "corpus dialect %q", tc.Dialect)

			result, err := cyql.Parse(tc.Query, v)

			switch tc.Expect {
			case "accept":
				require.NoError(t, err, "Parse(%q)", tc.Query)
				require.NotNil(t, result)
				if tc.AQTType != "" {
					require.Equal(t, tc.AQTType, aqtTypeName(t, result))
				}
			case "reject":
				require.Error(t, err, "Parse(%q) should have failed", tc.Query)
				var syn *cyql.SyntaxError
				require.ErrorAs(t, err, &syn)
				require.Equal(t, errorKindByName(t, tc.ErrorKind), syn.Kind)
			default:
				t.Fatalf("unknown expect %q in corpus", tc.Expect)
			}
		})
	}
}

func aqtTypeName(t *testing.T, v aqt.AQT) string {
	t.Helper()
	switch v.(type) {
	case *aqt.Query:
		return "Query"
	case *aqt.Union:
		return "Union"
	case *aqt.CreateIndex:
		return "CreateIndex"
	case *aqt.DropIndex:
		return "DropIndex"
	case *aqt.CreateUniqueConstraint:
		return "CreateUniqueConstraint"
	default:
		t.Fatalf("unhandled AQT type %T", v)
		return ""
	}
}
