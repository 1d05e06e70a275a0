package cyql

import "github.com/oxidegraph/cyql/internal/dialect"

// Version selects the Cypher grammar dialect a query is parsed under
// (§4.6). It is a type alias for internal/dialect.Version so the feature
// table stays in one internal package shared by this API and the
// builder, with no import cycle between them.
type Version = dialect.Version

const (
	// Default resolves to V2_0. It exists as a distinct value so a caller
	// can ask for "whatever this front end currently treats as default"
	// without hard-coding a version number.
	Default = dialect.Default
	V1_9    = dialect.V1_9
	V2_0    = dialect.V2_0
)

// ParseVersion recognizes the version names accepted in a `cypher
// <version>` directive or passed as an API parameter: "v1_9", "1.9",
// "v2_0", "2.0", and "default" (case-insensitive).
func ParseVersion(s string) (Version, error) {
	v, err := dialect.Parse(s)
	if err != nil {
		return 0, ErrUnknownDialect
	}
	return v, nil
}
