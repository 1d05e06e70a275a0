package cyql

import (
	"errors"

	"github.com/oxidegraph/cyql/internal/synerr"
)

// ErrorKind is the closed set of error categories a parse can fail with
// (§7). Every *SyntaxError carries exactly one of these. It is a type
// alias for internal/synerr.Kind so the builder can construct errors
// without importing this package.
type ErrorKind = synerr.Kind

const (
	// LexicalError is an illegal character, unterminated string, bad
	// escape, or malformed number.
	LexicalError = synerr.Lexical
	// UnexpectedToken is "expected one of a set, got another".
	UnexpectedToken = synerr.UnexpectedToken
	// DialectFeatureError is a construct valid only under another dialect.
	DialectFeatureError = synerr.DialectFeature
	// SemanticArityError is a composite-property index, or an index
	// without properties.
	SemanticArityError = synerr.SemanticArity
	// InternalError is an invariant violation in the builder — never
	// triggered by well-formed input; it indicates a bug in this package.
	InternalError = synerr.Internal
)

// Sentinel errors usable with errors.Is against the ErrorKind a
// *SyntaxError carries.
var (
	ErrLexical         = synerr.ErrLexical
	ErrUnexpectedToken = synerr.ErrUnexpectedToken
	ErrDialectFeature  = synerr.ErrDialectFeature
	ErrSemanticArity   = synerr.ErrSemanticArity
	ErrInternal        = synerr.ErrInternal
	// ErrUnknownDialect is returned when an unrecognized version name is
	// passed to ParseVersion or appears in a `cypher <version>` directive.
	ErrUnknownDialect = errors.New("cyql: unknown dialect")
)

// SyntaxError is the single error type Parse returns on failure. It
// always carries the dialect in force and the byte offset at which the
// problem was detected (§7); line/column are derived from Offset at
// construction time.
type SyntaxError = synerr.Error
