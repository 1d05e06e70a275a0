package cyql

import "github.com/oxidegraph/cyql/internal/names"

// UnnamedPrefix is the literal sentinel every auto-generated name begins
// with (I2): two spaces followed by "UNNAMED", then the decimal byte
// offset at which the anonymous construct began.
const UnnamedPrefix = names.UnnamedPrefix

// InnerVariableName is the synthetic iterator name reserved for the
// `expr IN collectionLiteral` desugaring into an AnyInCollection (§4.3, §6).
const InnerVariableName = names.InnerVariableName
