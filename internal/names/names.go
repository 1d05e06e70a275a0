// Package names holds the synthetic identifiers the builder mints on the
// caller's behalf (auto-generated names, desugaring iterator variables), so
// internal/build can reach them without importing the public API package
// that re-exports them.
package names

// UnnamedPrefix is the literal sentinel every auto-generated name begins
// with (I2): two spaces followed by "UNNAMED", then the decimal byte
// offset at which the anonymous construct began.
const UnnamedPrefix = "  UNNAMED"

// InnerVariableName is the synthetic iterator name reserved for the
// `expr IN collectionLiteral` desugaring into an AnyInCollection (§4.3, §6).
const InnerVariableName = "-_-INNER-_-"
