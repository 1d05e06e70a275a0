// Package dialect is the version selector (§4.6): the closed set of
// grammar dialects this front end understands, and the feature table
// that gates every version-specific construct. It has no dependency on
// the rest of the module so both the public API and the builder can
// depend on it without creating an import cycle.
package dialect

import (
	"errors"
	"strings"
)

// Version selects the Cypher grammar dialect a query is parsed under.
type Version int

const (
	// Default resolves to V2_0. It exists as a distinct value so a caller
	// can ask for "whatever this front end currently treats as default"
	// without hard-coding a version number.
	Default Version = iota
	V1_9
	V2_0
)

func (v Version) String() string {
	switch v {
	case V1_9:
		return "v1_9"
	case V2_0:
		return "v2_0"
	case Default:
		return "default"
	default:
		return "unknown"
	}
}

// Resolve maps Default to the concrete version it currently means.
func (v Version) Resolve() Version {
	if v == Default {
		return V2_0
	}
	return v
}

// ErrUnknown is returned by Parse for an unrecognized version name.
var ErrUnknown = errors.New("dialect: unknown version")

// Parse recognizes the version names accepted in a `cypher <version>`
// directive or passed as an API parameter: "v1_9", "1.9", "v2_0", "2.0",
// and "default" (case-insensitive).
func Parse(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1_9", "1.9":
		return V1_9, nil
	case "v2_0", "2.0":
		return V2_0, nil
	case "default", "":
		return Default, nil
	default:
		return 0, ErrUnknown
	}
}

// Features is the table of per-dialect grammar/desugaring toggles gating
// every construct §4 calls out as version-specific. New dialects extend
// this table instead of scattering `if version == ...` through the
// parser and builder (§9 design note).
type Features struct {
	// OptionalPropagation: an optional relationship marks its endpoints as
	// SingleOptionalNode (I5). Off pre-2.0: optionality lives only on the
	// relationship record.
	OptionalPropagation bool
	// PipeColonTypeSeparator: relationship type lists use `|:` instead of
	// `|` between TYPE entries. No builder code reads this flag: the grammar
	// accepts either separator under every dialect.
	PipeColonTypeSeparator bool
	// NullablePostfix: `?` and `!` are accepted as property postfix
	// operators (Nullable / NullablePredicate).
	NullablePostfix bool
	// BooleanAsTrueNot: `true`/`false` lower to True{}/Not{True{}} instead
	// of BoolLiteral.
	BooleanAsTrueNot bool
	// ListComprehension: `[x IN c WHERE p | e]` alias forms are accepted.
	ListComprehension bool
	// LabelFeatures: `SET n:Label` / `REMOVE n:Label` are accepted.
	LabelFeatures bool
	// Union: UNION [ALL] is accepted at all.
	Union bool
	// SchemaDDL: CREATE/DROP INDEX and CREATE CONSTRAINT are accepted.
	SchemaDDL bool
	// Hints: USING INDEX / USING SCAN are accepted.
	Hints bool
	// ShortestPathWithoutStart: shortestPath()/allShortestPaths() and bare
	// MATCH are legal with no START clause at all.
	ShortestPathWithoutStart bool
	// GenericCase: `CASE WHEN pred THEN ... END` (no input expression) is
	// accepted, as opposed to only the simple form.
	GenericCase bool
	// Reduce: `reduce(acc = init, x IN c | expr)` is accepted.
	Reduce bool
	// ForeachColonSeparator: FOREACH accepts `:` as a body separator in
	// addition to `|` — a quiet asymmetry preserved from the source
	// grammar (§9(b)), true for every dialect except v2_0.
	ForeachColonSeparator bool
	// DeleteProperty: `DELETE n.p` is accepted (v1_9 only; v2_0 requires
	// REMOVE for the same effect).
	DeleteProperty bool
	// BareNodeIdentifiers: a MATCH pattern element may be a bare identifier
	// with no surrounding parens (`match a -[:KNOWS]-> (b)`).
	BareNodeIdentifiers bool
	// PatternPredicateAsValue: a bare pattern used as a predicate lowers
	// to PatternPredicate. Off pre-2.0, where it lowers to
	// NonEmpty{PathExpression}.
	PatternPredicateAsValue bool
}

var table = map[Version]Features{
	V1_9: {
		OptionalPropagation:      false,
		PipeColonTypeSeparator:   false,
		NullablePostfix:          true,
		BooleanAsTrueNot:         false,
		ListComprehension:        false,
		LabelFeatures:            false,
		Union:                    false,
		SchemaDDL:                false,
		Hints:                    false,
		ShortestPathWithoutStart: false,
		GenericCase:              false,
		Reduce:                   false,
		ForeachColonSeparator:    true,
		DeleteProperty:           true,
		BareNodeIdentifiers:      true,
		PatternPredicateAsValue:  false,
	},
	V2_0: {
		OptionalPropagation:      true,
		PipeColonTypeSeparator:   true,
		NullablePostfix:          false,
		BooleanAsTrueNot:         true,
		ListComprehension:        true,
		LabelFeatures:            true,
		Union:                    true,
		SchemaDDL:                true,
		Hints:                    true,
		ShortestPathWithoutStart: true,
		GenericCase:              true,
		Reduce:                   true,
		ForeachColonSeparator:    false,
		DeleteProperty:           false,
		BareNodeIdentifiers:      true,
		PatternPredicateAsValue:  true,
	},
}

// FeaturesFor returns the feature set for a (possibly Default) version.
func FeaturesFor(v Version) Features {
	return table[v.Resolve()]
}
