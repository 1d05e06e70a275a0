// Package grammar is the participle-based surface grammar for the v1_9
// and v2_0 query syntax, parsed as one superset grammar. It produces a
// parse tree only — no dialect validation, no auto-naming, no pattern
// desugaring. The internal/build package turns a Root into an aqt.AQT.
//
//	tree, err := grammar.Parse("MATCH (a)-->(b) RETURN a, b")
//	if err != nil {
//		// err carries the position where the union grammar rejected the input
//	}
package grammar
