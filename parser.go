package cyql

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/oxidegraph/cyql/aqt"
	"github.com/oxidegraph/cyql/internal/build"
	"github.com/oxidegraph/cyql/internal/grammar"
)

// Parse parses a single query into its Abstract Query Tree under the
// requested dialect (§4.6). A leading `cypher <version>` directive in the
// source is authoritative: if v is Default the directive picks the
// dialect, and if v is a concrete version the directive must agree with
// it or the parse fails with a DialectFeatureError. However resolved, the
// selector is immutable for the rest of this call.
func Parse(query string, v Version) (aqt.AQT, error) {
	root, err := grammar.Parse(query)
	if err != nil {
		return nil, translateParseErr(err, v)
	}
	resolved, err := reconcileDialect(root.Directive, v)
	if err != nil {
		return nil, err
	}
	return build.Build(root, resolved)
}

func reconcileDialect(directive string, requested Version) (Version, error) {
	if directive == "" {
		return requested, nil
	}
	declared, err := ParseVersion(directive)
	if err != nil {
		return 0, err
	}
	if requested != Default && requested != declared {
		return 0, &SyntaxError{
			Kind:    DialectFeatureError,
			Dialect: requested,
			Message: "the `cypher " + directive + "` directive conflicts with the requested dialect " + requested.String(),
		}
	}
	return declared, nil
}

// participleError is the subset of participle's error interface this
// package cares about: an error message plus the position it was
// detected at.
type participleError interface {
	Message() string
	Position() lexer.Position
}

func translateParseErr(err error, v Version) error {
	var ute *participle.UnexpectedTokenError
	if errors.As(err, &ute) {
		p := ute.Position()
		se := &SyntaxError{
			Kind: UnexpectedToken, Dialect: v.Resolve(),
			Offset: p.Offset, Line: p.Line, Column: p.Column,
			Message: ute.Message(),
		}
		if ute.Expect != "" {
			se.Expected = []string{ute.Expect}
		}
		if !ute.Unexpected.EOF() {
			se.Found = ute.Unexpected.Value
		}
		return se
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		return &SyntaxError{
			Kind: LexicalError, Dialect: v.Resolve(),
			Offset: le.Pos.Offset, Line: le.Pos.Line, Column: le.Pos.Column,
			Message: le.Msg,
		}
	}
	pe, ok := err.(participleError)
	if !ok {
		return &SyntaxError{Kind: UnexpectedToken, Dialect: v.Resolve(), Message: err.Error()}
	}
	p := pe.Position()
	return &SyntaxError{
		Kind: UnexpectedToken, Dialect: v.Resolve(),
		Offset: p.Offset, Line: p.Line, Column: p.Column,
		Message: pe.Message(),
	}
}
