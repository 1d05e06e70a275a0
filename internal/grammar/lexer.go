package grammar

import "github.com/alecthomas/participle/v2/lexer"

// cypherLexer is the token table for the union of v1_9 and v2_0 surface
// syntax. It deliberately accepts a superset of either dialect — version
// gating happens once, in the builder, against a single feature table
// rather than duplicated across lexer states.
var cypherLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `//[^\r\n]*`},

		// Multi-character operators must come before their single-char prefixes.
		{Name: "PipeColon", Pattern: `\|:`},
		{Name: "NotEqual", Pattern: `<>`},
		{Name: "LessEqual", Pattern: `<=`},
		{Name: "GreaterEqual", Pattern: `>=`},
		{Name: "RegexOp", Pattern: `=~`},
		{Name: "AddAssign", Pattern: `\+=`},
		{Name: "Range", Pattern: `\.\.`},

		// Numbers before Ident, Float before Int. A float needs a digit after
		// its dot so that `1..3` lexes as Int Range Int.
		{Name: "Float", Pattern: `(?:\d+\.\d+|\.\d+)(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
		{Name: "Int", Pattern: `\d+`},

		{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
		{Name: "EscapedIdent", Pattern: "`(?:[^`]|``)*`"},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z_0-9]*`},

		{Name: "Eq", Pattern: `=`},
		{Name: "Less", Pattern: `<`},
		{Name: "Greater", Pattern: `>`},
		{Name: "Plus", Pattern: `\+`},
		{Name: "Minus", Pattern: `-`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Percent", Pattern: `%`},
		{Name: "Caret", Pattern: `\^`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Semicolon", Pattern: `;`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Question", Pattern: `\?`},
		{Name: "Bang", Pattern: `!`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
	},
})
